package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "lifeworld.scenario"

// LoadFile runs the script at path and returns the scenario it builds.
// An unnamed scenario takes the file's base name.
func LoadFile(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := LoadString(path, string(src))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// LoadString runs src as a scenario script. name labels the chunk in Lua
// error messages.
func LoadString(name, src string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)

	if err := lua.LoadBuffer(state, src, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	sc, ok := ud.(*Scenario)
	if !ok || sc == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return sc, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "rules", Function: scenarioRules},
	{Name: "alive", Function: cellStep(StepAlive)},
	{Name: "dead", Function: cellStep(StepDead)},
	{Name: "pattern", Function: scenarioPattern},
	{Name: "play", Function: countStep(StepPlay)},
	{Name: "expect_alive", Function: cellStep(StepExpectAlive)},
	{Name: "expect_dead", Function: cellStep(StepExpectDead)},
	{Name: "expect_living", Function: countStep(StepExpectLiving)},
	{Name: "expect_turn", Function: countStep(StepExpectTurn)},
	{Name: "expect_neighbors", Function: scenarioExpectNeighbors},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	rows := lua.CheckInteger(state, 2)
	cols := lua.CheckInteger(state, 3)
	state.PushUserData(&Scenario{Name: name, Rows: rows, Cols: cols})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

func scenarioRules(state *lua.State) int {
	sc := checkScenario(state)
	u := lua.CheckInteger(state, 2)
	o := lua.CheckInteger(state, 3)
	r := lua.CheckInteger(state, 4)
	sc.appendStep(StepRules, "", u, o, r)
	return 0
}

func scenarioPattern(state *lua.State) int {
	sc := checkScenario(state)
	row := lua.CheckInteger(state, 2)
	col := lua.CheckInteger(state, 3)
	text := lua.CheckString(state, 4)
	sc.appendStep(StepPattern, text, row, col)
	return 0
}

func scenarioExpectNeighbors(state *lua.State) int {
	sc := checkScenario(state)
	row := lua.CheckInteger(state, 2)
	col := lua.CheckInteger(state, 3)
	n := lua.CheckInteger(state, 4)
	sc.appendStep(StepExpectNeighbors, "", row, col, n)
	return 0
}

func cellStep(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		row := lua.CheckInteger(state, 2)
		col := lua.CheckInteger(state, 3)
		sc.appendStep(kind, "", row, col)
		return 0
	}
}

func countStep(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		n := lua.CheckInteger(state, 2)
		sc.appendStep(kind, "", n)
		return 0
	}
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if sc, ok := ud.(*Scenario); ok && sc != nil {
		return sc
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}
