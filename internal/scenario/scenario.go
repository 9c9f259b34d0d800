// Package scenario runs Lua scripts that build a world, play it forward
// and assert on the result.
//
// A script declares its steps through the Scenario type and returns it:
//
//	local s = Scenario.new("blinker", 5, 5)
//	s:pattern(2, 1, "###")
//	s:play(1)
//	s:expect_alive(1, 2)
//	return s
//
// Loading only records steps. Run executes them against a fresh World.
package scenario

import (
	"fmt"
	"strings"
)

// Step kinds recorded by the Lua bindings.
const (
	StepRules           = "rules"
	StepAlive           = "alive"
	StepDead            = "dead"
	StepPattern         = "pattern"
	StepPlay            = "play"
	StepExpectAlive     = "expect_alive"
	StepExpectDead      = "expect_dead"
	StepExpectLiving    = "expect_living"
	StepExpectTurn      = "expect_turn"
	StepExpectNeighbors = "expect_neighbors"
)

// Scenario is a named list of steps over a rows x cols world.
type Scenario struct {
	Name  string
	Steps []Step
	Rows  int
	Cols  int
}

// Step is one recorded script call. Args holds the integer arguments in
// call order; Text carries the pattern body for StepPattern.
type Step struct {
	Kind string
	Text string
	Args []int
}

func (s Step) String() string {
	parts := make([]string, 0, len(s.Args)+1)
	for _, a := range s.Args {
		parts = append(parts, fmt.Sprint(a))
	}
	if s.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", s.Text))
	}
	return s.Kind + "(" + strings.Join(parts, ", ") + ")"
}

func (s *Scenario) appendStep(kind, text string, args ...int) {
	s.Steps = append(s.Steps, Step{Kind: kind, Text: text, Args: args})
}

// AssertionMode controls how failed expectations are handled.
type AssertionMode int

const (
	// AssertionStrict stops at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly records every failure and keeps going.
	AssertionLogOnly
)

func (m AssertionMode) String() string {
	switch m {
	case AssertionStrict:
		return "strict"
	case AssertionLogOnly:
		return "log-only"
	default:
		return fmt.Sprintf("AssertionMode(%d)", int(m))
	}
}

// ParseAssertionMode maps "strict" and "log-only" (or "log") to a mode.
func ParseAssertionMode(s string) (AssertionMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return AssertionStrict, true
	case "log", "log-only", "logonly":
		return AssertionLogOnly, true
	}
	return AssertionStrict, false
}

// Failure is one expectation that did not hold.
type Failure struct {
	Step    Step
	Index   int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d %s: %s", f.Index+1, f.Step, f.Message)
}

// Report summarizes a run.
type Report struct {
	Name     string
	Failures []Failure
	Executed int
	Turn     int
	Living   int
}

// Passed reports whether every executed expectation held.
func (r Report) Passed() bool {
	return len(r.Failures) == 0
}

func (r Report) String() string {
	var b strings.Builder
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "%s %s: %d steps, turn %d, %d living\n", status, r.Name, r.Executed, r.Turn, r.Living)
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	return b.String()
}
