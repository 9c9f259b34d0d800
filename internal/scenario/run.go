package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	simerrors "lifeworld/internal/errors"
	"lifeworld/internal/sims/life"
)

// Options configures Run.
type Options struct {
	Logger *zap.Logger
	Mode   AssertionMode
}

// Run executes sc against a fresh world. Expectation failures land in the
// report; the returned error is reserved for steps that could not execute,
// such as out-of-range coordinates or a cancelled context.
func Run(ctx context.Context, sc *Scenario, opts Options) (report Report, err error) {
	if sc == nil {
		return Report{}, simerrors.InvalidInput("scenario.run", "nil scenario")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("scenario", sc.Name))

	report.Name = sc.Name

	w, err := life.New(sc.Rows, sc.Cols, life.WithLogger(logger))
	if err != nil {
		return report, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	defer w.Close()

	defer func() {
		report.Turn = w.Turn()
		report.Living = w.Living()
	}()

	for i, step := range sc.Steps {
		msg, stepErr := execStep(ctx, w, step)
		if stepErr != nil {
			return report, fmt.Errorf("scenario %q step %d %s: %w", sc.Name, i+1, step, stepErr)
		}
		report.Executed++
		if msg == "" {
			logger.Debug("step ok", zap.Int("step", i+1), zap.String("kind", step.Kind))
			continue
		}

		f := Failure{Index: i, Step: step, Message: msg}
		report.Failures = append(report.Failures, f)
		logger.Warn("expectation failed",
			zap.Int("step", i+1),
			zap.String("kind", step.Kind),
			zap.String("message", msg),
		)
		if opts.Mode == AssertionStrict {
			break
		}
	}
	return report, nil
}

// execStep applies step to w. A non-empty message means an expectation
// did not hold.
func execStep(ctx context.Context, w *life.World, step Step) (string, error) {
	if err := checkArity(step); err != nil {
		return "", err
	}
	a := step.Args

	switch step.Kind {
	case StepRules:
		w.SetUnderpopulation(a[0])
		w.SetOvercrowding(a[1])
		w.SetReproduction(a[2])
		return "", nil

	case StepAlive, StepDead:
		return "", w.SetHealth(a[0], a[1], step.Kind == StepAlive)

	case StepPattern:
		return "", w.Stamp(a[0], a[1], step.Text)

	case StepPlay:
		return "", w.Play(ctx, a[0])

	case StepExpectAlive, StepExpectDead:
		alive, err := w.IsAlive(a[0], a[1])
		if err != nil {
			return "", err
		}
		want := step.Kind == StepExpectAlive
		if alive != want {
			return fmt.Sprintf("cell (%d,%d) alive = %t, want %t", a[0], a[1], alive, want), nil
		}
		return "", nil

	case StepExpectLiving:
		if got := w.Living(); got != a[0] {
			return fmt.Sprintf("living = %d, want %d", got, a[0]), nil
		}
		return "", nil

	case StepExpectTurn:
		if got := w.Turn(); got != a[0] {
			return fmt.Sprintf("turn = %d, want %d", got, a[0]), nil
		}
		return "", nil

	case StepExpectNeighbors:
		got, err := w.LivingNeighbors(a[0], a[1])
		if err != nil {
			return "", err
		}
		if got != a[2] {
			return fmt.Sprintf("cell (%d,%d) living neighbors = %d, want %d", a[0], a[1], got, a[2]), nil
		}
		return "", nil
	}
	return "", simerrors.InvalidInput("scenario.step", "unknown step kind %q", step.Kind)
}

var arity = map[string]int{
	StepRules:           3,
	StepAlive:           2,
	StepDead:            2,
	StepPattern:         2,
	StepPlay:            1,
	StepExpectAlive:     2,
	StepExpectDead:      2,
	StepExpectLiving:    1,
	StepExpectTurn:      1,
	StepExpectNeighbors: 3,
}

func checkArity(step Step) error {
	want, ok := arity[step.Kind]
	if !ok {
		return simerrors.InvalidInput("scenario.step", "unknown step kind %q", step.Kind)
	}
	if len(step.Args) != want {
		return simerrors.InvalidInput("scenario.step", "%s takes %d arguments, got %d", step.Kind, want, len(step.Args))
	}
	return nil
}
