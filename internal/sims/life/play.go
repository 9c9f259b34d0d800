package life

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	simerrors "lifeworld/internal/errors"
)

const tracerName = "lifeworld/internal/sims/life"

// Play advances the world by numTurns generations. Each generation is
// computed entirely from the state at the start of that generation. ctx is
// checked between generations; on cancellation the completed generations
// stay applied and ErrCancelled is returned.
func (w *World) Play(ctx context.Context, numTurns int) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "life.Play", trace.WithAttributes(
		attribute.Int("life.turns", numTurns),
		attribute.Int("life.rows", w.rows),
		attribute.Int("life.cols", w.cols),
		attribute.Int("life.turn.start", w.turn),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if numTurns < 0 {
		return simerrors.InvalidInput("world.play", "turn count must not be negative, got %d", numTurns)
	}

	for i := 0; i < numTurns; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			w.logger.Debug("play cancelled",
				zap.Int("completed", i),
				zap.Int("requested", numTurns),
			)
			return simerrors.Cancelled("world.play", ctxErr)
		}
		if err := w.step(); err != nil {
			return err
		}
	}

	span.SetAttributes(attribute.Int("life.turn.end", w.turn))
	return nil
}

// step plays one generation: read every health into cur, evaluate the
// rules into next, then write next back through the cells.
func (w *World) step() error {
	cur, err := w.snapshot("world.play")
	if err != nil {
		return err
	}
	for r := 0; r < w.rows; r++ {
		row := r * w.cols
		for c := 0; c < w.cols; c++ {
			w.next[row+c] = w.rules.Next(cur[row+c], w.countLiving(cur, r, c))
		}
	}
	err = w.each("world.play", func(i int, c *Cell) {
		c.SetAlive(w.next[i])
	})
	if err != nil {
		return err
	}
	w.turn++
	return nil
}
