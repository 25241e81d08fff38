package saga

import (
	"context"
	"fmt"
	"log/slog"
)

// Step is one unit of a saga plan: a forward remote write and an optional
// compensating action that undoes it. Steps are plain data so new flows are
// new step lists, not new control flow.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Execute runs steps strictly in order. When step K fails, compensations for
// steps K-1..1 run in reverse order of success; the failed step itself never
// started its effect and is not compensated. The returned error is always the
// originating step's failure, regardless of compensation outcomes.
func Execute(ctx context.Context, logger *slog.Logger, name string, steps []Step) error {
	if logger == nil {
		logger = slog.Default()
	}

	for i, step := range steps {
		logger.Info("saga step starting",
			"event", "saga_step_starting",
			"module", "internal/shared/saga",
			"layer", "application",
			"saga", name,
			"step", step.Name,
		)

		err := step.Run(ctx)
		if err == nil {
			logger.Info("saga step succeeded",
				"event", "saga_step_succeeded",
				"module", "internal/shared/saga",
				"layer", "application",
				"saga", name,
				"step", step.Name,
			)
			continue
		}

		logger.Error("saga step failed",
			"event", "saga_step_failed",
			"module", "internal/shared/saga",
			"layer", "application",
			"saga", name,
			"step", step.Name,
			"error", err.Error(),
		)

		unwind(ctx, logger, name, steps[:i])
		return fmt.Errorf("saga %s step %s: %w", name, step.Name, err)
	}

	logger.Info("saga completed",
		"event", "saga_completed",
		"module", "internal/shared/saga",
		"layer", "application",
		"saga", name,
	)
	return nil
}

// unwind compensates succeeded steps in reverse order. A failing compensation
// is an operator-visible inconsistency: it is logged and the unwind continues
// so every remaining step still gets its compensation attempt.
func unwind(ctx context.Context, logger *slog.Logger, name string, succeeded []Step) {
	for i := len(succeeded) - 1; i >= 0; i-- {
		step := succeeded[i]
		if step.Compensate == nil {
			continue
		}

		if err := step.Compensate(ctx); err != nil {
			logger.Error("saga compensation failed, manual intervention required",
				"event", "saga_compensation_failed",
				"module", "internal/shared/saga",
				"layer", "application",
				"saga", name,
				"step", step.Name,
				"manual_intervention_required", true,
				"error", err.Error(),
			)
			continue
		}

		logger.Info("saga compensation applied",
			"event", "saga_compensation_applied",
			"module", "internal/shared/saga",
			"layer", "application",
			"saga", name,
			"step", step.Name,
		)
	}
}
