package jobs

import (
	"context"

	"go.uber.org/zap"
)

// ZapHooks adapts lifecycle events to structured zap logs. Transitions and
// run outcomes log at info level with the task identity as fields; failures
// log at error level with the failure attached.
func ZapHooks(logger *zap.Logger) Hooks {
	return Hooks{
		OnStart: func(_ context.Context, e Event) {
			logger.Info("task execution started",
				zap.String("task", e.Path),
				zap.String("uuid", e.UUID.String()),
			)
		},
		OnTransition: func(_ context.Context, e Event) {
			logger.Info("task status updated",
				zap.String("task", e.Path),
				zap.String("uuid", e.UUID.String()),
				zap.String("from", e.From.String()),
				zap.String("to", e.To.String()),
			)
		},
		OnRunEnd: func(_ context.Context, e Event) {
			if e.Err != nil {
				logger.Error("task run failed",
					zap.String("task", e.Path),
					zap.String("uuid", e.UUID.String()),
					zap.Error(e.Err),
				)
				return
			}
			logger.Info("task run finished",
				zap.String("task", e.Path),
				zap.String("uuid", e.UUID.String()),
				zap.Int("retcode", e.Result.Retcode),
			)
		},
		OnEnd: func(_ context.Context, e Event) {
			if e.Err != nil {
				logger.Error("task execution finished",
					zap.String("task", e.Path),
					zap.String("uuid", e.UUID.String()),
					zap.Int("retcode", e.Result.Retcode),
					zap.Error(e.Err),
				)
				return
			}
			logger.Info("task execution finished",
				zap.String("task", e.Path),
				zap.String("uuid", e.UUID.String()),
				zap.Int("retcode", e.Result.Retcode),
			)
		},
	}
}

// WithLogger is shorthand for WithHooks(ZapHooks(logger)).
func WithLogger(logger *zap.Logger) ExecutorOption {
	return WithHooks(ZapHooks(logger))
}
