package out

import (
	"go.uber.org/zap"

	mealsout "mealsync/internal/modules/meals/port/out"
)

// LogReporter forwards progress to the structured logger; used when no one
// is watching a terminal.
type LogReporter struct {
	logger *zap.Logger
}

func NewLogReporter(logger *zap.Logger) mealsout.Reporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Step(msg string) { r.logger.Info(msg) }

func (r *LogReporter) Done(msg string) { r.logger.Info(msg, zap.Bool("done", true)) }

func (r *LogReporter) Warn(msg string) { r.logger.Warn(msg) }
