package notifier

import (
	"log/slog"

	"github.com/amishk599/skillradar/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the collection summary to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each summary via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the run totals, then one debug line per failed id.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(summary model.CollectSummary) error {
	n.logger.Info("collection finished",
		"run_id", summary.RunID,
		"listed", summary.Listed,
		"skipped", summary.Skipped,
		"filtered", summary.Filtered,
		"with_skills", len(summary.WithSkills),
		"empty", len(summary.Empty),
		"errors", len(summary.Errors),
	)
	for _, id := range summary.Errors {
		n.logger.Debug("vacancy failed", "run_id", summary.RunID, "id", id)
	}
	return nil
}
