package prompt

import (
	"log/slog"

	"github.com/movieprompt/movieprompt/internal/infra/fsx"
)

// Save writes text to path as UTF-8. Failures are logged and reported as false, never returned.
func Save(path, text string, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if err := fsx.WriteFile(path, []byte(text)); err != nil {
		logger.Error("Failed to save prompt", "path", path, "err", err)
		return false
	}
	logger.Info("Prompt saved", "path", path, "bytes", len(text))
	return true
}
