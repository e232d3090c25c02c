// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// CleanupProcessor removes price-list temp files left behind by crashed workers
type CleanupProcessor struct {
	tempDir string
	maxAge  time.Duration
	logger  *slog.Logger
}

func NewCleanupProcessor(tempDir string, maxAge time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		tempDir: tempDir,
		maxAge:  maxAge,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupTempFiles deletes stale pricelist-*.pdf files from the temp dir
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, t *asynq.Task) error {
	entries, err := os.ReadDir(p.tempDir)
	if err != nil {
		return fmt.Errorf("failed to read temp directory: %w", err)
	}

	var deleted int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "pricelist-") {
			continue
		}

		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) <= p.maxAge {
			continue
		}

		path := filepath.Join(p.tempDir, entry.Name())
		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete temp file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	p.logger.InfoContext(ctx, "temp files cleaned up", slog.Int("files_deleted", deleted))
	return nil
}
