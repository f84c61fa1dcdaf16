package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/mirror"
)

// StartMirror performs the initial fetch and launches the refresh loop.
func StartMirror(ctx context.Context, m *mirror.Mirror, logger *zap.Logger) error {
	if m == nil {
		return nil
	}
	if err := m.Start(ctx); err != nil {
		return err
	}
	logger.Info("live collection mirror started")
	return nil
}
