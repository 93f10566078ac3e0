// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the rate limiter, flushes pending spans and releases the
// data directory.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var errs []error

	if deps.DownloadLimiter != nil {
		deps.DownloadLimiter.Stop()
	}

	if deps.TraceShutdown != nil {
		logger.Info("flushing traces")
		if err := deps.TraceShutdown(ctx); err != nil {
			logger.Error("trace shutdown failed", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if deps.Documents != nil {
		logger.Info("closing document store")
		if err := deps.Documents.Close(); err != nil {
			logger.Error("document store close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
