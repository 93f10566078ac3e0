// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/termsvc/internal/app/store/tosdocs"
	"github.com/dalemusser/termsvc/internal/app/system/ratelimit"
	"github.com/dalemusser/termsvc/internal/app/system/telemetry"
	"github.com/dalemusser/termsvc/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the document store and the trace exporter, and starts the
// download rate limiter when one is configured.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	docs, err := tosdocs.Open(appCfg.DataDir)
	if err != nil {
		logger.Error("open document store failed", zap.String("data_dir", appCfg.DataDir), zap.Error(err))
		return DBDeps{}, err
	}

	shutdown, err := telemetry.Init(ctx, serviceName, models.CurrentTermsVersion.Version, appCfg.OTelEndpoint)
	if err != nil {
		_ = docs.Close()
		return DBDeps{}, fmt.Errorf("init tracing: %w", err)
	}

	deps := DBDeps{Documents: docs, TraceShutdown: shutdown}
	if appCfg.DownloadRateLimit > 0 {
		deps.DownloadLimiter = ratelimit.New(appCfg.DownloadRateLimit, appCfg.DownloadRateWindow)
	}

	logger.Info("document store opened", zap.String("data_dir", docs.Dir()))
	return deps, nil
}

// EnsureSchema verifies the data directory is usable. The directory is
// populated externally, so nothing is created here.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Documents.Check(); err != nil {
		logger.Error("data directory check failed", zap.Error(err))
		return err
	}
	return nil
}
