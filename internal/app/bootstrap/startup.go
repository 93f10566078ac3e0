// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/termsvc/internal/app/system/telemetry"
	"github.com/dalemusser/termsvc/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after backends are connected and before the HTTP handler is
// built. termsvc has nothing to warm, so it records the effective settings.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("termsvc starting",
		zap.String("tos_version", models.CurrentTermsVersion.Version),
		zap.String("data_dir", deps.Documents.Dir()),
		zap.Int("download_rate_limit", appCfg.DownloadRateLimit),
		zap.Duration("download_rate_window", appCfg.DownloadRateWindow),
		zap.Bool("trace_export", telemetry.ResolveEndpoint(appCfg.OTelEndpoint) != ""),
	)
	return nil
}
