// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for termsvc.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: data_dir, download_rate_limit, etc.
//   - Environment variables: TERMSVC_DATA_DIR, TERMSVC_DOWNLOAD_RATE_LIMIT, etc.
//   - Command-line flags: --data_dir, --download_rate_limit, etc.
var appConfigKeys = []config.AppKey{
	{Name: "data_dir", Default: "./data", Desc: "Directory containing the Terms of Service text files"},

	// Download rate limiting
	{Name: "download_rate_limit", Default: 60, Desc: "Max /tos/download requests per client IP per window (0 disables)"},
	{Name: "download_rate_window", Default: "1m", Desc: "Rate limit window (e.g., 30s, 1m)"},

	// Tracing
	{Name: "otel_endpoint", Default: "", Desc: "OTLP/HTTP trace endpoint URL (blank uses OTEL_EXPORTER_OTLP_ENDPOINT, or discards spans)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence is flags > env > files > defaults, as implemented by
// config.LoadWithAppConfig.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TERMSVC", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DataDir: strings.TrimSpace(appValues.String("data_dir")),

		DownloadRateLimit:  appValues.Int("download_rate_limit"),
		DownloadRateWindow: appValues.Duration("download_rate_window", time.Minute),

		OTelEndpoint: appValues.String("otel_endpoint"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.DataDir == "" {
		return errors.New("data_dir is required")
	}

	if appCfg.DownloadRateLimit < 0 {
		return fmt.Errorf("download_rate_limit must be >= 0, got %d", appCfg.DownloadRateLimit)
	}
	if appCfg.DownloadRateLimit > 0 && appCfg.DownloadRateWindow <= 0 {
		return fmt.Errorf("download_rate_window must be positive when rate limiting is enabled, got %s", appCfg.DownloadRateWindow)
	}
	if appCfg.DownloadRateLimit == 0 {
		logger.Warn("download rate limiting disabled")
	}

	return nil
}
