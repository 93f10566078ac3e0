// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging level, timeouts).
type AppConfig struct {
	// Terms of Service documents
	DataDir string // Directory the download endpoint serves from (read-only)

	// Download rate limiting (per client IP)
	DownloadRateLimit  int           // Requests allowed per window; 0 disables limiting
	DownloadRateWindow time.Duration // Window length

	// Tracing
	OTelEndpoint string // OTLP/HTTP endpoint URL; blank falls back to OTEL_EXPORTER_OTLP_ENDPOINT
}
