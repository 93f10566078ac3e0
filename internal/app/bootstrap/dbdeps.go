// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/termsvc/internal/app/store/tosdocs"
	"github.com/dalemusser/termsvc/internal/app/system/ratelimit"
	"github.com/dalemusser/termsvc/internal/app/system/telemetry"
)

// DBDeps holds the back-end dependencies opened in ConnectDB.
type DBDeps struct {
	Documents     *tosdocs.Store
	TraceShutdown telemetry.ShutdownFunc

	// DownloadLimiter is nil when download rate limiting is disabled.
	DownloadLimiter *ratelimit.Limiter
}
