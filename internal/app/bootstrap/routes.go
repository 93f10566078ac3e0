// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/termsvc/internal/app/features/errors"
	healthfeature "github.com/dalemusser/termsvc/internal/app/features/health"
	tosfeature "github.com/dalemusser/termsvc/internal/app/features/tos"
	"github.com/dalemusser/termsvc/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, schema checks
// and Startup have completed. The router carries request ids and panic
// recovery, mounts /health and /tos, and is wrapped for tracing.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Documents, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Terms of Service
	tosHandler := tosfeature.NewHandler(deps.Documents, errLog, logger)
	r.Mount("/tos", tosfeature.Routes(tosHandler, deps.DownloadLimiter))

	// chi hands both handlers down to the mounted subrouters.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Write(w, errorsfeature.NotFound("Route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Write(w, errorsfeature.MethodNotAllowed(r.Method, r.URL.Path))
	})

	return otelhttp.NewHandler(r, serviceName), nil
}
