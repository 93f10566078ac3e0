// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/termsvc/internal/app/system/requestid"
	"go.uber.org/zap"
)

// ErrorLogger logs server-side failures with request context and writes the
// generic error response.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err under msg and responds with a 500 INTERNAL_ERROR.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	l.Log.Error(msg,
		zap.Error(err),
		zap.String("request_id", requestid.FromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	Write(w, Internal())
}
