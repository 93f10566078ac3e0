// internal/app/features/tos/handler.go
package tos

import (
	"context"

	apierrors "github.com/dalemusser/termsvc/internal/app/features/errors"
	"go.uber.org/zap"
)

// DocumentReader reads Terms of Service documents by untrusted relative name.
// Implementations must return tosdocs.ErrNotFound for anything that does not
// resolve to a regular file inside their data directory.
type DocumentReader interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// Handler serves the Terms of Service API.
type Handler struct {
	Docs   DocumentReader
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a tos Handler.
func NewHandler(docs DocumentReader, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Docs:   docs,
		ErrLog: errLog,
		Log:    logger,
	}
}
