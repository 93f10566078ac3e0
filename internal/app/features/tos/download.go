// internal/app/features/tos/download.go
package tos

import (
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/termsvc/internal/app/features/errors"
	"github.com/dalemusser/termsvc/internal/app/store/tosdocs"
	"go.uber.org/zap"
)

// ServeDownload handles GET /tos/download?file=<name>.
//
// On success: 200, text/plain; charset=utf-8, body is the file verbatim.
// Missing files and names that escape the data directory both answer
//
//	404 { "error": { "code":"NOT_FOUND", "message":"File '<name>' not found" } }
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")

	data, err := h.Docs.Read(r.Context(), file)
	if errors.Is(err, tosdocs.ErrNotFound) {
		h.Log.Debug("tos document not found", zap.String("file", file))
		apierrors.Write(w, apierrors.NotFound("File", file))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "tos download failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
