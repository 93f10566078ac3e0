package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Checker reports whether a backing resource is usable.
type Checker interface {
	Check() error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Storage Checker
	Log     *zap.Logger
}

// NewHandler constructs a health Handler for the document storage.
func NewHandler(storage Checker, logger *zap.Logger) *Handler {
	return &Handler{
		Storage: storage,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Message string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "storage":"available" }
//
// When the data directory is gone or unreadable: 503 and
//
//	{ "status":"error", "storage":"unavailable", "message":"Document storage unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Storage: "available",
	}

	if err := h.Storage.Check(); err != nil {
		h.Log.Error("health-check: document storage check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Storage = "unavailable"
		resp.Message = "Document storage unavailable"
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
