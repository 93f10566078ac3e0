// internal/app/features/tos/version.go
package tos

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/termsvc/internal/domain/models"
)

// ServeVersion handles GET /tos/version.
//
//	{ "version":"2.1.0", "effectiveDate":"2025-01-15", "lastUpdated":"2025-01-10" }
func (h *Handler) ServeVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.CurrentTermsVersion)
}
