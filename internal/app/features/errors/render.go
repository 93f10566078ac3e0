// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Write renders err as
//
//	{ "error": { "code": "NOT_FOUND", "message": "File 'x' not found" } }
//
// with the matching status. Anything that is not an *Error is rendered as
// Internal so causes never reach the client.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorBody{Code: apiErr.Code, Message: apiErr.Message},
	})
}
