package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/mystira/mystira-server/internal/errors"
)

// errorResponse is the wire shape of an error
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

// writeJSON writes a JSON response with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps an application error code to an HTTP status
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)

	var status int
	switch code {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeValidation, apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.CodeInvalidState, apperrors.CodeAlreadyExists:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}

	h.writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

// decodeJSON decodes a request body, returning an invalid-argument error on
// malformed input
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInvalidArgument, "invalid request body")
	}
	return nil
}
