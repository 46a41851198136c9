package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
)

func (api *Api) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.logger.Error("failed to encode response", zap.Error(err))
	}
}

// respondError translates an error into its JSON body. Deliberate errors
// (validation, auth, not found) travel verbatim; anything else is logged
// and replaced with a generic internal-error body.
func (api *Api) respondError(w http.ResponseWriter, r *http.Request, err error) {
	app := apperrors.From(err)
	if app.Code == apperrors.CodeInternal || app.Code == apperrors.CodeUnknown {
		api.logger.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		api.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
			"code":  string(apperrors.CodeInternal),
		})
		return
	}
	api.respondJSON(w, app.Code.HTTPStatus(), map[string]string{
		"error": app.Message,
		"code":  string(app.Code),
	})
}

// decodeJSON parses a request body, reporting malformed JSON as a
// validation error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid request body", err)
	}
	return nil
}
