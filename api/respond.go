package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/garnizeh/bectrack/internal/validation"
	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies read by create and update handlers.
const maxBodyBytes = 1 << 20

// Validator checks a creation payload against the schema registered for kind.
type Validator interface {
	Validate(ctx context.Context, kind string, body []byte) ([]validation.FieldError, error)
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, messageResponse{Message: msg}, status)
}

// writeValidation reports a 400 in the {"message","errors"} shape.
func writeValidation(w http.ResponseWriter, entity string, errs []validation.FieldError) {
	writeJSON(w, validationResponse{Message: "Invalid " + entity + " data", Errors: errs}, http.StatusBadRequest)
}

// writeFailure logs cause and answers 500 with a static message.
func writeFailure(w http.ResponseWriter, r *http.Request, action string, cause error) {
	logger.Error("request failed",
		slog.String("action", action),
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestID(r.Context())),
		slog.Any("err", cause),
	)
	writeMessage(w, http.StatusInternalServerError, "Failed to "+action)
}

// pathID reads an integer path variable. On failure it has already written
// the 400 response.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// decodeCreate validates the request body against kind's schema, decodes
// it over dst, which carries the creation defaults, and validates the
// decoded record again. It reports whether the handler may continue; on
// false the response is written.
func decodeCreate(w http.ResponseWriter, r *http.Request, v Validator, kind, entity, action string, dst any) bool {
	body, err := readBody(w, r)
	if err != nil {
		writeValidation(w, entity, []validation.FieldError{{Path: "/", Message: err.Error()}})
		return false
	}

	errs, err := v.Validate(r.Context(), kind, body)
	if err != nil {
		writeFailure(w, r, action, err)
		return false
	}
	if len(errs) > 0 {
		writeValidation(w, entity, errs)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeValidation(w, entity, []validation.FieldError{{Path: "/", Message: err.Error()}})
		return false
	}

	// encoding/json folds key case, so "XP" may have overwritten a valid
	// "xp". Check the decoded record too.
	decoded, err := json.Marshal(dst)
	if err != nil {
		writeFailure(w, r, action, err)
		return false
	}
	errs, err = v.Validate(r.Context(), kind, decoded)
	if err != nil {
		writeFailure(w, r, action, err)
		return false
	}
	if len(errs) > 0 {
		writeValidation(w, entity, errs)
		return false
	}
	return true
}

// decodePatch reads an update body as a set of top-level JSON fields.
func decodePatch(w http.ResponseWriter, r *http.Request, entity string) (models.Patch, bool) {
	body, err := readBody(w, r)
	if err != nil {
		writeValidation(w, entity, []validation.FieldError{{Path: "/", Message: err.Error()}})
		return nil, false
	}

	var p models.Patch
	if err := json.Unmarshal(body, &p); err != nil || p == nil {
		writeValidation(w, entity, []validation.FieldError{{Path: "/", Message: "body must be a JSON object"}})
		return nil, false
	}
	return p, true
}

// writeUpdated finishes an update handler: invalid patch values are a 400,
// a missing record a 404, anything else a 500.
func writeUpdated[T any](w http.ResponseWriter, r *http.Request, v *T, err error, entity, label, action string) {
	switch {
	case errors.Is(err, models.ErrInvalidPatch):
		writeValidation(w, entity, []validation.FieldError{{Path: "/", Message: err.Error()}})
	case err != nil:
		writeFailure(w, r, action, err)
	case v == nil:
		writeMessage(w, http.StatusNotFound, label+" not found")
	default:
		writeJSON(w, v, http.StatusOK)
	}
}
