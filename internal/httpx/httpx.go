// Package httpx holds the JSON plumbing shared by the HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToHTTPResponse maps an error class onto a status code. Storage failures never
// leak driver messages to the client.
func ToHTTPResponse(err error) (int, ErrorResponse) {
	code := apperror.Code(err)
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Code: code, Message: err.Error()}
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Code: code, Message: err.Error()}
	case errors.Is(err, apperror.ErrAmbiguous), errors.Is(err, apperror.ErrInsufficientStock):
		return http.StatusConflict, ErrorResponse{Code: code, Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: "storage", Message: "internal server error"}
	}
}

func WriteError(w http.ResponseWriter, err error) {
	status, body := ToHTTPResponse(err)
	WriteSuccess(w, status, body)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// DecodeJSON reads a single JSON object into dst. Malformed bodies are validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("request body is empty")
		}
		return apperror.Validation("invalid request body: %v", err)
	}
	return nil
}

// PathID parses the {id} URL parameter.
func PathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid id %q", raw)
	}
	return id, nil
}

// QueryInt reads an optional non-negative integer query parameter.
func QueryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.Validation("invalid %s %q", key, raw)
	}
	return n, nil
}

// QueryInt64 is QueryInt for identifiers.
func QueryInt64(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.Validation("invalid %s %q", key, raw)
	}
	return n, nil
}
