package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/dpp0007/HackHerth/internal/service"
)

const maxBodyBytes = 1 << 20

type envelope map[string]any

// writeJSON sends an envelope with success set to true.
func writeJSON(w http.ResponseWriter, status int, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["success"] = true
	encode(w, status, body)
}

func writeError(w http.ResponseWriter, err error) {
	encode(w, statusFor(err), envelope{
		"success": false,
		"error":   err.Error(),
	})
}

func encode(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func statusFor(err error) int {
	var bad *badRequestError
	switch {
	case service.IsValidation(err), errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

// decodeBody fills dst from the JSON request body. An empty body leaves dst
// at its zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &badRequestError{msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// requestNow reads the optional ?now= RFC3339 override. A zero result lets
// the service use the wall clock.
func requestNow(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("now")
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, &badRequestError{msg: fmt.Sprintf("invalid now %q: expected RFC3339", v)}
	}
	return t.UTC(), nil
}
