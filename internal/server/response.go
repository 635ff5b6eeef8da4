package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/simonhull/spectra"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// respondError logs err and writes it as JSON. The status is derived from
// the error kind unless status is non-zero.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if status == 0 {
		status = statusFor(err)
	}

	kind := spectra.KindOf(err)
	reqID := middleware.GetReqID(r.Context())

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"status", status,
		"kind", kind.String(),
		"error", err.Error(),
		"request_id", reqID,
	)

	resp := ErrorResponse{Error: err.Error(), RequestID: reqID}
	if kind != spectra.KindNone {
		resp.Kind = kind.String()
	}
	writeJSON(w, status, resp)
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, spectra.ErrDecompressedTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBusy):
		return http.StatusServiceUnavailable
	}

	switch spectra.KindOf(err) {
	case spectra.KindUnsupportedFormat, spectra.KindInvalidOption:
		return http.StatusBadRequest
	case spectra.KindNotImplemented:
		return http.StatusNotImplemented
	case spectra.KindNone:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// floats marshals NaN and ±Inf as null, which encoding/json rejects.
type floats []float64

func (f floats) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2+len(f)*8)
	buf = append(buf, '[')
	for i, v := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}
