package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/simonhull/spectra"
	"github.com/simonhull/spectra/internal/logging"
)

// formatInfo describes one format in GET /v1/formats.
type formatInfo struct {
	Name        string   `json:"name"`
	Extensions  []string `json:"extensions"`
	Implemented bool     `json:"implemented"`
}

// ValidateResponse is the body of POST /v1/validate/{format}.
type ValidateResponse struct {
	ID     string            `json:"id"`
	Format string            `json:"format"`
	Valid  bool              `json:"valid"`
	Kind   string            `json:"kind,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Line   int               `json:"line,omitempty"`
	Offset int64             `json:"offset,omitempty"`
	Rows   int               `json:"rows"`
	Header map[string]string `json:"header,omitempty"`
}

// DecodeResponse is the body of POST /v1/decode/{format}.
type DecodeResponse struct {
	ID          string        `json:"id"`
	Format      string        `json:"format"`
	Title       string        `json:"title,omitempty"`
	Points      int           `json:"points"`
	Fingerprint string        `json:"fingerprint"`
	X           floats        `json:"x"`
	Y           floats        `json:"y"`
	NonFinite   int           `json:"non_finite,omitempty"`
	Skipped     []skippedInfo `json:"skipped,omitempty"`
}

type skippedInfo struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": spectra.Version,
		"decodes": s.limiter.status(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	var out []formatInfo
	for _, f := range spectra.Formats() {
		out = append(out, formatInfo{
			Name:        strings.ToLower(f.String()),
			Extensions:  f.Extensions(),
			Implemented: f.Implemented(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	token, opts, ok := s.prepare(w, r)
	if !ok {
		return
	}

	body, release, ok := s.readBody(w, r)
	if !ok {
		return
	}
	defer release()

	id := uuid.NewString()
	log := logging.WithFields(r.Context(), "report_id", id, "format", token)

	d, err := spectra.Validate(bytes.NewReader(body), token, append(opts, spectra.WithLogger(log))...)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	resp := ValidateResponse{
		ID:     id,
		Format: strings.ToLower(d.Format.String()),
		Valid:  d.Valid,
		Reason: d.Reason,
		Line:   d.Line,
		Offset: d.Offset,
		Rows:   d.Rows,
		Header: d.Header,
	}
	if !d.Valid {
		resp.Kind = d.Kind.String()
	}
	log.Info("validated upload", "valid", d.Valid, "kind", d.Kind.String(), "bytes", len(body))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	token, opts, ok := s.prepare(w, r)
	if !ok {
		return
	}

	body, release, ok := s.readBody(w, r)
	if !ok {
		return
	}
	defer release()

	id := uuid.NewString()
	log := logging.WithFields(r.Context(), "report_id", id, "format", token)

	series, err := spectra.Read(bytes.NewReader(body), token, append(opts, spectra.WithLogger(log))...)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	resp := DecodeResponse{
		ID:          id,
		Format:      strings.ToLower(series.Format.String()),
		Title:       series.Title,
		Points:      series.Len(),
		Fingerprint: fmt.Sprintf("%016x", spectra.Fingerprint(series)),
		X:           floats(series.X),
		Y:           floats(series.Y),
		NonFinite:   series.NonFinite,
	}
	for _, sk := range series.Skipped {
		resp.Skipped = append(resp.Skipped, skippedInfo{Line: sk.Line, Reason: sk.Reason})
	}
	log.Info("decoded upload", "points", resp.Points, "skipped", len(resp.Skipped))
	writeJSON(w, http.StatusOK, resp)
}

// prepare resolves the format token and query options before the body is
// read, so bad requests are rejected without consuming a decode slot.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (string, []spectra.Option, bool) {
	token := chi.URLParam(r, "format")
	if _, err := spectra.ParseFormat(token); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return "", nil, false
	}

	delim := s.delimiter
	if q := r.URL.Query().Get("delimiter"); q != "" {
		d, err := spectra.ParseDelimiter(q)
		if err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return "", nil, false
		}
		delim = d
	}

	columns := s.columns
	if q := r.URL.Query().Get("columns"); q != "" {
		c, err := spectra.ParseColumnMode(q)
		if err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return "", nil, false
		}
		columns = c
	}

	compression, err := spectra.ParseCompression(r.Header.Get("Content-Encoding"))
	if err != nil {
		respondError(w, r, err, http.StatusUnsupportedMediaType)
		return "", nil, false
	}

	return token, []spectra.Option{
		spectra.WithName(token + " upload"),
		spectra.WithDelimiter(delim),
		spectra.WithColumnMode(columns),
		spectra.WithCompression(compression),
		spectra.WithMaxDecompressedSize(s.cfg.Decode.MaxExpandedSize),
	}, true
}

// readBody takes a decode slot and reads the bounded request body. On
// success the caller owns the slot and must call release.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, func(), bool) {
	if err := s.limiter.acquire(r.Context()); err != nil {
		w.Header().Set("Retry-After", "1")
		respondError(w, r, err, http.StatusServiceUnavailable)
		return nil, nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Decode.MaxFileSize))
	if err != nil {
		s.limiter.release()
		respondError(w, r, fmt.Errorf("read body: %w", err), 0)
		return nil, nil, false
	}
	return body, s.limiter.release, true
}
