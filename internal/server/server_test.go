package server

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/spectra"
	"github.com/simonhull/spectra/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 5 * time.Second,
		},
		Decode: config.DecodeConfig{
			MaxFileSize:     1 << 16,
			MaxExpandedSize: 1 << 20,
			MaxConcurrent:   2,
			MaxWait:         50 * time.Millisecond,
			Delimiter:       ",",
			Columns:         "two",
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func spaFixture(spectrum ...float32) []byte {
	buf := make([]byte, 600)
	copy(buf[30:], "ATR sample")
	binary.LittleEndian.PutUint16(buf[296:], 3)
	binary.LittleEndian.PutUint16(buf[298:], 600)
	binary.LittleEndian.PutUint32(buf[564:], uint32(len(spectrum)))
	binary.LittleEndian.PutUint32(buf[576:], math.Float32bits(4000))
	binary.LittleEndian.PutUint32(buf[580:], math.Float32bits(1000))
	for _, v := range spectrum {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

func TestNew_RejectsBadDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.Decode.Delimiter = ";;"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Decode.Columns = "three"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestFormats(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/v1/formats", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []formatInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	byName := map[string]formatInfo{}
	for _, f := range got {
		byName[f.Name] = f
	}
	require.Contains(t, byName, "csv")
	require.Contains(t, byName, "spa")
	require.Contains(t, byName, "jcamp")
	assert.True(t, byName["csv"].Implemented)
	assert.False(t, byName["jcamp"].Implemented)
}

func TestValidate_Valid(t *testing.T) {
	s := newTestServer(t, testConfig())
	body := []byte("Wavelength,Intensity\n500,0.1\n501,0.2\n")

	rec := do(t, s, http.MethodPost, "/v1/validate/csv", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "csv", resp.Format)
	assert.Equal(t, 2, resp.Rows)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Kind)
}

func TestValidate_InvalidIsStillOK(t *testing.T) {
	s := newTestServer(t, testConfig())
	body := []byte("500,0.1\n501,0.2\n")

	rec := do(t, s, http.MethodPost, "/v1/validate/csv", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "MissingWavelengthHeader", resp.Kind)
	assert.NotEmpty(t, resp.Reason)
}

func TestValidate_UnknownFormat(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/v1/validate/xlsx", []byte("x"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UnsupportedFormat", resp.Kind)
}

func TestDecode_CSV(t *testing.T) {
	s := newTestServer(t, testConfig())
	body := []byte("Wavelength,Intensity\n500,0.1\n501,0.2\nnoise\n")

	rec := do(t, s, http.MethodPost, "/v1/decode/csv", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Points)
	assert.Equal(t, floats{500, 501}, resp.X)
	assert.Equal(t, floats{0.1, 0.2}, resp.Y)
	assert.Len(t, resp.Fingerprint, 16)
	assert.Len(t, resp.Skipped, 2)
}

func TestDecode_SPA(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/v1/decode/spa", spaFixture(0.5, 0.25), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ATR sample", resp.Title)
	assert.Equal(t, 2, resp.Points)
	require.Len(t, resp.X, 2)
	assert.InDelta(t, 2500, resp.X[0], 1e-6)
	assert.InDelta(t, 10000, resp.X[1], 1e-6)
}

func TestDecode_QueryOptions(t *testing.T) {
	s := newTestServer(t, testConfig())
	body := []byte("500\t10\t20\t15\n501\t10\t10\t15\n")

	rec := do(t, s, http.MethodPost, "/v1/decode/txt?delimiter=tab&columns=four", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Y         []*float64 `json:"y"`
		NonFinite int        `json:"non_finite"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Y, 2)
	require.NotNil(t, resp.Y[0])
	assert.InDelta(t, 0.5, *resp.Y[0], 1e-12)
	assert.Nil(t, resp.Y[1], "infinite values are encoded as null")
	assert.Equal(t, 1, resp.NonFinite)
}

func TestDecode_BadQueryOption(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/v1/decode/csv?columns=seven", []byte("500,1\n"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/decode/csv?delimiter=ab", []byte("500,1\n"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecode_ContentErrorStatuses(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name   string
		target string
		body   []byte
		status int
		kind   string
	}{
		{"empty csv", "/v1/decode/csv", []byte("a,b\n"), http.StatusUnprocessableEntity, "EmptyDataset"},
		{"truncated spa", "/v1/decode/spa", make([]byte, 100), http.StatusUnprocessableEntity, "BinaryLayoutError"},
		{"jcamp", "/v1/decode/jcamp", []byte("##TITLE=x\n"), http.StatusNotImplemented, "NotImplemented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

func TestDecode_ContentEncoding(t *testing.T) {
	s := newTestServer(t, testConfig())

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte("Wavelength,Intensity\n500,0.1\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	rec := do(t, s, http.MethodPost, "/v1/decode/csv", buf.Bytes(), http.Header{"Content-Encoding": {"zstd"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/decode/csv", buf.Bytes(), http.Header{"Content-Encoding": {"brotli"}})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestDecode_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Decode.MaxFileSize = 16
	s := newTestServer(t, cfg)

	body := []byte(strings.Repeat("500,0.1\n", 10))
	rec := do(t, s, http.MethodPost, "/v1/decode/csv", body, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, int64(0), s.limiter.status().Active, "slot must be released")
}

func TestDecode_ExpandedBodyTooLarge(t *testing.T) {
	s := newTestServer(t, testConfig())

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(make([]byte, 4<<20))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.Less(t, buf.Len(), 1<<16, "compressed body must pass the body limit")

	header := http.Header{"Content-Encoding": {"zstd"}}
	for _, target := range []string{"/v1/decode/spa", "/v1/validate/spa", "/v1/decode/csv"} {
		t.Run(target, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, target, buf.Bytes(), header)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "MalformedStream", resp.Kind)
			assert.Equal(t, int64(0), s.limiter.status().Active, "slot must be released")
		})
	}
}

func TestDecode_Busy(t *testing.T) {
	cfg := testConfig()
	cfg.Decode.MaxConcurrent = 1
	s := newTestServer(t, cfg)

	require.NoError(t, s.limiter.acquire(context.Background()))
	defer s.limiter.release()

	rec := do(t, s, http.MethodPost, "/v1/decode/csv", []byte("Wavelength,I\n500,1\n"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestLimiter_Drain(t *testing.T) {
	l := newLimiter(2, time.Second)
	require.NoError(t, l.acquire(context.Background()))
	assert.Equal(t, int64(1), l.status().Active)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.drain(ctx), "drain waits for active slots")

	l.release()
	require.NoError(t, l.drain(context.Background()))
	assert.Equal(t, int64(0), l.status().Active)
}

func TestShutdown_NotStarted(t *testing.T) {
	s := newTestServer(t, testConfig())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestFloats_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(floats{1.5, math.NaN(), math.Inf(-1), 2})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,null,null,2]`, string(b))

	b, err = json.Marshal(floats{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(ErrBusy))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(&http.MaxBytesError{Limit: 1}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(&spectra.Error{
		Kind: spectra.KindMalformedStream,
		Err:  spectra.ErrDecompressedTooLarge,
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&spectra.Error{Kind: spectra.KindMalformedStream}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
