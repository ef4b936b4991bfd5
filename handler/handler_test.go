package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/handler"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/ratelimit"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

type fakeDecoder struct {
	width  int
	height int
}

func (d fakeDecoder) DecodeBounds(_ io.Reader) (int, int, error) {
	return d.width, d.height, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	return handler.New(log,
		handler.WithMXResolver(validator.MXResolverFunc(func(_ context.Context, domain string) (bool, error) {
			return domain == "example.com", nil
		})),
		handler.WithImageDecoder(fakeDecoder{width: 800, height: 600}),
	).Routes()
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestValidateNumber(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("valid value in range", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/number?min=0&max=10", `{"value":"5"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5.0, decodeBody(t, rec)["value"])
	})

	t.Run("JSON numbers are accepted", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/number", `{"value":5}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("above max answers 400", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/number?min=0&max=10", `{"value":"15"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, string(validator.CodeAboveMax), body["code"])
		assert.NotEmpty(t, body["error"])
	})

	t.Run("malformed bound answers 400", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/number?min=abc", `{"value":"5"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-textual value answers 422", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/number", `{"value":[1,2]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestValidateStringEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   validator.Code
	}{
		{"age below minimum", "/v1/validate/age", `{"value":"16"}`, http.StatusBadRequest, validator.CodeBelowMin},
		{"age custom minimum", "/v1/validate/age?min_age=16", `{"value":"16"}`, http.StatusOK, ""},
		{"decimal too precise", "/v1/validate/decimal?max_decimal_places=2", `{"value":"12.345"}`, http.StatusBadRequest, validator.CodeNotADecimal},
		{"decimal ok", "/v1/validate/decimal?max_decimal_places=2", `{"value":"12.34"}`, http.StatusOK, ""},
		{"decimal precision out of range", "/v1/validate/decimal?max_decimal_places=1001", `{"value":"1.23"}`, http.StatusBadRequest, validator.CodeBadFormat},
		{"length too short", "/v1/validate/length?min_length=5", `{"value":"abc"}`, http.StatusBadRequest, validator.CodeTooShort},
		{"alphanumeric ok", "/v1/validate/alphanumeric", `{"value":"abc123"}`, http.StatusOK, ""},
		{"alphanumeric empty", "/v1/validate/alphanumeric", `{"value":""}`, http.StatusBadRequest, validator.CodeEmptyValue},
		{"alphabetic rejects digits", "/v1/validate/alphabetic", `{"value":"abc1"}`, http.StatusBadRequest, validator.CodeNotAlphabetic},
		{"name ok", "/v1/validate/name?field=firstname", `{"value":"Alice"}`, http.StatusOK, ""},
		{"address bad characters", "/v1/validate/address", `{"value":"Main St. #5"}`, http.StatusBadRequest, validator.CodeBadFormat},
		{"gender normalized", "/v1/validate/gender", `{"value":"MALE"}`, http.StatusOK, ""},
		{"gender custom set", "/v1/validate/gender?allowed=unknown", `{"value":"male"}`, http.StatusBadRequest, validator.CodeNotAllowed},
		{"phone ok", "/v1/validate/phone", `{"value":"+1 (555) 123-4567"}`, http.StatusOK, ""},
		{"phone bad format", "/v1/validate/phone", `{"value":"not-a-phone"}`, http.StatusBadRequest, validator.CodeBadFormat},
		{"zipcode plus four", "/v1/validate/zipcode", `{"value":"12345-6789"}`, http.StatusOK, ""},
		{"zipcode too short", "/v1/validate/zipcode", `{"value":"1234"}`, http.StatusBadRequest, validator.CodeTooShort},
		{"pincode ok", "/v1/validate/pincode", `{"value":"560001"}`, http.StatusOK, ""},
		{"password missing upper", "/v1/validate/password", `{"value":"abc12345"}`, http.StatusBadRequest, validator.CodeMissingUpper},
		{"password ok", "/v1/validate/password", `{"value":"Abc123!@"}`, http.StatusOK, ""},
		{"date ok", "/v1/validate/date", `{"value":"2024-02-29"}`, http.StatusOK, ""},
		{"date impossible", "/v1/validate/date", `{"value":"2024-02-30"}`, http.StatusBadRequest, validator.CodeInvalidCalendarDate},
		{"email ok", "/v1/validate/email", `{"value":"alice@example.com"}`, http.StatusOK, ""},
		{"email unresolvable domain", "/v1/validate/email", `{"value":"alice@nomx.test"}`, http.StatusBadRequest, validator.CodeDomainUnresolvable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code, "body: %s", rec.Body.String())
			if tc.code != "" {
				assert.Equal(t, string(tc.code), decodeBody(t, rec)["code"])
			}
		})
	}
}

func TestValidateBoolean(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("strict boolean passes", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/boolean", `{"value":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["value"])
	})

	t.Run("truthy string answers 422", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/boolean", `{"value":"true"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, string(validator.CodeNotBoolean), decodeBody(t, rec)["code"])
	})
}

func TestValidateDateRange(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("ordered range passes", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/daterange", `{"start":"2023-01-01","end":"2024-01-01"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("inverted range fails", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/daterange", `{"start":"2024-01-01","end":"2023-01-01"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(validator.CodeRangeInverted), decodeBody(t, rec)["code"])
	})
}

func postFile(t *testing.T, router http.Handler, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("valid pdf passes", func(t *testing.T) {
		rec := postFile(t, router, "/v1/validate/document", "report_2024.pdf", []byte("content"))
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		assert.Equal(t, "report_2024.pdf", decodeBody(t, rec)["value"])
	})

	t.Run("unsupported extension fails", func(t *testing.T) {
		rec := postFile(t, router, "/v1/validate/document", "malware.exe", []byte("content"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(validator.CodeUnsupportedType), decodeBody(t, rec)["code"])
	})

	t.Run("oversized document fails", func(t *testing.T) {
		rec := postFile(t, router, "/v1/validate/document", "big.pdf", make([]byte, 3<<20))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(validator.CodeFileTooLarge), decodeBody(t, rec)["code"])
	})

	t.Run("missing file field fails", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate/document", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidateImage(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("valid image passes", func(t *testing.T) {
		rec := postFile(t, router, "/v1/validate/image", "photo.jpg", []byte("imagedata"))
		assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	})

	t.Run("bad file name fails before decode", func(t *testing.T) {
		rec := postFile(t, router, "/v1/validate/image", "my photo.jpg", []byte("imagedata"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(validator.CodeBadFileName), decodeBody(t, rec)["code"])
	})
}

func TestRateLimitedRoutes(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(ratelimit.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(limiter.Close)

	router := handler.New(slog.New(slog.DiscardHandler),
		handler.WithMXResolver(validator.MXResolverFunc(func(context.Context, string) (bool, error) {
			return true, nil
		})),
		handler.WithRateLimit(limiter),
	).Routes()

	for range 2 {
		rec := postJSON(t, router, "/v1/validate/pincode", `{"value":"560001"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postJSON(t, router, "/v1/validate/pincode", `{"value":"560001"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// the liveness probe sits outside the limited route group
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	probe := httptest.NewRecorder()
	router.ServeHTTP(probe, req)
	assert.Equal(t, http.StatusOK, probe.Code)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/validate/pincode", `{"value":"560001"}`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestLogsCarryComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	router := handler.New(log).Routes()

	rec := postJSON(t, router, "/v1/validate/pincode", `{"value":"560001"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "handler", record["component"])
	assert.Equal(t, "request handled", record["msg"])
}
