// Package handler exposes each validator through a thin JSON endpoint. The
// layer does nothing but decode the input, construct the validator with
// request-supplied bounds, and translate the outcome into a response.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/fieldcheck/pkg/clientip"
	"github.com/dmitrymomot/fieldcheck/pkg/httpserver"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/ratelimit"
	"github.com/dmitrymomot/fieldcheck/pkg/requestid"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

// Handler holds the injectable collaborators shared by the endpoints.
type Handler struct {
	log      *slog.Logger
	resolver validator.MXResolver
	decoder  validator.ImageDecoder
	limiter  *ratelimit.Bucket
}

// Option configures a Handler.
type Option func(*Handler)

// WithMXResolver overrides the resolver used by the email endpoint.
func WithMXResolver(r validator.MXResolver) Option {
	return func(h *Handler) {
		if r != nil {
			h.resolver = r
		}
	}
}

// WithImageDecoder overrides the decoder used by the image endpoint.
func WithImageDecoder(d validator.ImageDecoder) Option {
	return func(h *Handler) {
		if d != nil {
			h.decoder = d
		}
	}
}

// WithRateLimit enforces b on the validation endpoints, keyed by client IP.
// Without this option the endpoints are not rate limited.
func WithRateLimit(b *ratelimit.Bucket) Option {
	return func(h *Handler) {
		h.limiter = b
	}
}

// New returns a Handler with the given logger and options applied. Log
// records emitted by the handler are tagged with the handler component.
func New(log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		log:      log.With(logger.Component("handler")),
		resolver: validator.NewNetMXResolver(validator.DefaultLookupTimeout),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the router: one endpoint per validator plus a liveness probe.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(h.logRequests)

	r.Get("/healthz", httpserver.HealthCheckHandler(context.Background(), h.log))

	r.Route("/v1/validate", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(ratelimit.Middleware(h.limiter, clientip.FromRequest))
		}
		r.Post("/number", h.validateNumber)
		r.Post("/age", h.validateAge)
		r.Post("/decimal", h.validateDecimal)
		r.Post("/length", h.validateLength)
		r.Post("/alphanumeric", h.validateAlphanumeric)
		r.Post("/alphabetic", h.validateAlphabetic)
		r.Post("/name", h.validateName)
		r.Post("/address", h.validateAddress)
		r.Post("/gender", h.validateGender)
		r.Post("/phone", h.validatePhone)
		r.Post("/email", h.validateEmail)
		r.Post("/zipcode", h.validateZipcode)
		r.Post("/pincode", h.validatePincode)
		r.Post("/date", h.validateDate)
		r.Post("/daterange", h.validateDateRange)
		r.Post("/boolean", h.validateBoolean)
		r.Post("/password", h.validatePassword)
		r.Post("/document", h.validateDocument)
		r.Post("/image", h.validateImage)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.InfoContext(r.Context(), "request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("client_ip", clientip.FromRequest(r)),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Duration(time.Since(start)),
		)
	})
}
