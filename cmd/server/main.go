package main

import (
	"context"
	"os"
	"time"

	"github.com/dmitrymomot/fieldcheck/handler"
	"github.com/dmitrymomot/fieldcheck/pkg/config"
	"github.com/dmitrymomot/fieldcheck/pkg/httpserver"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/ratelimit"
	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	LookupTimeout    time.Duration `env:"MX_LOOKUP_TIMEOUT" envDefault:"5s"`
	RateLimitEnabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimit        ratelimit.Config
	Server           httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "fieldcheck"))
	logger.SetAsDefault(log)

	opts := []handler.Option{
		handler.WithMXResolver(validator.NewNetMXResolver(cfg.LookupTimeout)),
	}
	if cfg.RateLimitEnabled {
		limiter, err := ratelimit.New(cfg.RateLimit)
		if err != nil {
			log.Error("invalid rate limit configuration", logger.Error(err))
			os.Exit(1)
		}
		defer limiter.Close()
		opts = append(opts, handler.WithRateLimit(limiter))
	}

	h := handler.New(log, opts...)

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log.With(logger.Component("httpserver"))))
	if err := srv.Run(context.Background(), h.Routes()); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
