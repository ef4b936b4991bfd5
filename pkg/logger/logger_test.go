package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("visible")
		record := logLine(t, &buf)
		assert.Equal(t, "visible", record["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("static attributes appear on every record", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "fieldcheck")),
		)

		log.Info("tagged")
		record := logLine(t, &buf)
		assert.Equal(t, "fieldcheck", record["service"])
	})

	t.Run("development preset enables debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("fieldcheck"))

		log.Debug("dev detail")
		out := buf.String()
		assert.Contains(t, out, "dev detail")
		assert.Contains(t, out, "env=development")
	})

	t.Run("environment selects production for prod", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment("production", "fieldcheck"))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("shipped")
		record := logLine(t, &buf)
		assert.Equal(t, "production", record["env"])
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.True(t, logger.Error(err).Equal(slog.Any("error", err)))
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Component("handler").Equal(slog.String("component", "handler")))
	assert.True(t, logger.RequestID("abc").Equal(slog.String("request_id", "abc")))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Code("too_short").Equal(slog.String("code", "too_short")))
	assert.True(t, logger.Duration(time.Second).Equal(slog.Any("duration", time.Second)))
}
