package slogpretty_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/linemk/farmconnect/internal/lib/logger/handlers/slogpretty"
)

func TestPrettyHandler_WritesMessageAndAttrs(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "test.op"))

	log.Warn("order rejected", slog.Int64("buyerID", 7), slog.Any("error", errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "WARN:")
	assert.Contains(t, out, "order rejected")
	assert.Contains(t, out, `"op": "test.op"`)
	assert.Contains(t, out, `"buyerID": 7`)
	assert.Contains(t, out, `"error": "boom"`)
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_CallAttrsOverrideWithAttrs(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("op", "outer"))

	log.Info("nested", slog.String("op", "inner"))

	out := buf.String()
	assert.Contains(t, out, `"op": "inner"`)
	assert.NotContains(t, out, `"op": "outer"`)
}
