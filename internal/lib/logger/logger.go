package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/linemk/farmconnect/internal/lib/logger/handlers/slogpretty"
)

// окружения из конфига (поле env)
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// SetupLogger инициализирует логгер сервиса, вывод в stdout
func SetupLogger(env string) *slog.Logger {
	return New(env, os.Stdout)
}

// New собирает логгер под окружение: local - цветной pretty-вывод с debug,
// dev - JSON с debug, prod и неизвестные значения - JSON с info.
// Все записи помечаются именем сервиса и окружением.
func New(env string, out io.Writer) *slog.Logger {
	var handler slog.Handler

	switch env {
	case EnvLocal:
		color.NoColor = false
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
		}
		handler = opts.NewPrettyHandler(out)
	case EnvDev:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.New(handler).With(
		slog.String("service", "farmconnect"),
		slog.String("env", env),
	)
}
