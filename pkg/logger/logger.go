package logger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

var (
	level   = new(slog.LevelVar)
	Default *slog.Logger
)

func init() {
	w := os.Stdout

	var h slog.Handler
	if isatty.IsTerminal(w.Fd()) {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: timeFormat,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	Default = slog.New(h)
	slog.SetDefault(Default)

	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		return
	}

	switch lvl {
	case "ERROR":
		SetLevel(slog.LevelError)
	case "WARN":
		SetLevel(slog.LevelWarn)
	case "INFO":
		SetLevel(slog.LevelInfo)
	case "DEBUG":
		SetLevel(slog.LevelDebug)
	default:
		fmt.Printf("Unknown log level: %s != [ERROR,WARN,INFO,DEBUG]\n", lvl)
	}
}

// Logger returns the process-wide logger.  Components that take an injected
// *slog.Logger should default to this.
func Logger() *slog.Logger {
	return Default
}

func SetLevel(lvl slog.Level) { level.Set(lvl) }

func IsDebug() bool { return level.Level() <= slog.LevelDebug }
func IsInfo() bool  { return level.Level() <= slog.LevelInfo }
func IsWarn() bool  { return level.Level() <= slog.LevelWarn }

func Debug(msg string, args ...any) { Default.Debug(msg, args...) }
func Info(msg string, args ...any)  { Default.Info(msg, args...) }
func Warn(msg string, args ...any)  { Default.Warn(msg, args...) }
func Error(msg string, args ...any) { Default.Error(msg, args...) }

func Debugf(format string, args ...any) { Default.Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Default.Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Default.Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Default.Error(fmt.Sprintf(format, args...)) }

func Fatal(msg string, args ...any) {
	Default.Error(msg, args...)
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Default.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
