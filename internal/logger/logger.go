package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu    sync.RWMutex
	base  zerolog.Logger
	ready bool
)

// Options drive Init.
type Options struct {
	// Level is one of trace|debug|info|warn|error|disabled (default info).
	Level string
	// Pretty switches to the human console writer.
	Pretty bool
	// Out defaults to stdout.
	Out io.Writer
}

// Init configures the global logger. Safe to call more than once; the last
// call wins.
func Init(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opts.Out != nil {
		w = opts.Out
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Str("app", "salespulse").Logger().Level(parseLevel(opts.Level))

	mu.Lock()
	base, ready = l, true
	mu.Unlock()
}

// InitFromEnv configures the logger from LOG_LEVEL and LOG_PRETTY.
// Used before the configuration is loaded and by L() as a fallback.
func InitFromEnv() {
	Init(Options{
		Level:  getenv("LOG_LEVEL", "info"),
		Pretty: strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"),
	})
}

// L returns the global logger, initializing it from the environment if
// nothing configured it yet.
func L() *zerolog.Logger {
	mu.RLock()
	l, ok := base, ready
	mu.RUnlock()
	if !ok {
		InitFromEnv()
		mu.RLock()
		l = base
		mu.RUnlock()
	}
	return &l
}

// ForTask returns a child logger tagged with the task id.
func ForTask(taskID int) zerolog.Logger {
	return L().With().Int("task_id", taskID).Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
