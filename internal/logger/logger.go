package logger

import (
	"context"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Logger is a small facade over the underlying logging backend.
// Methods accept a message (event name in snake_case) and structured key/value fields.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

// Options controls logger construction.
type Options struct {
	// Out is the primary destination for diagnostics. Defaults to os.Stderr.
	Out io.Writer
	// Level is one of: "debug", "info", "warn", "error". Defaults to "warn":
	// anything written to stderr during prompt evaluation ends up inside the
	// shell prompt, so the primary sink stays quiet unless asked otherwise.
	Level string
	// Format controls primary output: "auto" (default), "pretty", or "json".
	// When "auto", TTY → pretty; non-TTY → json.
	Format string
	// NoColor disables color in pretty output. For JSON it has no effect.
	NoColor bool
	// LogFile, when set, enables an additional JSON sink written to this path.
	// This is the preferred destination for prompt tools.
	LogFile string
}

// New constructs a Logger according to Options. It may create an additional
// file sink when Options.LogFile is provided. The returned closer should be
// invoked on process exit to flush/close any resources (it is a no-op if nil).
func New(opts Options) (Logger, io.Closer, error) {
	primaryOut := opts.Out
	if primaryOut == nil {
		primaryOut = os.Stderr
	}

	cl := clog.NewWithOptions(primaryOut, clog.Options{})
	cl.SetLevel(parseLevel(opts.Level))
	cl.SetFormatter(chooseFormatter(primaryOut, opts.Format))
	cl.SetReportTimestamp(true)
	if opts.NoColor {
		// Best-effort: the Charm libs respect NO_COLOR; set it here.
		_ = os.Setenv("NO_COLOR", "1")
	}

	sinks := []Logger{&charmLogger{l: cl}}

	var closer io.Closer
	if strings.TrimSpace(opts.LogFile) != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		fl := clog.NewWithOptions(f, clog.Options{})
		fl.SetLevel(parseLevel(opts.Level))
		fl.SetFormatter(clog.JSONFormatter)
		fl.SetReportTimestamp(true)
		sinks = append(sinks, &charmLogger{l: fl})
		closer = f
	}

	if len(sinks) == 1 {
		return sinks[0], closer, nil
	}
	return &multiLogger{sinks: sinks}, closer, nil
}

func chooseFormatter(w io.Writer, format string) clog.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return clog.JSONFormatter
	case "pretty", "text":
		return clog.TextFormatter
	default:
		if f, ok := w.(*os.File); ok {
			if isatty.IsTerminal(f.Fd()) {
				return clog.TextFormatter
			}
		}
		return clog.JSONFormatter
	}
}

func parseLevel(s string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.WarnLevel
	}
}

type charmLogger struct{ l *clog.Logger }

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }
func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

type multiLogger struct{ sinks []Logger }

func (m *multiLogger) Debug(msg string, keyvals ...any) {
	for _, s := range m.sinks {
		s.Debug(msg, keyvals...)
	}
}
func (m *multiLogger) Info(msg string, keyvals ...any) {
	for _, s := range m.sinks {
		s.Info(msg, keyvals...)
	}
}
func (m *multiLogger) Warn(msg string, keyvals ...any) {
	for _, s := range m.sinks {
		s.Warn(msg, keyvals...)
	}
}
func (m *multiLogger) Error(msg string, keyvals ...any) {
	for _, s := range m.sinks {
		s.Error(msg, keyvals...)
	}
}
func (m *multiLogger) With(keyvals ...any) Logger {
	next := make([]Logger, 0, len(m.sinks))
	for _, s := range m.sinks {
		next = append(next, s.With(keyvals...))
	}
	return &multiLogger{sinks: next}
}

// Context -----------------------------------------------------------------

type ctxKey struct{}

// WithContext returns a derived context carrying the logger.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger from context or a no-op logger if absent.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return Nop()
	}
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(Logger); ok && l != nil {
			return l
		}
	}
	return Nop()
}

// Nop returns a Logger that discards all logs.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) With(...any) Logger   { return nopLogger{} }
