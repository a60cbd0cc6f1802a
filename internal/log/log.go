// Package log is qkart's debug logger. Lines carry a level, a category and
// key=value fields, go to a file, and are mirrored onto a pubsub broker so the
// in-app log overlay can follow them. Logging is off until Init is called,
// which happens only with --debug or QKART_DEBUG set.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qkart/internal/pubsub"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log lines.
type Category string

const (
	CatConfig   Category = "config"   // config loading and validation
	CatRegister Category = "register" // registration state machine
	CatHTTP     Category = "http"     // auth service client
	CatUI       Category = "ui"       // screen updates
	CatNav      Category = "nav"      // navigation handoff
	CatStub     Category = "stub"     // local auth stub server
	CatTrace    Category = "trace"    // tracing provider
)

// Logger writes formatted entries to w.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	mu            sync.RWMutex
	defaultLogger *Logger
)

// Init starts logging to path through tea.LogToFile and returns a cleanup
// func that closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "qkart")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f)
	setDefault(l)
	return func() {
		setDefault(nil)
		_ = f.Close()
	}, nil
}

// New returns a logger writing to w at debug level.
func New(w io.Writer) *Logger {
	return &Logger{w: w, minLevel: LevelDebug, broker: pubsub.NewBroker[string]()}
}

// SetDefault installs l as the package logger. Passing nil disables logging.
func SetDefault(l *Logger) {
	setDefault(l)
}

func setDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields...) }

// Warn logs at warn level.
func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields...) }

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", errText)...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.log(time.Now(), level, cat, msg, fields...)
}

func (l *Logger) log(now time.Time, level Level, cat Category, msg string, fields ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minLevel {
		return
	}

	entry := Format(now, level, cat, msg, fields...)
	if l.w != nil {
		_, _ = io.WriteString(l.w, entry)
	}
	if l.broker != nil {
		l.broker.Publish(pubsub.LoggedEvent, entry)
	}
}

// Format renders one entry:
//
//	2026-10-19T10:45:00 [INFO] [register] submitted attempt=4f1c...
func Format(now time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", now.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}

// NewListener follows log entries for the lifetime of ctx. It returns nil
// when logging is disabled.
func NewListener(ctx context.Context) *pubsub.ContinuousListener[string] {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, l.broker)
}
