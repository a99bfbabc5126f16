// File: internal/services/logger.go
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a LOG_LEVEL env value to a LogLevel, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ProductionLogger writes structured JSON entries in production and
// human-readable lines during development. Safe for concurrent use.
type ProductionLogger struct {
	mu         sync.Mutex
	out        io.Writer
	level      LogLevel
	service    string
	structured bool
}

// NewProductionLogger creates a production-ready logger for the named service.
func NewProductionLogger(service string) *ProductionLogger {
	return &ProductionLogger{
		out:        os.Stdout,
		level:      LogLevelInfo,
		service:    service,
		structured: true,
	}
}

// SetLevel updates the logging level.
func (p *ProductionLogger) SetLevel(level LogLevel) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// SetStructured toggles JSON output.
func (p *ProductionLogger) SetStructured(structured bool) {
	p.mu.Lock()
	p.structured = structured
	p.mu.Unlock()
}

// SetOutput redirects log output; used by tests.
func (p *ProductionLogger) SetOutput(w io.Writer) {
	p.mu.Lock()
	p.out = w
	p.mu.Unlock()
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelInfo, msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelError, msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelDebug, msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelWarn, msg, keysAndValues...)
}

func (p *ProductionLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if level < p.level {
		return
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if p.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   p.service,
			"message":   msg,
		}
		if fields := pairFields(keysAndValues); len(fields) > 0 {
			entry["fields"] = fields
		}
		line, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(p.out, "[%s] %s [%s] %s (log marshal failed: %v)\n",
				timestamp, level.String(), p.service, msg, err)
			return
		}
		p.out.Write(append(line, '\n'))
		return
	}

	var kv strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&kv, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintf(p.out, "[%s] %s [%s] %s%s\n", timestamp, level.String(), p.service, msg, kv.String())
}

// pairFields folds variadic key/value pairs into a map; non-string keys and
// a trailing unpaired value are dropped rather than panicking.
func pairFields(keysAndValues []interface{}) map[string]interface{} {
	if len(keysAndValues) < 2 {
		return nil
	}
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger is the environment-based logger factory: no-op under GO_ENV=test,
// JSON under GO_ENV=production, human-readable otherwise. LOG_LEVEL controls
// the threshold.
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "test" {
		return &NoOpLogger{}
	}

	logger := NewProductionLogger(service)
	logger.SetLevel(ParseLogLevel(os.Getenv("LOG_LEVEL")))
	logger.SetStructured(env == "production")
	return logger
}
