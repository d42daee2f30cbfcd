// Package log provides structured logging for contactus.
// Entries carry a level and a category, are appended to a log file opened via
// tea.LogToFile, and are kept in memory for the in-app log overlay.
// Logging is off unless enabled with --debug or CONTACTUS_LOG_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
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

// ParseLevel maps a level name (case-insensitive) to a Level.
// Unknown names map to LevelDebug and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	default:
		return LevelDebug, false
	}
}

// Category groups related log messages.
type Category string

const (
	CatConfig Category = "config" // Configuration loading/saving
	CatUI     Category = "ui"     // UI component updates
	CatMode   Category = "mode"   // Page/mode transitions
	CatForm   Category = "form"   // Field edits and validation
	CatSubmit Category = "submit" // Contact submission lifecycle
	CatNav    Category = "nav"    // Navigation guard decisions
	CatAPI    Category = "api"    // Remote GraphQL calls
)

// Entry is a single log record.
type Entry struct {
	Time     time.Time
	Level    Level
	Category Category
	Message  string
	Fields   string // pre-rendered " key=value" pairs
}

// String renders the entry in the file format:
// 2025-12-06T10:45:00 [ERROR] [submit] message key=value key2=value2
func (e Entry) String() string {
	return fmt.Sprintf("%s [%s] [%s] %s%s",
		e.Time.Format("2006-01-02T15:04:05"), e.Level, e.Category, e.Message, e.Fields)
}

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	buffer   *RingBuffer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger with a plain append-mode file.
// Returns a cleanup function to close the log file.
func Init(path string, bufferSize int) (func(), error) {
	var initErr error
	once.Do(func() {
		defaultLogger, initErr = newLogger(path, bufferSize)
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
		}
	}, nil
}

// InitWithTeaLog uses tea.LogToFile for initialization so bubbletea's own
// debug output lands in the same file.
func InitWithTeaLog(path string, prefix string, bufferSize int) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}

	defaultLogger = &Logger{
		file:     f,
		writer:   f,
		buffer:   NewRingBuffer(bufferSize),
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
	}

	return func() { _ = f.Close() }, nil
}

// InitBufferOnly enables logging into the ring buffer without a file, so the
// log overlay still has content when no debug log path is configured.
func InitBufferOnly(bufferSize int, minLevel Level) {
	defaultLogger = &Logger{
		buffer:   NewRingBuffer(bufferSize),
		enabled:  true,
		minLevel: minLevel,
		now:      time.Now,
	}
}

func newLogger(path string, bufferSize int) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		buffer:   NewRingBuffer(bufferSize),
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	entry := Entry{
		Time:     now(),
		Level:    level,
		Category: cat,
		Message:  msg,
		Fields:   formatFields(fields),
	}

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry.String()+"\n")
	}
	if l.buffer != nil {
		l.buffer.Add(entry)
	}
}

// formatFields renders key/value pairs. An odd trailing key gets <missing>.
func formatFields(fields []any) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	return sb.String()
}

// RecentEntries returns up to count recent entries, oldest first.
func RecentEntries(count int) []Entry {
	if defaultLogger == nil || defaultLogger.buffer == nil {
		return nil
	}
	return defaultLogger.buffer.GetLast(count)
}

// GetRecentLogs returns recent entries rendered in the file format.
func GetRecentLogs(count int) []string {
	entries := RecentEntries(count)
	if entries == nil {
		return nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// ClearBuffer clears the ring buffer.
func ClearBuffer() {
	if defaultLogger == nil || defaultLogger.buffer == nil {
		return
	}
	defaultLogger.buffer.Clear()
}
