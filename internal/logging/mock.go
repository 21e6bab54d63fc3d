package logging

// MockLogger captures log entries for verification in tests. Derived loggers
// returned by WithError/WithField share the parent's entry sink, so a test
// can always inspect the root mock.
type MockLogger struct {
	entries       *[]LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry is a single captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{entries: &[]LogEntry{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug captures a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info captures an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn captures a warning-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error captures an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal captures a fatal-level entry. The mock does not exit.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// WithError returns a derived logger with an error attached.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.entries, pendingError: err, pendingFields: m.pendingFields}
}

// WithField returns a derived logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a derived logger with fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{entries: m.entries, pendingError: m.pendingError, pendingFields: all}
}

// Entries returns all captured entries.
func (m *MockLogger) Entries() []LogEntry {
	return *m.entries
}

// HasEntry reports whether an entry with the given level and message was captured.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range *m.entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
