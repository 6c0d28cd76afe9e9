package eeprom

import "time"

// Progress reports the state of a chunked operation. Passed to
// ProgressCallback after every completed chunk.
type Progress struct {
	// Op is the operation in flight: "write", "erase" or "verify".
	Op string

	// CurrentChunk is the number of chunks completed so far.
	CurrentChunk int

	// TotalChunks is the total number of chunks in the operation.
	TotalChunks int

	// BytesDone is the number of bytes transferred so far.
	BytesDone int

	// BytesTotal is the size of the whole operation.
	BytesTotal int

	// Percentage is the completion percentage (0.0 to 100.0).
	Percentage float64

	// Elapsed is the time since the operation started.
	Elapsed time.Duration
}

// ProgressCallback is called after each chunk of a chunked operation.
// Implementations should return quickly; the self-timed write cycle already
// dominates the operation's runtime.
type ProgressCallback func(Progress)

// Logger is an optional logging interface. It matches common structured
// loggers so any framework can be adapted.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
