package ipmc

import "time"

// Run phases reported through ProgressCallback.
const (
	// PhaseWriting covers the EEPROM write-command sequence
	PhaseWriting = "writing"

	// PhaseReadingBack covers the final diagnostic read-back
	PhaseReadingBack = "reading-back"

	// PhaseVerifying covers the comparison against the expected state
	PhaseVerifying = "verifying"

	// PhaseComplete is reported once, after verification
	PhaseComplete = "complete"
)

// Progress describes the state of a provisioning run.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// Command is the command line currently in flight, without its
	// terminator; empty outside PhaseWriting and PhaseReadingBack
	Command string

	// Index is the 1-based position of the current command
	Index int

	// Total is the number of write commands in the run
	Total int

	// Elapsed is the time since the run started
	Elapsed time.Duration
}

// ProgressCallback is called as the run advances. Implementations
// should return quickly; the exchange lockstep is paused while the
// callback runs.
type ProgressCallback func(Progress)

// Logger is an optional logging interface. It keeps the library
// agnostic of the logging framework; the bundled CLIs adapt logrus
// to it.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
