package protocol

import "fmt"

// MissingFieldError indicates that a required group or field is absent
// from the configuration document. It is raised before any command is
// built or transmitted.
type MissingFieldError struct {
	// Group is the missing (or incomplete) configuration group
	Group string

	// Field is the missing field within the group; empty when the
	// whole group is absent
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration group not found: %s", e.Group)
	}
	return fmt.Sprintf("configuration field not found: %s (under %s)", e.Field, e.Group)
}

// DecodeError indicates that a response byte cannot be interpreted as
// the controller's ASCII text protocol. This is a protocol violation,
// never silently replaced.
type DecodeError struct {
	// Offset is the position of the offending byte within the response
	Offset int

	// Byte is the offending byte value
	Byte byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("non-ASCII byte 0x%02X in response at offset %d", e.Byte, e.Offset)
}

// ValueError indicates that a configuration value has the wrong form
// for the expected-state derivation (e.g. a non-integer version).
type ValueError struct {
	Group string
	Field string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %s.%s: %q (integer required)", e.Group, e.Field, e.Value)
}
