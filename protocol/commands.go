package protocol

import (
	"fmt"
	"strings"
)

// Command is one literal line of text sent to the controller, already
// terminated with CRLF. The controller echoes every byte of it.
type Command struct {
	// Keyword is the command keyword the line was built from
	Keyword string

	// Text is the complete line including terminator, transmitted
	// verbatim
	Text string
}

// Values is the configuration mapping the codec consumes: group name to
// field name to string value. The document is assumed schema-checked by
// the caller; the codec still verifies exhaustively that every required
// field is present before generating anything.
type Values map[string]map[string]string

// Lookup returns the value for group.field and whether it is present.
func (v Values) Lookup(group, field string) (string, bool) {
	fields, ok := v[group]
	if !ok {
		return "", false
	}
	value, ok := fields[field]
	return value, ok
}

// BuildWriteCommands derives the full write-command sequence from the
// configuration values, in field-table order.
//
// Validation is exhaustive and happens before any command is built:
// a single missing required field fails the whole batch with a
// *MissingFieldError, so a partially provisioned EEPROM cannot result
// from a bad document. Optional fields that are absent are skipped.
//
// MAC-valued fields have every ':' replaced by a space before the line
// is composed: the controller's argument parser splits on whitespace,
// so this is a protocol requirement, not cosmetics.
func BuildWriteCommands(values Values) ([]Command, error) {
	specs := Fields()

	// Validate everything up front. Partial validation followed by
	// partial transmission is disallowed.
	for _, spec := range specs {
		if _, ok := values[spec.Group]; !ok {
			if spec.Optional {
				continue
			}
			return nil, &MissingFieldError{Group: spec.Group}
		}
		if _, ok := values.Lookup(spec.Group, spec.Field); !ok {
			if spec.Optional {
				continue
			}
			return nil, &MissingFieldError{Group: spec.Group, Field: spec.Field}
		}
	}

	commands := make([]Command, 0, len(specs))
	for _, spec := range specs {
		value, ok := values.Lookup(spec.Group, spec.Field)
		if !ok {
			continue // optional, already validated
		}
		if spec.Group == "mac" {
			value = strings.ReplaceAll(value, ":", " ")
		}
		commands = append(commands, Command{
			Keyword: spec.Keyword,
			Text:    fmt.Sprintf("%s %s%s", spec.Keyword, value, Terminator),
		})
	}

	return commands, nil
}

// ReadbackCommand returns the fixed diagnostic command that dumps the
// EEPROM contents for verification.
func ReadbackCommand() Command {
	return Command{
		Keyword: ReadbackKeyword,
		Text:    ReadbackKeyword + Terminator,
	}
}
