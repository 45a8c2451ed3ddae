// Package protocol implements the line-oriented control protocol of
// the IPMC serial console exposed over telnet.
//
// # Protocol Overview
//
// The controller presents an interactive, prompt-delimited terminal
// session. Commands are literal ASCII lines terminated by CRLF; every
// transmitted byte is echoed back before the next byte may be sent.
// A single '>' byte marks the end of a response, followed by two filler
// bytes ("> " suffix) that must be drained to keep the stream aligned.
//
// # Command Builders
//
// BuildWriteCommands derives the EEPROM write sequence from a
// configuration mapping:
//
//	commands, err := protocol.BuildWriteCommands(values)
//	for _, cmd := range commands {
//	    // transmit cmd.Text over the session
//	}
//
// ReadbackCommand returns the fixed "eepromrd" diagnostic command used
// for verification.
//
// # Response Parsing and Verification
//
// The read-back response is a free-form text dump with "key = value"
// lines:
//
//	parsed := protocol.ParseStatusDump(dump)
//	expected, err := protocol.ExpectedState(values)
//	result := protocol.Verify(parsed, expected)
//	if !result.OK() {
//	    for _, f := range result.Failures() {
//	        // f.Key, f.Outcome, f.Expected, f.Actual
//	    }
//	}
//
// # Error Handling
//
// The package provides structured error types:
//   - MissingFieldError: required configuration field absent
//   - ValueError: configuration value has the wrong form
//   - DecodeError: response byte outside the ASCII protocol
//   - BoardNumberError: no board number in a status dump
package protocol
