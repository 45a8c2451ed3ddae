package protocol

// Wire protocol constants for the IPMC telnet-style console.
const (
	// Prompt is the single byte the controller emits when it is ready
	// for the next command.
	Prompt = byte('>')

	// PromptSuffixLen is the number of filler bytes the controller
	// appends after the prompt marker ("> " minus the marker itself).
	// They must be drained to keep the stream aligned.
	PromptSuffixLen = 2

	// DefaultMaxResponseSize is the default byte budget for a single
	// command response. Responses past this size are truncated, not
	// failed: some commands never emit a further prompt in-session.
	DefaultMaxResponseSize = 2048

	// DefaultPort is the telnet service port on the IPMC.
	DefaultPort = 23
)

// Terminator is the line terminator for every transmitted command.
// The controller recognizes no other delimiter.
const Terminator = "\r\n"

// ReadbackKeyword is the diagnostic command that dumps the EEPROM
// contents. Used both as the final verification step and as a plain
// status query.
const ReadbackKeyword = "eepromrd"
