package ipmc

import (
	"context"
	"fmt"

	"github.com/apollo-tools/go-ipmc/protocol"
)

// ByteConn is the byte-granular transport an exchange runs over.
// session.Session satisfies it; tests supply scripted implementations.
type ByteConn interface {
	// ReadByte reads exactly one byte, failing on deadline expiry
	ReadByte() (byte, error)

	// WriteByte writes exactly one byte, failing on deadline expiry
	WriteByte(b byte) error
}

// exchange performs one half-duplex request/response cycle on the
// echo-synchronized console. It is an explicit three-phase automaton
// (transmit-echo, receive-until-prompt, discard-suffix) so the timeout
// behavior of each phase is testable in isolation.
type exchange struct {
	conn   ByteConn
	limit  int
	prompt byte
}

// run executes the full cycle and returns the decoded response text.
func (e *exchange) run(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := e.transmitEcho(command); err != nil {
		return "", fmt.Errorf("transmit %q: %w", command, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, sawPrompt, err := e.receiveUntilPrompt()
	if err != nil {
		return "", fmt.Errorf("receive response: %w", err)
	}

	// Budget exhaustion without a prompt is not a failure: some
	// commands (firmware-mode ones in particular) never emit another
	// prompt in-session. The suffix only exists after a prompt.
	if sawPrompt {
		if err := e.discardSuffix(); err != nil {
			return "", fmt.Errorf("drain prompt suffix: %w", err)
		}
	}

	return decodeASCII(data)
}

// transmitEcho sends the command one byte at a time, reading back and
// discarding the controller's synchronous echo after every byte.
//
// The terminal emulation on the controller does not buffer input.
// Writing the line in bulk and draining echoes afterwards can
// interleave echo bytes with real response data and silently
// desynchronize every subsequent exchange on the session.
func (e *exchange) transmitEcho(command string) error {
	for i := 0; i < len(command); i++ {
		if err := e.conn.WriteByte(command[i]); err != nil {
			return err
		}
		if _, err := e.conn.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// receiveUntilPrompt accumulates response bytes up to the byte budget.
// A prompt byte terminates the phase, except as the very first byte
// received: that one is treated as leftover from the previous
// exchange's trailing echo and silently dropped. This compensates for
// undocumented controller behavior and is a known fragility; it is
// reproduced as-is rather than "fixed".
func (e *exchange) receiveUntilPrompt() (data []byte, sawPrompt bool, err error) {
	for len(data) < e.limit {
		b, err := e.conn.ReadByte()
		if err != nil {
			return nil, false, err
		}
		if b == e.prompt {
			if len(data) == 0 {
				continue
			}
			return data, true, nil
		}
		data = append(data, b)
	}
	return data, false, nil
}

// discardSuffix drains the fixed two-byte "> " tail that follows the
// prompt marker, keeping the stream aligned for the next exchange.
// A stall here is a real timeout and propagates.
func (e *exchange) discardSuffix() error {
	for i := 0; i < protocol.PromptSuffixLen; i++ {
		if _, err := e.conn.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// decodeASCII validates that the accumulated bytes are plain ASCII and
// returns them as text. A non-ASCII byte is a protocol violation and
// surfaces as a *protocol.DecodeError, never a silent replacement.
func decodeASCII(data []byte) (string, error) {
	for i, b := range data {
		if b > 0x7F {
			return "", &protocol.DecodeError{Offset: i, Byte: b}
		}
	}
	return string(data), nil
}
