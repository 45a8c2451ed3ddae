package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/apollo-tools/go-ipmc/protocol"
)

const sampleConfig = `
board:
  serial: 207
  rev: 3
eeprom:
  version: 1
zynq:
  bootmode: 1
mac:
  eth0: "aa:bb:cc:dd:ee:ff"
  eth1: "11:22:33:44:55:66"
`

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	values := doc.Values()
	tests := []struct {
		group, field, want string
	}{
		{"board", "serial", "207"},
		{"board", "rev", "3"},
		{"eeprom", "version", "1"},
		{"zynq", "bootmode", "1"},
		{"mac", "eth0", "aa:bb:cc:dd:ee:ff"},
		{"mac", "eth1", "11:22:33:44:55:66"},
	}
	for _, tt := range tests {
		got, ok := values.Lookup(tt.group, tt.field)
		if !ok {
			t.Errorf("%s.%s missing after normalization", tt.group, tt.field)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.%s = %q, want %q", tt.group, tt.field, got, tt.want)
		}
	}
}

func TestParseReaderInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "not yaml", text: "{{{"},
		{name: "scalar document", text: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseReader(strings.NewReader(tt.text)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// The loaded document feeds the codec unchanged; a document missing a
// required field must be rejected there before anything is sent.
func TestDocumentFeedsCodecValidation(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	delete(doc["mac"], "eth1")

	_, err = protocol.BuildWriteCommands(doc.Values())
	var missing *protocol.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %T (%v), want *protocol.MissingFieldError", err, err)
	}
}

func TestBoardMapResolve(t *testing.T) {
	boards := DefaultBoardMap()

	addr, err := boards.Resolve(207)
	if err != nil {
		t.Fatalf("Resolve(207): %v", err)
	}
	if addr != "192.168.22.32" {
		t.Errorf("Resolve(207) = %q, want 192.168.22.32", addr)
	}

	_, err = boards.Resolve(999)
	var unknown *UnknownBoardError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T (%v), want *UnknownBoardError", err, err)
	}
	if unknown.Number != 999 {
		t.Errorf("UnknownBoardError.Number = %d, want 999", unknown.Number)
	}
}

func TestParseBoardMapReader(t *testing.T) {
	boards, err := ParseBoardMapReader(strings.NewReader("boards:\n  203: 192.168.21.5\n  207: 192.168.22.32\n"))
	if err != nil {
		t.Fatalf("ParseBoardMapReader: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2", len(boards))
	}
	if addr, _ := boards.Resolve(203); addr != "192.168.21.5" {
		t.Errorf("Resolve(203) = %q, want 192.168.21.5", addr)
	}

	if _, err := ParseBoardMapReader(strings.NewReader("boards: {}\n")); err == nil {
		t.Error("expected error for empty board map, got nil")
	}
}
