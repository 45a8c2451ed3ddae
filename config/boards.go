package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// BoardMap resolves service module numbers to the IP addresses of
// their IPMCs on the management network. It is plain immutable data:
// construct one and pass it to whatever needs it.
type BoardMap map[int]string

// UnknownBoardError indicates that a board number has no entry in the
// map.
type UnknownBoardError struct {
	Number int
}

func (e *UnknownBoardError) Error() string {
	return fmt.Sprintf("IPMC cannot be found for service module: SM%d", e.Number)
}

// Resolve returns the IPMC address for the given board number.
func (m BoardMap) Resolve(number int) (string, error) {
	addr, ok := m[number]
	if !ok {
		return "", &UnknownBoardError{Number: number}
	}
	return addr, nil
}

// LoadBoardMap reads a board map from a YAML file of the form:
//
//	boards:
//	  203: 192.168.21.5
//	  207: 192.168.22.32
func LoadBoardMap(path string) (BoardMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open board map file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseBoardMapReader(f)
}

// ParseBoardMapReader reads a board map from any io.Reader.
func ParseBoardMapReader(r io.Reader) (BoardMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board map: %w", err)
	}

	var doc struct {
		Boards map[int]string `yaml:"boards"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse board map: %w", err)
	}
	if len(doc.Boards) == 0 {
		return nil, fmt.Errorf("board map has no boards")
	}

	return BoardMap(doc.Boards), nil
}

// DefaultBoardMap returns the lab's stock board table. Returned fresh
// on every call so callers can extend their copy without affecting
// anyone else.
func DefaultBoardMap() BoardMap {
	return BoardMap{
		203: "192.168.21.5",
		204: "192.168.22.34",
		207: "192.168.22.32",
		208: "192.168.22.41",
		209: "192.168.22.37",
		211: "192.168.22.42",
		212: "192.168.22.3",
	}
}
