package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apollo-tools/go-ipmc/protocol"
)

// Document is the raw IPMC configuration: group name to field name to
// scalar value, as loaded from YAML.
type Document map[string]map[string]interface{}

// Load reads a configuration document from the given file path.
//
// Example:
//
//	doc, err := config.Load("config/ipmc_config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open IPMC configuration file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader reads a configuration document from any io.Reader.
// Useful for testing and non-file sources.
func ParseReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("empty configuration document")
	}

	return doc, nil
}

// Values normalizes the document's scalars to strings in the mapping
// the protocol codec consumes. YAML integers, booleans, and strings
// all format with their natural representation.
func (d Document) Values() protocol.Values {
	values := make(protocol.Values, len(d))
	for group, fields := range d {
		if fields == nil {
			values[group] = map[string]string{}
			continue
		}
		normalized := make(map[string]string, len(fields))
		for field, value := range fields {
			normalized[field] = fmt.Sprintf("%v", value)
		}
		values[group] = normalized
	}
	return values
}
