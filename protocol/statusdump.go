package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseStatusDump extracts the key/value mapping from the free-form
// text returned by the read-back command.
//
// The dump is line-oriented. Lines of the form "key = value" are
// collected (whitespace around '=' is insignificant); lines without an
// '=' are ignored. Keys and values never contain '=' themselves, so the
// split is taken at the last occurrence. On duplicate keys the last
// occurrence wins.
func ParseStatusDump(text string) map[string]string {
	mapping := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		idx := strings.LastIndex(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		mapping[key] = value
	}

	return mapping
}

var boardNumberRe = regexp.MustCompile(`#(\d+)`)

// BoardNumber extracts the service module number from a status dump.
// The controller reports it on the "hw" line as "rev<N> #<number>".
func BoardNumber(dump string) (int, error) {
	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "hw") || !strings.Contains(line, "#") {
			continue
		}
		tokens := strings.Fields(line)
		m := boardNumberRe.FindStringSubmatch(tokens[len(tokens)-1])
		if m == nil {
			continue
		}
		return strconv.Atoi(m[1])
	}
	return 0, &BoardNumberError{}
}

// BoardNumberError indicates that no board number could be found in a
// status dump.
type BoardNumberError struct{}

func (e *BoardNumberError) Error() string {
	return "could not retrieve the service module number from the status dump"
}
