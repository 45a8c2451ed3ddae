package protocol

import "sort"

// Outcome classifies a single expected key against the parsed dump.
type Outcome int

const (
	// OutcomeMatch means the key is present with the expected value
	OutcomeMatch Outcome = iota

	// OutcomeMismatch means the key is present with a different value
	OutcomeMismatch

	// OutcomeAbsent means the key is missing from the dump
	OutcomeAbsent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// KeyResult is the verification outcome for one expected key.
type KeyResult struct {
	Key      string
	Outcome  Outcome
	Expected string

	// Actual is the value the controller reported; empty when absent
	Actual string
}

// VerificationResult collects the per-key outcomes of comparing a
// parsed status dump against the expected post-write state.
type VerificationResult struct {
	// Keys holds one result per expected key, sorted by key name for
	// stable reporting
	Keys []KeyResult
}

// OK reports whether every expected key was present and matching.
func (r *VerificationResult) OK() bool {
	for _, k := range r.Keys {
		if k.Outcome != OutcomeMatch {
			return false
		}
	}
	return true
}

// Failures returns the subset of results that did not match.
func (r *VerificationResult) Failures() []KeyResult {
	var out []KeyResult
	for _, k := range r.Keys {
		if k.Outcome != OutcomeMatch {
			out = append(out, k)
		}
	}
	return out
}

// Verify compares a parsed status dump against the expected state.
// Every expected key is classified as matching, mismatching (with both
// values kept for diagnostics), or absent. Keys present in the dump but
// not expected are ignored.
func Verify(parsed, expected map[string]string) *VerificationResult {
	keys := make([]string, 0, len(expected))
	for key := range expected {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := &VerificationResult{Keys: make([]KeyResult, 0, len(keys))}
	for _, key := range keys {
		want := expected[key]
		got, ok := parsed[key]
		switch {
		case !ok:
			result.Keys = append(result.Keys, KeyResult{Key: key, Outcome: OutcomeAbsent, Expected: want})
		case got != want:
			result.Keys = append(result.Keys, KeyResult{Key: key, Outcome: OutcomeMismatch, Expected: want, Actual: got})
		default:
			result.Keys = append(result.Keys, KeyResult{Key: key, Outcome: OutcomeMatch, Expected: want, Actual: got})
		}
	}
	return result
}
