package checker

import (
	"strings"
	"time"
)

// Verdict classifies the outcome of a single availability lookup.
type Verdict string

const (
	// VerdictAvailable means the domain has no registered record (NXDOMAIN).
	VerdictAvailable Verdict = "available"
	// VerdictUnavailable means the domain resolves to an existing record.
	VerdictUnavailable Verdict = "unavailable"
	// VerdictFailed means the lookup could not be completed; Result.Err
	// carries the reason.
	VerdictFailed Verdict = "failed"
)

// Result pairs a domain with its lookup verdict.
type Result struct {
	Domain     string    `json:"domain"`
	Verdict    Verdict   `json:"verdict"`
	Err        string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	DurationMs int64     `json:"duration_ms"`
}

// Available reports whether the domain can be registered.
func (r Result) Available() bool { return r.Verdict == VerdictAvailable }

// Failed reports whether the lookup did not complete.
func (r Result) Failed() bool { return r.Verdict == VerdictFailed }

// Report aggregates the results of one batch. Results preserve input order
// and contain exactly one entry per input domain.
type Report struct {
	Results []Result `json:"results"`
}

// HasErrors is true iff at least one lookup failed.
func (r Report) HasErrors() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}

	return false
}

// Available returns the domains that can be registered, preserving input order.
func (r Report) Available() []string {
	var out []string
	for _, res := range r.Results {
		if res.Available() {
			out = append(out, res.Domain)
		}
	}

	return out
}

// Message renders the notification text for the batch, or "" when nothing is
// available. The join order is deterministic (input order).
func (r Report) Message() string {
	avail := r.Available()
	if len(avail) == 0 {
		return ""
	}

	return "Domains available for registration: " + strings.Join(avail, ", ")
}
