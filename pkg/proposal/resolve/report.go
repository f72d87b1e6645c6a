package resolve

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the outcome of a single region.
type Status string

const (
	StatusMatched            Status = "matched"
	StatusUnchanged          Status = "unchanged"
	StatusSkippedEmpty       Status = "skipped-empty"
	StatusSkippedUnsupported Status = "skipped-unsupported"
)

// RegionResult records what happened to one region.
type RegionResult struct {
	Kind     Kind     `json:"kind"`
	Location Location `json:"location"`
	Status   Status   `json:"status"`
	// Tokens lists each replacement in order; a token replaced twice
	// appears twice.
	Tokens []string `json:"tokens,omitempty"`
	// Rule names the rule that handled a replacement, if any.
	Rule   string `json:"rule,omitempty"`
	Reason string `json:"reason,omitempty"`
	// Fallback marks a region in the mc:Fallback copy of alternate
	// content. Its replacements are made but not counted in
	// Report.Replacements, which counts what a reader sees.
	Fallback bool `json:"fallback,omitempty"`
}

// Report summarizes a resolver pass.
type Report struct {
	Regions      []RegionResult `json:"regions"`
	Replacements map[string]int `json:"replacements"`
	tokens       []string
}

func newReport(tokens []string) *Report {
	r := &Report{Replacements: make(map[string]int, len(tokens)), tokens: tokens}
	for _, t := range tokens {
		r.Replacements[t] = 0
	}
	return r
}

func (r *Report) add(res RegionResult) {
	r.Regions = append(r.Regions, res)
	if res.Fallback {
		return
	}
	for _, t := range res.Tokens {
		r.Replacements[t]++
	}
}

// Count returns the number of regions with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Regions {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Total returns the number of replacements made.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Replacements {
		n += c
	}
	return n
}

// Unmatched returns the tokens that were never replaced, sorted.
func (r *Report) Unmatched() []string {
	var out []string
	for t, c := range r.Replacements {
		if c == 0 {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Skipped returns the regions that could not be processed.
func (r *Report) Skipped() []RegionResult {
	var out []RegionResult
	for _, res := range r.Regions {
		if res.Status == StatusSkippedUnsupported {
			out = append(out, res)
		}
	}
	return out
}

// Summary renders a one-line description of the pass.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d replacements in %d regions", r.Total(), r.Count(StatusMatched))
	if n := r.Count(StatusSkippedUnsupported); n > 0 {
		fmt.Fprintf(&sb, ", %d unsupported shapes skipped", n)
	}
	if un := r.Unmatched(); len(un) > 0 {
		fmt.Fprintf(&sb, ", unmatched: %s", strings.Join(un, " "))
	}
	return sb.String()
}
