package resolve

import (
	"fmt"
)

// Fragment is the part of a matched token carried by one run.
type Fragment struct {
	// Run is the index of the run within the region.
	Run int
	// Length is the number of token bytes in the run.
	Length int
}

// StylePolicy chooses which run of a matched span receives the value, and so
// whose formatting the value takes.
type StylePolicy interface {
	Name() string
	// Choose returns an index into frags; frags is never empty.
	Choose(frags []Fragment) int
}

type firstRun struct{}

func (firstRun) Name() string { return "first" }

func (firstRun) Choose([]Fragment) int { return 0 }

type longestRun struct{}

func (longestRun) Name() string { return "longest" }

func (longestRun) Choose(frags []Fragment) int {
	best := 0
	for i, f := range frags {
		if f.Length > frags[best].Length {
			best = i
		}
	}
	return best
}

var (
	// FirstRun gives the value the formatting of the run holding the
	// token's opening brace.
	FirstRun StylePolicy = firstRun{}
	// LongestRun gives the value the formatting of the run carrying most of
	// the token, the first such run on ties.
	LongestRun StylePolicy = longestRun{}
)

// PolicyByName returns the policy called name ("first" or "longest").
func PolicyByName(name string) (StylePolicy, error) {
	switch name {
	case "", FirstRun.Name():
		return FirstRun, nil
	case LongestRun.Name():
		return LongestRun, nil
	}
	return nil, fmt.Errorf("unknown style policy %q", name)
}
