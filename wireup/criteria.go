package wireup

import "github.com/openucx-go/ucx-go/uct"

// Criteria is the declarative input to the evaluator: what a role pass
// requires of both sides of a candidate lane, and how to score candidates
// that qualify.
type Criteria struct {
	// Title names the criteria for diagnostics, e.g. "remote memory
	// access". May contain a single %s verb, filled by WithTitleArg, for
	// passes that need to distinguish sub-cases (spec's "registered" vs
	// "allocated" memaccess wording, SPEC_FULL supplemented feature 1).
	Title    string
	titleArg string

	LocalMDFlags  uct.MDFlag
	RemoteMDFlags uct.MDFlag

	LocalIfaceFlags  uct.InterfaceFlag
	RemoteIfaceFlags uct.InterfaceFlag

	LocalAtomic  uct.AtomicCapabilities
	RemoteAtomic uct.AtomicCapabilities

	// AllowAuxOnly opts auxiliary-only resources into the local scan; by
	// default they are skipped.
	AllowAuxOnly bool

	Score scoreFunc
}

// WithTitleArg returns a copy of c with its title's %s verb (if any)
// filled in, without mutating the shared criteria template.
func (c Criteria) WithTitleArg(arg string) Criteria {
	c.titleArg = arg
	return c
}

func (c Criteria) title() string {
	if c.titleArg == "" {
		return c.Title
	}
	return sprintfTitle(c.Title, c.titleArg)
}

func sprintfTitle(title, arg string) string {
	// Criteria titles either contain exactly one %s or none; a plain
	// Sprintf-style substitution is enough since this only ever feeds
	// diagnostics, never machine-parsed output.
	for i := 0; i+1 < len(title); i++ {
		if title[i] == '%' && title[i+1] == 's' {
			return title[:i] + arg + title[i+2:]
		}
	}
	return title
}

// applyErrorHandlingMode adds ErrHandlePeerFailure to the local interface
// requirement whenever the endpoint requests peer error handling. The
// original applies this uniformly across RMA, AMO, AM, and RMA-BW criteria
// (SPEC_FULL supplemented feature 5), not only to the passes spec.md calls
// out by name.
func applyErrorHandlingMode(c Criteria, mode ErrorHandlingMode) Criteria {
	if mode == ErrorHandlingPeer {
		c.LocalIfaceFlags |= uct.ErrHandlePeerFailure
	}
	return c
}
