package wireup

import (
	"fmt"
	"strings"
)

// reasonBuilder accumulates the per-resource elimination reasons the
// criteria evaluator produces on failure. Grown with a capacity hint up
// front, in the spirit of spec §9's "fixed-capacity string builder to
// avoid dynamic allocation on hot selection paths" note — the evaluator
// builds one of these per call, and returns its text only when show_error
// is set.
type reasonBuilder struct {
	b strings.Builder
}

func newReasonBuilder() *reasonBuilder {
	rb := &reasonBuilder{}
	rb.b.Grow(256)
	return rb
}

func (rb *reasonBuilder) addRemote(index int, transport string, reason string) {
	if rb.b.Len() > 0 {
		rb.b.WriteString("; ")
	}
	fmt.Fprintf(&rb.b, "remote[%d] %s: %s", index, transport, reason)
}

func (rb *reasonBuilder) addLocal(index int, transport string, reason string) {
	if rb.b.Len() > 0 {
		rb.b.WriteString("; ")
	}
	fmt.Fprintf(&rb.b, "local[%d] %s: %s", index, transport, reason)
}

func (rb *reasonBuilder) String() string {
	if rb.b.Len() == 0 {
		return "no candidates considered"
	}
	return rb.b.String()
}
