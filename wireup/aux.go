package wireup

import "github.com/openucx-go/ucx-go/uct"

// SelectAuxTransport implements spec §4.6: a single-shot evaluator call
// picking a bootstrap transport for exchanging wireup messages, used by
// the endpoint state machine before the main pass runs. Failure is fatal
// for endpoint creation.
func SelectAuxTransport(local []uct.Resource, remote []uct.AddressEntry, reachable uct.ReachabilityFunc, opts *Options) (*SelectInfo, error) {
	return evaluate(local, remote, reachable, auxCriteria(), defaultMasks(), opts)
}
