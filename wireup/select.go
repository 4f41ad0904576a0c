package wireup

import "github.com/openucx-go/ucx-go/uct"

// SelectParams describes the endpoint being created: which features it
// needs, how it handles peer failure, and a handful of structural flags
// the transport layer would otherwise derive from the endpoint's creation
// parameters (spec §6).
type SelectParams struct {
	Features          FeatureFlags
	ErrorHandlingMode ErrorHandlingMode

	// MemoryTypeCopy marks an endpoint used solely for cross-memory-type
	// staging, which narrows the RMA pass to PUT-short only and forces the
	// RMA-BW pass to run regardless of TAG.
	MemoryTypeCopy bool
	// WireupOverAM marks an endpoint whose creator explicitly requested
	// wireup messages be carried over the AM lane.
	WireupOverAM bool
	// SockAddr marks a sockaddr endpoint being created, which also forces
	// the AM pass to run.
	SockAddr bool

	// RequestedAtomic is the context-level requested atomic operation set,
	// used as the AMO pass's required remote atomic flags.
	RequestedAtomic uct.AtomicCapabilities

	// MemTypeAccessTransports gives the RMA-BW pass its allowed-transport
	// bitmap per memory type the context advertises access for, in the
	// fixed order the RMA-BW pass should run them. A nil or empty slice
	// defaults to a single HostMemory run over every transport.
	MemTypeAccessTransports []MemTypeAccess
}

// Select runs the wireup lane selector: given the local worker's transport
// resources and the remote peer's advertised address entries, it decides
// which lanes the new endpoint will use for each class of operation (spec
// §1, §6). It performs no I/O and mutates none of its inputs.
func Select(local []uct.Resource, remote []uct.AddressEntry, reachable uct.ReachabilityFunc, params SelectParams, opts Options) (*Result, error) {
	hooks := opts.hooks()

	var span Span
	if hooks.tracer != nil {
		span = hooks.tracer.StartSpan("wireup.select")
	}
	result, err := doSelect(local, remote, reachable, params, &opts, hooks)
	if span != nil {
		if err != nil {
			span.RecordError(err)
		}
		span.End(err)
	}
	return result, err
}

func doSelect(local []uct.Resource, remote []uct.AddressEntry, reachable uct.ReachabilityFunc, params SelectParams, opts *Options, hooks *hookSink) (*Result, error) {
	if len(remote) == 0 {
		return nil, ErrUnreachable
	}
	if params.Features.has(FeatureTAG) && !anyTagCapable(remote) {
		return nil, ErrInvalidParam
	}

	ctx := newSelectCtx(local, remote, reachable, params, opts)
	ctx.hooks = hooks

	// Fixed pass order (spec §4.4): RMA, AMO, AM, RMA-BW, TAG, AM-BW. Later
	// passes read lane-table state (isAMRequired's peer-to-peer check,
	// TAG's AM-score comparison, AM-BW's seed from the AM lane) left by
	// earlier ones.
	runRMAPass(ctx)
	runAMOPass(ctx)
	if err := runAMPass(ctx); err != nil {
		return nil, err
	}
	runRMABWPass(ctx)
	runTagPass(ctx)
	runAMBWPass(ctx)

	return finalize(ctx)
}

// anyTagCapable reports whether at least one remote entry advertises any
// tag-matching capability at all, the precondition for requesting TAG
// (spec §7's INVALID_PARAM case).
func anyTagCapable(remote []uct.AddressEntry) bool {
	const tagFlags = uct.TagEagerShort | uct.TagEagerBcopy | uct.TagEagerZcopy | uct.TagRndvZcopy
	for i := range remote {
		if remote[i].Capabilities.Iface&tagFlags != 0 {
			return true
		}
	}
	return false
}
