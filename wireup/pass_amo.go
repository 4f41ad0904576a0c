package wireup

import "github.com/openucx-go/ucx-go/uct"

// runAMOPass implements spec §4.4.2. Optional, same fallback semantics as
// RMA.
func runAMOPass(ctx *selectCtx) {
	if ctx.params.MemoryTypeCopy {
		return
	}
	if !ctx.params.Features.has(FeatureAMO32) && !ctx.params.Features.has(FeatureAMO64) {
		return
	}
	ctx.hooks.passStarted("amo")

	criteria := Criteria{
		Title:           "atomic operations",
		RemoteAtomic:    ctx.params.RequestedAtomic,
		LocalAtomic:     ctx.params.RequestedAtomic,
		LocalIfaceFlags: uct.Pending,
		Score:           amoScore,
	}
	criteria = applyErrorHandlingMode(criteria, ctx.params.ErrorHandlingMode)

	// The remote side must be able to connect back on the same transport,
	// so restrict the local candidate set to non-peer-to-peer resources
	// plus any explicitly designated atomic-capable ones.
	allowedLocal := AllBits
	for i := range ctx.local {
		r := &ctx.local[i]
		if r.IsPeerToPeer() && !r.AtomicCapable {
			allowedLocal = allowedLocal.Clear(r.Index)
		}
	}

	cfg := multiLaneConfig{
		role:       "amo",
		criteria:   criteria,
		usage:      UsageAMO,
		maxLanes:   MaxLanes,
		allowProxy: false,
		diversify:  diversifyByRemoteMD,
	}

	added := runMultiLaneLoop(ctx, cfg, allowedLocal, AllBits, AllBits, AllBits)
	if added == 0 {
		ctx.hooks.passUnreachable("amo")
		if ctx.amEmulationAllowed() {
			ctx.createAMLaneFallback = true
			ctx.hooks.amEmulationFallback("amo")
		}
	}
}
