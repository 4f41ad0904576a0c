package wireup

import "github.com/openucx-go/ucx-go/uct"

// runRMAPass implements spec §4.4.1. Optional: on failure to place any
// lane, it either sets the AM-emulation fallback bit or is silently
// skipped, per spec §7.
func runRMAPass(ctx *selectCtx) {
	if !ctx.params.Features.has(FeatureRMA) && !ctx.params.MemoryTypeCopy {
		return
	}
	ctx.hooks.passStarted("rma")

	criteria := Criteria{Title: "remote memory access (%s)"}
	if ctx.params.MemoryTypeCopy {
		criteria.RemoteIfaceFlags = uct.PutShort
		criteria.LocalIfaceFlags = uct.PutShort
	} else {
		criteria.RemoteIfaceFlags = uct.PutShort | uct.PutBcopy | uct.GetBcopy
		criteria.LocalIfaceFlags = criteria.RemoteIfaceFlags | uct.Pending
	}
	criteria.Score = rmaScore
	criteria = applyErrorHandlingMode(criteria, ctx.params.ErrorHandlingMode)

	cfg := multiLaneConfig{
		role:        "rma",
		criteria:    criteria,
		usage:       UsageRMA,
		maxLanes:    MaxLanes,
		allowProxy:  false,
		diversify:   diversifyByRemoteMD,
		rmaTwoPhase: !ctx.params.MemoryTypeCopy,
	}

	added := runMultiLaneLoop(ctx, cfg, AllBits, AllBits, AllBits, AllBits)
	if added == 0 {
		ctx.hooks.passUnreachable("rma")
		if ctx.amEmulationAllowed() {
			ctx.createAMLaneFallback = true
			ctx.hooks.amEmulationFallback("rma")
		}
	}
}
