package wireup

import "github.com/openucx-go/ucx-go/uct"

// runRMABWPass implements spec §4.4.4. Optional: silently skipped on
// failure, same as RMA and AMO, but unlike them it never sets the
// AM-emulation fallback bit — that bit is scoped to the RMA/AMO passes
// (spec §7, SPEC_FULL supplemented feature 6), and rendezvous bandwidth
// has no AM-emulated substitute.
func runRMABWPass(ctx *selectCtx) {
	if !ctx.params.MemoryTypeCopy && !ctx.params.Features.has(FeatureTAG) {
		return
	}
	ctx.hooks.passStarted("rma_bw")

	criteria := Criteria{
		Title:            "remote memory access for rendezvous",
		RemoteIfaceFlags: uct.GetZcopy | uct.PutZcopy,
		LocalIfaceFlags:  uct.GetZcopy | uct.PutZcopy | uct.Pending,
		Score:            bulkRMAScore,
	}
	if ctx.params.Features.has(FeatureTAG) {
		criteria.RemoteMDFlags |= uct.MDReg
		criteria.LocalMDFlags |= uct.MDReg
	}
	criteria = applyErrorHandlingMode(criteria, ctx.params.ErrorHandlingMode)

	memTypes := ctx.params.MemTypeAccessTransports
	if len(memTypes) == 0 {
		memTypes = []MemTypeAccess{{MemType: HostMemory, Transports: AllBits}}
	}

	totalAdded := 0
	for _, mt := range memTypes {
		cfg := multiLaneConfig{
			role:       "rma_bw",
			criteria:   criteria,
			usage:      UsageRMABW,
			maxLanes:   ctx.opts.maxRndvLanes(),
			allowProxy: false,
			diversify:  diversifyByDevice,
		}
		totalAdded += runMultiLaneLoop(ctx, cfg, mt.Transports, AllBits, AllBits, AllBits)
	}

	if totalAdded == 0 {
		ctx.hooks.passUnreachable("rma_bw")
	}
}
