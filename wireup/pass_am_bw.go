package wireup

import "github.com/openucx-go/ucx-go/uct"

// runAMBWPass implements spec §4.4.7. Optional; adds no lane (rather than
// failing) when its preconditions are not met, or when the AM lane itself
// is already locally optimal.
func runAMBWPass(ctx *selectCtx) {
	if !ctx.params.Features.has(FeatureTAG) {
		return
	}
	if ctx.params.MemoryTypeCopy {
		return
	}
	extraLanes := ctx.opts.maxEagerLanes() - 1
	if extraLanes < 1 {
		return
	}
	if ctx.amLane == NoneLane {
		return
	}

	amLane := &ctx.lanes.lanes[ctx.amLane]
	amLocal := &ctx.local[indexOfResource(ctx.local, amLane.LocalResource)]
	amRemote := &ctx.remote[indexOfAddress(ctx.remote, amLane.RemoteIndex)]

	// The AM lane always carries UsageAM at slot 0 of am_bw_lanes; give it
	// its AM-BW score too so the finalizer's ranking has a value for it.
	amBWScoreValue := amBWScore(ctx.opts, amLocal, amRemote)
	amLane.AMBWScore = amBWScoreValue
	amLane.Usage |= UsageAMBW

	if amLocal.IsSelfOrShared() {
		return
	}
	ctx.hooks.passStarted("am_bw")

	criteria := Criteria{
		Title:            "active message bandwidth",
		RemoteIfaceFlags: uct.AMBcopy | uct.CBSync,
		LocalIfaceFlags:  uct.AMBcopy,
		Score:            amBWScore,
	}
	criteria = applyErrorHandlingMode(criteria, ctx.params.ErrorHandlingMode)

	allowedLocal := maskLocalMDPeers(ctx.local, AllBits, amLocal.MDIndex)
	allowedLocalDevice := AllBits.Clear(amLocal.DeviceIndex)
	allowedRemoteDevice := AllBits.Clear(amRemote.DeviceIndex)

	cfg := multiLaneConfig{
		role:       "am_bw",
		criteria:   criteria,
		usage:      UsageAMBW,
		maxLanes:   extraLanes,
		allowProxy: true,
		diversify:  diversifyByDevice,
	}
	added := runMultiLaneLoop(ctx, cfg, allowedLocal, allowedLocalDevice, allowedRemoteDevice, AllBits)
	if added == 0 {
		ctx.hooks.passUnreachable("am_bw")
	}
}
