package wireup

import "github.com/openucx-go/ucx-go/uct"

// runTagPass implements spec §4.4.6. Skipped entirely unless TAG is
// requested and error handling is NONE: hardware tag matching cannot yet
// implement peer-failure recovery (SPEC_FULL supplemented feature 4).
func runTagPass(ctx *selectCtx) {
	if !ctx.params.Features.has(FeatureTAG) {
		return
	}
	if ctx.params.ErrorHandlingMode == ErrorHandlingPeer {
		return
	}
	ctx.hooks.passStarted("tag")

	criteria := Criteria{
		Title:            "tag matching",
		RemoteIfaceFlags: uct.TagEagerBcopy | uct.TagRndvZcopy | uct.GetZcopy | uct.Pending,
		LocalIfaceFlags:  uct.TagEagerBcopy | uct.TagRndvZcopy | uct.GetZcopy | uct.Pending,
		LocalMDFlags:     uct.MDReg,
		RemoteMDFlags:    uct.MDReg,
		Score:            smallMessageLatencyScore,
	}
	if ctx.params.Features.has(FeatureWakeup) {
		criteria.LocalIfaceFlags |= uct.EventRecv
	}

	masks := defaultMasks()
	masks.showError = false
	info, err := ctx.evaluate(criteria, masks)
	if err != nil {
		ctx.hooks.passUnreachable("tag")
		return
	}

	if ctx.amInfo != nil && info.Score < ctx.amInfo.Score {
		// Open question decision (SPEC_FULL.md): this is an expected,
		// scored downgrade, not a fault — log it and let AM carry tags in
		// software instead.
		ctx.hooks.logEvent("tag score below am score, using am for tag matching",
			logKV("tag_score", info.Score), logKV("am_score", ctx.amInfo.Score))
		return
	}

	if ctx.lanes.full() {
		return
	}

	local := &ctx.local[indexOfResource(ctx.local, info.LocalResource)]
	remote := &ctx.remote[indexOfAddress(ctx.remote, info.RemoteIndex)]
	isProxy := isProxyCandidate(local, remote)

	laneIdx := ctx.lanes.addLane(addLaneParams{
		info:     *info,
		remoteMD: remote.MDIndex,
		usage:    UsageTAG,
		isProxy:  isProxy,
	})
	ctx.hooks.laneSelected("tag")
	if isProxy {
		ctx.hooks.proxyLaneCreated("tag")
	}

	assertf(ctx.tagLane == NoneLane, "duplicate TAG lane designation: %d and %d", ctx.tagLane, laneIdx)
	ctx.tagLane = laneIdx
}
