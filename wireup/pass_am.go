package wireup

import "github.com/openucx-go/ucx-go/uct"

// isAMRequired implements the four-way OR from spec §4.4.3: the creator
// asked for wireup-over-AM, a sockaddr endpoint is being created, the
// endpoint needs TAG/STREAM/AM and is not a memory-type-copy endpoint, or
// any lane already selected rides a peer-to-peer transport (which needs AM
// for wireup messaging since it has no interface address to connect to).
func isAMRequired(ctx *selectCtx) bool {
	if ctx.params.WireupOverAM {
		return true
	}
	if ctx.params.SockAddr {
		return true
	}
	if !ctx.params.MemoryTypeCopy {
		f := ctx.params.Features
		if f.has(FeatureTAG) || f.has(FeatureStream) || f.has(FeatureAM) {
			return true
		}
	}
	for i := range ctx.lanes.lanes {
		local := &ctx.local[indexOfResource(ctx.local, ctx.lanes.lanes[i].LocalResource)]
		if local.IsPeerToPeer() {
			return true
		}
	}
	return false
}

// runAMPass implements spec §4.4.3. Mandatory whenever isAMRequired: its
// failure is fatal and propagates to the caller.
func runAMPass(ctx *selectCtx) error {
	if !isAMRequired(ctx) {
		return nil
	}
	ctx.hooks.passStarted("am")

	criteria := Criteria{
		Title:            "active messages",
		RemoteIfaceFlags: uct.AMBcopy | uct.CBSync,
		LocalIfaceFlags:  uct.AMBcopy,
		Score:            smallMessageLatencyScore,
	}
	if ctx.params.Features.has(FeatureTAG) && ctx.params.Features.has(FeatureWakeup) {
		criteria.LocalIfaceFlags |= uct.EventRecv
	}
	criteria = applyErrorHandlingMode(criteria, ctx.params.ErrorHandlingMode)

	info, err := ctx.evaluate(criteria, defaultMasks())
	if err != nil {
		ctx.hooks.passUnreachable("am")
		return err
	}

	local := &ctx.local[indexOfResource(ctx.local, info.LocalResource)]
	remote := &ctx.remote[indexOfAddress(ctx.remote, info.RemoteIndex)]
	isProxy := isProxyCandidate(local, remote)

	laneIdx := ctx.lanes.addLane(addLaneParams{
		info:     *info,
		remoteMD: remote.MDIndex,
		usage:    UsageAM,
		isProxy:  isProxy,
	})
	ctx.hooks.laneSelected("am")
	if isProxy {
		ctx.hooks.proxyLaneCreated("am")
	}

	assertf(ctx.amLane == NoneLane, "duplicate AM lane designation: %d and %d", ctx.amLane, laneIdx)
	ctx.amLane = laneIdx
	ctx.amInfo = info
	return nil
}
