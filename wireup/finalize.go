package wireup

import (
	"sort"

	"github.com/openucx-go/ucx-go/uct"
)

// LaneInfo is the finalized, output-facing view of one lane.
type LaneInfo struct {
	LocalResource int
	ProxyLane     int
	RemoteMD      int
	RemoteIndex   int
}

// Result is the endpoint configuration key: the selector's entire output
// (spec §3's "Endpoint configuration key").
type Result struct {
	NumLanes int
	Lanes    []LaneInfo
	// AddrIndices maps lane index to the remote-address-list index it was
	// selected against, mirroring spec §6's "per-lane output array mapping
	// lane to remote-address-index".
	AddrIndices []int

	AMLane  int
	TagLane int

	AMBWLanes  [MaxLanes]int
	RMALanes   [MaxLanes]int
	RMABWLanes [MaxLanes]int
	AMOLanes   [MaxLanes]int

	WireupLane int
	// RMABWMDMap is a bitmap over remote MD indices requiring remote-key
	// packing, cardinality bounded by MaxOpMDs (invariant I6).
	RMABWMDMap Bitmap

	// CreateAMLaneFallback asks the (out-of-scope) endpoint layer to
	// emulate RMA/AMO over the AM lane, per SPEC_FULL supplemented
	// feature 6.
	CreateAMLaneFallback bool
}

// finalize implements spec §4.5's five steps.
func finalize(ctx *selectCtx) (*Result, error) {
	n := ctx.lanes.len()
	if n == 0 {
		return nil, ErrUnreachable
	}

	res := &Result{
		NumLanes:    n,
		Lanes:       make([]LaneInfo, n),
		AddrIndices: make([]int, n),
		AMLane:      ctx.amLane,
		TagLane:     ctx.tagLane,
	}
	for i := 0; i < n; i++ {
		l := &ctx.lanes.lanes[i]
		res.Lanes[i] = LaneInfo{
			LocalResource: l.LocalResource,
			ProxyLane:     l.ProxyLane,
			RemoteMD:      l.RemoteMD,
			RemoteIndex:   l.RemoteIndex,
		}
		res.AddrIndices[i] = l.RemoteIndex
	}

	if res.AMLane != NoneLane {
		assertf(ctx.lanes.lanes[res.AMLane].Usage.has(UsageAM), "am_lane %d missing AM usage", res.AMLane)
	}
	if res.TagLane != NoneLane {
		assertf(ctx.lanes.lanes[res.TagLane].Usage.has(UsageTAG), "tag_lane %d missing TAG usage", res.TagLane)
	}

	res.RMALanes = rankRole(ctx, UsageRMA, func(l *LaneDescriptor) float64 { return l.RMAScore })
	res.RMABWLanes = rankRole(ctx, UsageRMABW, func(l *LaneDescriptor) float64 { return l.RMABWScore })
	res.AMOLanes = rankRole(ctx, UsageAMO, func(l *LaneDescriptor) float64 { return l.AMOScore })
	res.AMBWLanes = rankAMBW(ctx)

	res.WireupLane = electWireupLane(ctx)
	res.RMABWMDMap = buildRMABWMDMap(ctx, res.RMABWLanes)
	res.CreateAMLaneFallback = ctx.createAMLaneFallback

	return res, nil
}

// rankRole builds the fixed-size, NONE-padded, descending-score-ordered
// lane index array for one role (spec §4.5 step 3 / invariant P5).
func rankRole(ctx *selectCtx, usage LaneUsage, score func(*LaneDescriptor) float64) [MaxLanes]int {
	var out [MaxLanes]int
	for i := range out {
		out[i] = NoneLane
	}

	indices := make([]int, 0, MaxLanes)
	for i := range ctx.lanes.lanes {
		if ctx.lanes.lanes[i].Usage.has(usage) {
			indices = append(indices, i)
		}
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return score(&ctx.lanes.lanes[indices[a]]) > score(&ctx.lanes.lanes[indices[b]])
	})
	for i, idx := range indices {
		if i >= MaxLanes {
			break
		}
		out[i] = idx
	}
	return out
}

// rankAMBW is rankRole specialized for AM-BW: slot 0 is always the AM lane
// (invariant I4/P4), and the remainder is ranked among the rest.
func rankAMBW(ctx *selectCtx) [MaxLanes]int {
	var out [MaxLanes]int
	for i := range out {
		out[i] = NoneLane
	}
	if ctx.amLane == NoneLane {
		return rankRole(ctx, UsageAMBW, func(l *LaneDescriptor) float64 { return l.AMBWScore })
	}

	out[0] = ctx.amLane
	indices := make([]int, 0, MaxLanes)
	for i := range ctx.lanes.lanes {
		if i == ctx.amLane {
			continue
		}
		if ctx.lanes.lanes[i].Usage.has(UsageAMBW) {
			indices = append(indices, i)
		}
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return ctx.lanes.lanes[indices[a]].AMBWScore > ctx.lanes.lanes[indices[b]].AMBWScore
	})
	for i, idx := range indices {
		if i+1 >= MaxLanes {
			break
		}
		out[i+1] = idx
	}
	return out
}

// auxCriteria is the fixed criteria used both by auxiliary transport
// selection (spec §4.6) and the finalizer's wireup-lane election, which
// reuses the same "can this pair bootstrap a wireup message" test.
func auxCriteria() Criteria {
	return Criteria{
		Title:            "auxiliary (wireup) transport",
		LocalIfaceFlags:  uct.ConnectToIface | uct.AMBcopy | uct.Pending,
		RemoteIfaceFlags: uct.ConnectToIface | uct.AMBcopy | uct.CBAsync,
		AllowAuxOnly:     true,
		Score:            auxiliaryScore,
	}
}

// electWireupLane implements spec §4.5 step 4: the first lane able to
// bootstrap wireup messaging directly; failing that, the first lane on a
// peer-to-peer transport; failing that, NONE (the AM lane alone bootstraps).
func electWireupLane(ctx *selectCtx) int {
	crit := auxCriteria()
	for i := range ctx.lanes.lanes {
		local := &ctx.local[indexOfResource(ctx.local, ctx.lanes.lanes[i].LocalResource)]
		remote := &ctx.remote[indexOfAddress(ctx.remote, ctx.lanes.lanes[i].RemoteIndex)]
		if local.Capabilities.Iface.HasAll(crit.LocalIfaceFlags) && remote.Capabilities.Iface.HasAll(crit.RemoteIfaceFlags) {
			return i
		}
	}
	for i := range ctx.lanes.lanes {
		local := &ctx.local[indexOfResource(ctx.local, ctx.lanes.lanes[i].LocalResource)]
		if local.IsPeerToPeer() {
			return i
		}
	}
	return NoneLane
}

// buildRMABWMDMap implements spec §4.5 step 5: walk rma_bw_lanes in score
// order, including each lane's remote MD while it needs remote-key
// packing, the exclusion hook doesn't veto its transport, and the MD-count
// budget (MaxOpMDs) is not exceeded (invariant I6).
func buildRMABWMDMap(ctx *selectCtx, rmaBWLanes [MaxLanes]int) Bitmap {
	var m Bitmap
	seen := map[int]bool{}
	for _, laneIdx := range rmaBWLanes {
		if laneIdx == NoneLane {
			continue
		}
		lane := &ctx.lanes.lanes[laneIdx]
		remote := &ctx.remote[indexOfAddress(ctx.remote, lane.RemoteIndex)]
		if ctx.opts.excludeFromRemoteKeyMap(remote.TransportName) {
			continue
		}
		if remote.MDFlags&uct.MDNeedRkey == 0 {
			continue
		}
		if seen[lane.RemoteMD] {
			continue
		}
		if len(seen) >= MaxOpMDs {
			break
		}
		seen[lane.RemoteMD] = true
		m = m.Set(lane.RemoteMD)
	}
	return m
}
