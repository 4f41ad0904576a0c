package wireup

import (
	"testing"

	"github.com/openucx-go/ucx-go/uct"
)

func TestRankRoleOrdersByScoreDescending(t *testing.T) {
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, uct.PutShort), testResource(1, uct.DeviceNetwork, uct.PutShort)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.PutShort)}
	ctx := newSelectCtx(local, remote, alwaysReachable, SelectParams{}, &Options{})

	lowIdx := ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 0, RemoteIndex: 0, Score: 1}, usage: UsageRMA})
	highIdx := ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 1, RemoteIndex: 0, Score: 9}, usage: UsageRMA})

	ranked := rankRole(ctx, UsageRMA, func(l *LaneDescriptor) float64 { return l.RMAScore })
	if ranked[0] != highIdx {
		t.Fatalf("expected the higher-scoring lane %d first, got %d", highIdx, ranked[0])
	}
	if ranked[1] != lowIdx {
		t.Fatalf("expected the lower-scoring lane %d second, got %d", lowIdx, ranked[1])
	}
	for i := 2; i < MaxLanes; i++ {
		if ranked[i] != NoneLane {
			t.Fatalf("expected slot %d to be NoneLane, got %d", i, ranked[i])
		}
	}
}

func TestRankAMBWPinsAMLaneToSlotZero(t *testing.T) {
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, uct.AMBcopy), testResource(1, uct.DeviceNetwork, uct.AMBcopy)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.AMBcopy)}
	ctx := newSelectCtx(local, remote, alwaysReachable, SelectParams{}, &Options{})

	amIdx := ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 0, RemoteIndex: 0, Score: 1}, usage: UsageAM})
	ctx.amLane = amIdx
	bwIdx := ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 1, RemoteIndex: 0, Score: 5}, usage: UsageAMBW})

	ranked := rankAMBW(ctx)
	if ranked[0] != amIdx {
		t.Fatalf("expected slot 0 to always be the AM lane %d, got %d", amIdx, ranked[0])
	}
	if ranked[1] != bwIdx {
		t.Fatalf("expected slot 1 to be the higher-bandwidth lane %d, got %d", bwIdx, ranked[1])
	}
}

func TestElectWireupLaneFallsBackToPeerToPeer(t *testing.T) {
	// No lane satisfies the bootstrap-capable criteria, but one rides a
	// peer-to-peer transport, so it should be elected as the fallback.
	iface := uct.ConnectToEp | uct.PutShort
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, iface)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, iface)}
	ctx := newSelectCtx(local, remote, alwaysReachable, SelectParams{}, &Options{})

	laneIdx := ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 0, RemoteIndex: 0, Score: 1}, usage: UsageRMA})

	if got := electWireupLane(ctx); got != laneIdx {
		t.Fatalf("expected peer-to-peer lane %d to be elected, got %d", laneIdx, got)
	}
}

func TestElectWireupLaneNoneWhenNothingBootstraps(t *testing.T) {
	iface := uct.PutShort | uct.ConnectToIface
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, iface)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, iface)}
	ctx := newSelectCtx(local, remote, alwaysReachable, SelectParams{}, &Options{})
	ctx.lanes.addLane(addLaneParams{info: SelectInfo{LocalResource: 0, RemoteIndex: 0, Score: 1}, usage: UsageRMA})

	if got := electWireupLane(ctx); got != NoneLane {
		t.Fatalf("expected NoneLane, got %d", got)
	}
}

func TestBuildRMABWMDMapRespectsMDBudgetAndExclusionHook(t *testing.T) {
	local := make([]uct.Resource, 0, 8)
	remote := make([]uct.AddressEntry, 0, 8)
	for i := 0; i < 8; i++ {
		r := testResource(i, uct.DeviceNetwork, uct.PutZcopy)
		r.MDIndex = i
		local = append(local, r)
		a := testAddress(i, uct.DeviceNetwork, uct.PutZcopy)
		a.MDIndex = i
		a.TransportName = "rc"
		remote = append(remote, a)
	}
	// Exclude one transport by name to confirm the hook is consulted.
	remote[3].TransportName = "excluded_tl"

	opts := &Options{ExcludeFromRemoteKeyMap: func(name string) bool { return name == "excluded_tl" }}
	ctx := newSelectCtx(local, remote, alwaysReachable, SelectParams{}, opts)

	var rmaBWLanes [MaxLanes]int
	for i := range rmaBWLanes {
		rmaBWLanes[i] = NoneLane
	}
	for i := 0; i < 8; i++ {
		idx := ctx.lanes.addLane(addLaneParams{
			info:     SelectInfo{LocalResource: i, RemoteIndex: i, Score: float64(8 - i)},
			remoteMD: i,
			usage:    UsageRMABW,
		})
		rmaBWLanes[i] = idx
	}

	m := buildRMABWMDMap(ctx, rmaBWLanes)
	if m.PopCount() > MaxOpMDs {
		t.Fatalf("expected at most %d MDs in the map, got %d", MaxOpMDs, m.PopCount())
	}
	if m.Has(3) {
		t.Fatalf("expected MD 3 to be excluded by the hook")
	}
}
