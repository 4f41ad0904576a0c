package wireup

// LaneDescriptor is one entry accumulated in the lane table across role
// passes: a (local resource, remote entry) pairing plus the roles it
// serves and the scores that won it each role.
type LaneDescriptor struct {
	LocalResource int
	RemoteIndex   int
	RemoteMD      int
	// ProxyLane is NoneLane for a non-proxy lane, the index of the real
	// lane it shims for a proxy lane, or its own index for a self-proxy.
	ProxyLane int
	Usage     LaneUsage

	AMBWScore  float64
	RMAScore   float64
	RMABWScore float64
	AMOScore   float64
}

func (l *LaneDescriptor) isProxy() bool {
	return l.ProxyLane != NoneLane
}

func (l *LaneDescriptor) isSelfProxy(ownIndex int) bool {
	return l.ProxyLane == ownIndex
}

// laneTable is the scratch accumulator role passes append to. It never
// exceeds MaxLanes entries; passes stop adding once full.
type laneTable struct {
	lanes []LaneDescriptor
}

func newLaneTable() *laneTable {
	return &laneTable{lanes: make([]LaneDescriptor, 0, MaxLanes)}
}

func (t *laneTable) len() int { return len(t.lanes) }

func (t *laneTable) full() bool { return len(t.lanes) >= MaxLanes }

func (t *laneTable) findByPair(localResource, remoteIndex int) int {
	for i := range t.lanes {
		if t.lanes[i].LocalResource == localResource && t.lanes[i].RemoteIndex == remoteIndex {
			return i
		}
	}
	return -1
}

// applyScore writes the per-role score field matching usage onto the lane,
// only for role bits actually present in usage.
func applyScore(l *LaneDescriptor, usage LaneUsage, score float64) {
	if usage.has(UsageAMBW) {
		l.AMBWScore = score
	}
	if usage.has(UsageRMA) {
		l.RMAScore = score
	}
	if usage.has(UsageRMABW) {
		l.RMABWScore = score
	}
	if usage.has(UsageAMO) {
		l.AMOScore = score
	}
}

// addLaneParams bundles one append/merge request into the lane table
// (spec §4.3).
type addLaneParams struct {
	info     SelectInfo
	remoteMD int
	usage    LaneUsage
	isProxy  bool
}

// addLane implements the six-case append/merge rule from spec §4.3,
// returning the index of the lane the request ended up occupying (either a
// freshly appended lane, or the existing lane it merged into).
func (t *laneTable) addLane(p addLaneParams) int {
	existing := t.findByPair(p.info.LocalResource, p.info.RemoteIndex)

	if existing < 0 {
		newIndex := len(t.lanes)
		lane := LaneDescriptor{
			LocalResource: p.info.LocalResource,
			RemoteIndex:   p.info.RemoteIndex,
			RemoteMD:      p.remoteMD,
			Usage:         p.usage,
			ProxyLane:     NoneLane,
		}
		if p.isProxy {
			lane.ProxyLane = newIndex
		}
		applyScore(&lane, p.usage, p.info.Score)
		t.lanes = append(t.lanes, lane)
		return newIndex
	}

	existingLane := &t.lanes[existing]
	assertf(existingLane.Usage&p.usage == 0,
		"lane %d: usage overlap adding %v to existing %v", existing, p.usage, existingLane.Usage)

	if p.isProxy && !existingLane.isProxy() {
		newIndex := len(t.lanes)
		lane := LaneDescriptor{
			LocalResource: p.info.LocalResource,
			RemoteIndex:   p.info.RemoteIndex,
			RemoteMD:      p.remoteMD,
			Usage:         p.usage,
			ProxyLane:     existing,
		}
		applyScore(&lane, p.usage, p.info.Score)
		t.lanes = append(t.lanes, lane)
		return newIndex
	}

	if !p.isProxy && existingLane.isSelfProxy(existing) {
		newIndex := len(t.lanes)
		existingLane.ProxyLane = newIndex
		lane := LaneDescriptor{
			LocalResource: p.info.LocalResource,
			RemoteIndex:   p.info.RemoteIndex,
			RemoteMD:      p.remoteMD,
			Usage:         p.usage,
			ProxyLane:     NoneLane,
		}
		applyScore(&lane, p.usage, p.info.Score)
		t.lanes = append(t.lanes, lane)
		return newIndex
	}

	// remaining cases (not-proxy onto a non-proxy lane or onto a shim already
	// pointing elsewhere, or proxy onto an existing proxy lane): merge into
	// the existing lane instead of appending.
	existingLane.Usage |= p.usage
	applyScore(existingLane, p.usage, p.info.Score)
	return existing
}
