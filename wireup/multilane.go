package wireup

import "github.com/openucx-go/ucx-go/uct"

// mlDiversityMode selects which axis the multi-lane loop diversifies
// across between iterations, per spec §4.4.5: the RMA family forces a
// different remote memory domain each time, while the bandwidth-oriented
// passes (RMA-BW, AM-BW) force a different local/remote device.
type mlDiversityMode int

const (
	diversifyByRemoteMD mlDiversityMode = iota
	diversifyByDevice
)

// multiLaneConfig parameterizes one role's run of the shared multi-lane
// loop (spec §4.4.5), used by the RMA, AMO, RMA-BW, and AM-BW passes.
type multiLaneConfig struct {
	role       string
	criteria   Criteria
	usage      LaneUsage
	maxLanes   int
	allowProxy bool
	diversify  mlDiversityMode
	// rmaTwoPhase enables the RMA-specific registered-then-allocated
	// remote memory selection (spec §4.4.5's two-phase variant).
	rmaTwoPhase bool
}

// maskLocalMDPeers clears from allowed every local resource that shares
// mdIndex with the just-selected resource, so the next multi-lane
// iteration cannot pick a different transport riding the same memory
// domain (SPEC_FULL supplemented feature 2, ucp_wireup_unset_tl_by_md in
// the original).
func maskLocalMDPeers(local []uct.Resource, allowed Bitmap, mdIndex int) Bitmap {
	for i := range local {
		if local[i].MDIndex == mdIndex {
			allowed = allowed.Clear(local[i].Index)
		}
	}
	return allowed
}

// runMultiLaneLoop drives one role's multi-lane selection to completion,
// appending each accepted lane to ctx.lanes and returning how many lanes
// it added.
func runMultiLaneLoop(ctx *selectCtx, cfg multiLaneConfig, initLocal, initLocalDevice, initRemoteDevice, initRemoteMD Bitmap) int {
	if cfg.maxLanes <= 0 {
		return 0
	}

	masks := evalMasks{
		allowedLocal:        initLocal,
		allowedRemoteMD:     initRemoteMD,
		allowedLocalDevice:  initLocalDevice,
		allowedRemoteDevice: initRemoteDevice,
		showError:           false,
	}

	added := 0
	distinctRemoteMDs := map[int]bool{}
	var regScore *float64

	for added < cfg.maxLanes && len(distinctRemoteMDs) < MaxOpMDs && !ctx.lanes.full() {
		var info *SelectInfo
		var remoteMDReq remoteMDRequirement

		if cfg.rmaTwoPhase {
			candidate, req, ok := selectRMACandidate(ctx, cfg.criteria, masks, regScore)
			if !ok {
				break
			}
			info, remoteMDReq = candidate, req
			if remoteMDReq == remoteMDRegistered && regScore == nil {
				s := info.Score
				regScore = &s
			}
		} else {
			var err error
			info, err = ctx.evaluate(cfg.criteria, masks)
			if err != nil {
				break
			}
		}

		local := &ctx.local[indexOfResource(ctx.local, info.LocalResource)]
		remote := &ctx.remote[indexOfAddress(ctx.remote, info.RemoteIndex)]

		laneIdx := ctx.lanes.addLane(addLaneParams{
			info:     *info,
			remoteMD: remote.MDIndex,
			usage:    cfg.usage,
			isProxy:  cfg.allowProxy && isProxyCandidate(local, remote),
		})
		added++
		distinctRemoteMDs[remote.MDIndex] = true
		ctx.hooks.laneSelected(cfg.role)
		if cfg.allowProxy && ctx.lanes.lanes[laneIdx].isProxy() {
			ctx.hooks.proxyLaneCreated(cfg.role)
		}

		if local.IsSelfOrShared() {
			break
		}

		switch cfg.diversify {
		case diversifyByRemoteMD:
			masks.allowedRemoteMD = masks.allowedRemoteMD.Clear(remote.MDIndex)
		case diversifyByDevice:
			masks.allowedLocalDevice = masks.allowedLocalDevice.Clear(local.DeviceIndex)
			masks.allowedRemoteDevice = masks.allowedRemoteDevice.Clear(remote.DeviceIndex)
		}
		masks.allowedLocal = maskLocalMDPeers(ctx.local, masks.allowedLocal, local.MDIndex)
	}

	return added
}

// selectRMACandidate implements the RMA pass's two-phase remote-memory
// selection: prefer a registered-memory candidate; only admit an
// allocated-memory candidate when it strictly beats the best registered
// score seen so far in this loop (nil regScore means no registered
// candidate has been found yet, so any allocated candidate is admitted).
func selectRMACandidate(ctx *selectCtx, criteria Criteria, masks evalMasks, regScore *float64) (*SelectInfo, remoteMDRequirement, bool) {
	regCriteria := criteria.WithTitleArg("registered")
	regCriteria.RemoteMDFlags |= uct.MDReg
	if info, err := ctx.evaluate(regCriteria, masks); err == nil {
		return info, remoteMDRegistered, true
	}

	allocCriteria := criteria.WithTitleArg("allocated")
	allocCriteria.RemoteMDFlags |= uct.MDAlloc
	info, err := ctx.evaluate(allocCriteria, masks)
	if err != nil {
		return nil, 0, false
	}
	if regScore != nil && info.Score <= *regScore {
		return nil, 0, false
	}
	return info, remoteMDAllocated, true
}

// isProxyCandidate reports whether a pass permitting proxy lanes should
// mark this pair as one: the local transport is not peer-to-peer, and the
// remote interface can only wake on a signaled receive event.
func isProxyCandidate(local *uct.Resource, remote *uct.AddressEntry) bool {
	if local.IsPeerToPeer() {
		return false
	}
	hasSignaled := remote.Capabilities.Iface&uct.EventRecvSig != 0
	hasUnsignaled := remote.Capabilities.Iface&uct.EventRecv != 0
	return hasSignaled && !hasUnsignaled
}

func indexOfResource(local []uct.Resource, index int) int {
	for i := range local {
		if local[i].Index == index {
			return i
		}
	}
	return -1
}

func indexOfAddress(remote []uct.AddressEntry, index int) int {
	for i := range remote {
		if remote[i].Index == index {
			return i
		}
	}
	return -1
}
