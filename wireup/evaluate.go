package wireup

import "github.com/openucx-go/ucx-go/uct"

// SelectInfo is the result of a successful criteria evaluation: the
// winning (local resource, remote entry) pair and its score.
type SelectInfo struct {
	LocalResource int
	RemoteIndex   int
	Score         float64
}

// evalMasks narrows the candidate set the evaluator considers, letting the
// multi-lane loop re-run the same criteria against a shrinking pool of
// transports/devices/MDs across iterations.
type evalMasks struct {
	allowedLocal        Bitmap
	allowedRemoteMD     Bitmap
	allowedLocalDevice  Bitmap
	allowedRemoteDevice Bitmap
	showError           bool
}

func defaultMasks() evalMasks {
	return evalMasks{
		allowedLocal:        AllBits,
		allowedRemoteMD:     AllBits,
		allowedLocalDevice:  AllBits,
		allowedRemoteDevice: AllBits,
		showError:           true,
	}
}

// remoteCandidate is a remote entry that survived the remote-filter phase.
type remoteCandidate struct {
	entry *uct.AddressEntry
}

// evaluate runs the two-phase criteria evaluator described in spec §4.2:
// first filters remote entries against the remote-side requirements, then
// scans local resources against the local-side requirements, pairing each
// surviving local resource with every remote candidate the reachability
// predicate accepts, tracking the best-scoring pair.
func evaluate(
	local []uct.Resource,
	remote []uct.AddressEntry,
	reachable uct.ReachabilityFunc,
	criteria Criteria,
	masks evalMasks,
	opts *Options,
) (*SelectInfo, error) {
	rb := newReasonBuilder()

	candidates := make([]remoteCandidate, 0, len(remote))
	for i := range remote {
		re := &remote[i]
		if !masks.allowedRemoteDevice.Has(re.DeviceIndex) {
			continue
		}
		if !masks.allowedRemoteMD.Has(re.MDIndex) {
			continue
		}
		if name, missing := re.MDFlags.FirstMissing(criteria.RemoteMDFlags); missing {
			rb.addRemote(re.Index, re.TransportName, "missing "+name)
			continue
		}
		if name, missing := re.Capabilities.Iface.FirstMissing(criteria.RemoteIfaceFlags); missing {
			rb.addRemote(re.Index, re.TransportName, "missing "+name)
			continue
		}
		if !criteria.RemoteAtomic.IsZero() {
			if name, missing := re.Capabilities.Atomic.FirstMissing(criteria.RemoteAtomic); missing {
				rb.addRemote(re.Index, re.TransportName, "missing "+name)
				continue
			}
		}
		candidates = append(candidates, remoteCandidate{entry: re})
	}

	var best *SelectInfo
	var bestPriority int

	for i := range local {
		lr := &local[i]
		if !masks.allowedLocal.Has(lr.Index) {
			continue
		}
		if !masks.allowedLocalDevice.Has(lr.DeviceIndex) {
			continue
		}
		if lr.IsAuxOnly() && !criteria.AllowAuxOnly {
			continue
		}
		if name, missing := lr.MDFlags.FirstMissing(criteria.LocalMDFlags); missing {
			rb.addLocal(lr.Index, lr.TransportName, "missing "+name)
			continue
		}
		if name, missing := lr.Capabilities.Iface.FirstMissing(criteria.LocalIfaceFlags); missing {
			rb.addLocal(lr.Index, lr.TransportName, "missing "+name)
			continue
		}
		if !criteria.LocalAtomic.IsZero() {
			if name, missing := lr.Capabilities.Atomic.FirstMissing(criteria.LocalAtomic); missing {
				rb.addLocal(lr.Index, lr.TransportName, "missing "+name)
				continue
			}
		}

		reachedAny := false
		for _, cand := range candidates {
			if !reachable(lr, cand.entry) {
				continue
			}
			reachedAny = true
			score := criteria.Score(opts, lr, cand.entry)
			priority := lr.Capabilities.Priority + cand.entry.Capabilities.Priority
			if scoreBetter(opts, score, priority, valueOr(best), bestPriority, best != nil) {
				best = &SelectInfo{LocalResource: lr.Index, RemoteIndex: cand.entry.Index, Score: score}
				bestPriority = priority
			}
		}
		if !reachedAny {
			rb.addLocal(lr.Index, lr.TransportName, "no reachable remote candidate")
		}
	}

	if best == nil {
		if !masks.showError {
			return nil, ErrUnreachable
		}
		return nil, &UnreachableError{Criteria: criteria.title(), Reason: rb.String()}
	}
	return best, nil
}

func valueOr(si *SelectInfo) float64 {
	if si == nil {
		return 0
	}
	return si.Score
}
