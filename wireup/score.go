package wireup

import (
	"math"

	"github.com/openucx-go/ucx-go/uct"
)

// scoreFunc computes "higher is better" desirability of pairing a local
// resource with a remote address entry, given the endpoint-level tuning
// (estimated fan-out) needed for the link-latency growth term.
type scoreFunc func(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64

// linkLatency combines both sides' fixed overhead with the local
// transport's per-endpoint latency growth, scaled by the number of peers
// this endpoint is expected to fan out to. A transport with high growth is
// penalized as the estimated endpoint count rises.
func linkLatency(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	overhead := math.Max(local.Capabilities.Latency.Overhead, remote.Capabilities.Latency.Overhead)
	return overhead + local.Capabilities.Latency.Growth*float64(opts.estimatedEndpoints())
}

// smallMessageLatencyScore favors the lowest round-trip overhead. Used by
// the AM and TAG passes, and by auxiliary transport selection (identical
// formula, spec §4.1's "Auxiliary score").
func smallMessageLatencyScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	denom := linkLatency(opts, local, remote) + local.Capabilities.Overhead + remote.Capabilities.Overhead
	return 1e-3 / denom
}

// rmaScore favors low latency for a representative 4KiB one-sided message.
func rmaScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	minBW := math.Min(local.Capabilities.Bandwidth, remote.Capabilities.Bandwidth)
	denom := linkLatency(opts, local, remote) + local.Capabilities.Overhead + rmaMessageSize/minBW
	return 1e-3 / denom
}

// amoScore favors the lowest fixed per-op overhead, since atomics carry no
// payload-size term.
func amoScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	denom := linkLatency(opts, local, remote) + local.Capabilities.Overhead
	return 1e-3 / denom
}

// bulkRMAScore favors high steady-state bandwidth for a large (256KiB)
// transfer, folding in the local memory domain's registration cost since a
// bulk RMA lane must register the transfer buffer.
func bulkRMAScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	minBW := math.Min(local.Capabilities.Bandwidth, remote.Capabilities.Bandwidth)
	const size = bulkMessageSize
	denom := size/minBW + linkLatency(opts, local, remote) + local.Capabilities.Overhead +
		local.RegCost.Overhead + size*local.RegCost.Growth
	return 1 / denom
}

// amBWScore favors high effective throughput for messages up to the local
// resource's largest non-zero-copy active message.
func amBWScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	size := float64(local.Capabilities.AMMaxBcopy)
	minBW := math.Min(local.Capabilities.Bandwidth, remote.Capabilities.Bandwidth)
	overheads := local.Capabilities.Overhead + remote.Capabilities.Overhead
	denom := size/minBW + overheads + linkLatency(opts, local, remote)
	return (size / denom) * 1e-5
}

// auxiliaryScore is identical to smallMessageLatencyScore; kept as a
// distinct name because auxiliary transport selection is a conceptually
// separate call site (spec §4.6) even though the formula matches.
func auxiliaryScore(opts *Options, local *uct.Resource, remote *uct.AddressEntry) float64 {
	return smallMessageLatencyScore(opts, local, remote)
}

// scoreEqual reports whether a and b are equal within a relative epsilon,
// per spec §4.1: |a-b| < eps * max(|a|, |b|, 1).
func scoreEqual(a, b, eps float64) bool {
	m := math.Max(math.Abs(a), math.Abs(b))
	if m < 1 {
		m = 1
	}
	return math.Abs(a-b) < eps*m
}

// scoreBetter reports whether candidate strictly improves on best given
// the priority tie-break: higher score wins; on an epsilon-tie, higher
// combined priority wins; a genuine tie keeps the first candidate found
// (the caller must preserve ascending iteration order for this to hold).
func scoreBetter(opts *Options, candidateScore float64, candidatePriority int, bestScore float64, bestPriority int, haveBest bool) bool {
	if !haveBest {
		return true
	}
	eps := opts.scoreEpsilon()
	if scoreEqual(candidateScore, bestScore, eps) {
		return candidatePriority > bestPriority
	}
	return candidateScore > bestScore
}
