package wireup

import "github.com/openucx-go/ucx-go/uct"

// selectCtx threads the inputs and accumulating state of one Select call
// through every role pass, mirroring the original's per-call
// ucp_wireup_select_ctx_t. It is never retained past the call that
// created it.
type selectCtx struct {
	local     []uct.Resource
	remote    []uct.AddressEntry
	reachable uct.ReachabilityFunc
	params    SelectParams
	opts      *Options
	hooks     *hookSink

	lanes *laneTable

	amInfo    *SelectInfo
	amLane    int
	tagLane   int
	wireupLane int

	// createAMLaneFallback records that a lane-carrying pass (RMA or AMO)
	// failed to place a lane while AM-emulation is permitted, so the
	// finalizer's output should ask the endpoint layer to fall back to
	// emulating that role over the AM lane (SPEC_FULL supplemented
	// feature 6).
	createAMLaneFallback bool
}

func newSelectCtx(local []uct.Resource, remote []uct.AddressEntry, reachable uct.ReachabilityFunc, params SelectParams, opts *Options) *selectCtx {
	return &selectCtx{
		local:      local,
		remote:     remote,
		reachable:  reachable,
		params:     params,
		opts:       opts,
		hooks:      opts.hooks(),
		lanes:      newLaneTable(),
		amLane:     NoneLane,
		tagLane:    NoneLane,
		wireupLane: NoneLane,
	}
}

func (c *selectCtx) evaluate(criteria Criteria, masks evalMasks) (*SelectInfo, error) {
	return evaluate(c.local, c.remote, c.reachable, criteria, masks, c.opts)
}

// amEmulationAllowed reports whether a lane-carrying pass may fall back to
// AM emulation on failure: disallowed under peer error handling, since
// AM-emulation has no keepalive to detect peer death (spec §7).
func (c *selectCtx) amEmulationAllowed() bool {
	return c.params.ErrorHandlingMode != ErrorHandlingPeer
}
