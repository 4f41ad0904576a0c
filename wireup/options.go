package wireup

// Options bundles the selector's tunables and ambient hooks, mirroring the
// shape of the teacher's client.Config: one struct, one field per concern,
// passed once at the call site rather than read from files or env (spec
// §6 is explicit that the core owns no configuration surface of its own).
type Options struct {
	// MaxEagerLanes bounds AM-BW lane count including the AM lane itself, so
	// the AM-BW pass adds at most MaxEagerLanes-1 extra lanes. Zero is
	// treated as 1 (AM-BW pass adds no lane).
	MaxEagerLanes int
	// MaxRndvLanes bounds RMA-BW lane count. Zero is treated as 1.
	MaxRndvLanes int
	// EstimatedEndpoints feeds the link-latency growth term (spec §4.1).
	// Zero is treated as 1.
	EstimatedEndpoints int
	// ScoreEpsilon overrides the default relative epsilon used for
	// score-equality comparisons. Zero uses defaultScoreEpsilon.
	ScoreEpsilon float64
	// ExcludeFromRemoteKeyMap, if set, excludes a remote transport by name
	// from rma_bw_md_map construction (spec §9's policy-hook open
	// question; see SPEC_FULL.md's Open Question Decisions).
	ExcludeFromRemoteKeyMap func(remoteTransportName string) bool

	Logger           Logger
	StructuredLogger StructuredLogger
	Tracer           Tracer
	Metrics          MetricHook
}

func (o *Options) scoreEpsilon() float64 {
	if o == nil || o.ScoreEpsilon == 0 {
		return defaultScoreEpsilon
	}
	return o.ScoreEpsilon
}

func (o *Options) estimatedEndpoints() int {
	if o == nil || o.EstimatedEndpoints <= 0 {
		return 1
	}
	return o.EstimatedEndpoints
}

func (o *Options) maxEagerLanes() int {
	if o == nil || o.MaxEagerLanes <= 0 {
		return 1
	}
	return o.MaxEagerLanes
}

func (o *Options) maxRndvLanes() int {
	if o == nil || o.MaxRndvLanes <= 0 {
		return 1
	}
	return o.MaxRndvLanes
}

func (o *Options) excludeFromRemoteKeyMap(name string) bool {
	if o == nil || o.ExcludeFromRemoteKeyMap == nil {
		return false
	}
	return o.ExcludeFromRemoteKeyMap(name)
}

func (o *Options) hooks() *hookSink {
	if o == nil {
		return &hookSink{}
	}
	return &hookSink{
		logger:           o.Logger,
		structuredLogger: o.StructuredLogger,
		tracer:           o.Tracer,
		metrics:          o.Metrics,
	}
}
