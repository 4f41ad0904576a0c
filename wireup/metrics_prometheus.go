package wireup

import "github.com/prometheus/client_golang/prometheus"

const (
	labelPass = "pass"
)

// PrometheusMetricsOptions configures NewPrometheusMetrics.
type PrometheusMetricsOptions struct {
	Registerer  prometheus.Registerer
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
}

var _ MetricHook = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements MetricHook using Prometheus counters.
type PrometheusMetrics struct {
	passStarted         *prometheus.CounterVec
	laneSelected        *prometheus.CounterVec
	passUnreachable     *prometheus.CounterVec
	amEmulationFallback *prometheus.CounterVec
	proxyLaneCreated    *prometheus.CounterVec
}

// NewPrometheusMetrics constructs a MetricHook backed by Prometheus
// counters.
func NewPrometheusMetrics(opts PrometheusMetricsOptions) (*PrometheusMetrics, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &PrometheusMetrics{
		passStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "wireup_pass_started_total",
			Help:        "Number of times a role pass started evaluating candidates",
			ConstLabels: opts.ConstLabels,
		}, []string{labelPass}),
		laneSelected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "wireup_lane_selected_total",
			Help:        "Number of lanes selected, by pass",
			ConstLabels: opts.ConstLabels,
		}, []string{labelPass}),
		passUnreachable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "wireup_pass_unreachable_total",
			Help:        "Number of times a role pass found no candidate",
			ConstLabels: opts.ConstLabels,
		}, []string{labelPass}),
		amEmulationFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "wireup_am_emulation_fallback_total",
			Help:        "Number of times a pass fell back to AM-emulation",
			ConstLabels: opts.ConstLabels,
		}, []string{labelPass}),
		proxyLaneCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "wireup_proxy_lane_created_total",
			Help:        "Number of proxy lanes created, by pass",
			ConstLabels: opts.ConstLabels,
		}, []string{labelPass}),
	}

	var err error
	if p.passStarted, err = registerCounterVec(reg, p.passStarted); err != nil {
		return nil, err
	}
	if p.laneSelected, err = registerCounterVec(reg, p.laneSelected); err != nil {
		return nil, err
	}
	if p.passUnreachable, err = registerCounterVec(reg, p.passUnreachable); err != nil {
		return nil, err
	}
	if p.amEmulationFallback, err = registerCounterVec(reg, p.amEmulationFallback); err != nil {
		return nil, err
	}
	if p.proxyLaneCreated, err = registerCounterVec(reg, p.proxyLaneCreated); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *PrometheusMetrics) PassStarted(pass string, _ map[string]string) {
	p.passStarted.With(prometheus.Labels{labelPass: pass}).Inc()
}

func (p *PrometheusMetrics) LaneSelected(pass string, _ map[string]string) {
	p.laneSelected.With(prometheus.Labels{labelPass: pass}).Inc()
}

func (p *PrometheusMetrics) PassUnreachable(pass string, _ map[string]string) {
	p.passUnreachable.With(prometheus.Labels{labelPass: pass}).Inc()
}

func (p *PrometheusMetrics) AMEmulationFallback(attrs map[string]string) {
	p.amEmulationFallback.With(prometheus.Labels{labelPass: attrs[labelPass]}).Inc()
}

func (p *PrometheusMetrics) ProxyLaneCreated(pass string, _ map[string]string) {
	p.proxyLaneCreated.With(prometheus.Labels{labelPass: pass}).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return vec, nil
}
