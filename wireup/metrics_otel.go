package wireup

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsOptions configures NewOTelMetrics.
type OTelMetricsOptions struct {
	MeterProvider          metric.MeterProvider
	Meter                  metric.Meter
	InstrumentationName    string
	InstrumentationVersion string
}

var _ MetricHook = (*OTelMetrics)(nil)

// OTelMetrics implements MetricHook using OpenTelemetry counters.
type OTelMetrics struct {
	meter               metric.Meter
	passStarted         metric.Int64Counter
	laneSelected        metric.Int64Counter
	passUnreachable     metric.Int64Counter
	amEmulationFallback metric.Int64Counter
	proxyLaneCreated    metric.Int64Counter
}

// NewOTelMetrics constructs a MetricHook that emits OpenTelemetry counter
// measurements.
func NewOTelMetrics(opts OTelMetricsOptions) (*OTelMetrics, error) {
	meter := opts.Meter
	if meter == nil {
		provider := opts.MeterProvider
		if provider == nil {
			provider = otel.GetMeterProvider()
		}
		name := opts.InstrumentationName
		if name == "" {
			name = "github.com/openucx-go/ucx-go/wireup"
		}
		meter = provider.Meter(name, metric.WithInstrumentationVersion(opts.InstrumentationVersion))
	}

	passStarted, err := meter.Int64Counter("wireup.pass.started")
	if err != nil {
		return nil, err
	}
	laneSelected, err := meter.Int64Counter("wireup.lane.selected")
	if err != nil {
		return nil, err
	}
	passUnreachable, err := meter.Int64Counter("wireup.pass.unreachable")
	if err != nil {
		return nil, err
	}
	amEmulationFallback, err := meter.Int64Counter("wireup.am_emulation.fallback")
	if err != nil {
		return nil, err
	}
	proxyLaneCreated, err := meter.Int64Counter("wireup.proxy_lane.created")
	if err != nil {
		return nil, err
	}

	return &OTelMetrics{
		meter:               meter,
		passStarted:         passStarted,
		laneSelected:        laneSelected,
		passUnreachable:     passUnreachable,
		amEmulationFallback: amEmulationFallback,
		proxyLaneCreated:    proxyLaneCreated,
	}, nil
}

func (o *OTelMetrics) PassStarted(pass string, _ map[string]string) {
	o.passStarted.Add(context.Background(), 1, metric.WithAttributes(attribute.String(labelPass, pass)))
}

func (o *OTelMetrics) LaneSelected(pass string, _ map[string]string) {
	o.laneSelected.Add(context.Background(), 1, metric.WithAttributes(attribute.String(labelPass, pass)))
}

func (o *OTelMetrics) PassUnreachable(pass string, _ map[string]string) {
	o.passUnreachable.Add(context.Background(), 1, metric.WithAttributes(attribute.String(labelPass, pass)))
}

func (o *OTelMetrics) AMEmulationFallback(attrs map[string]string) {
	o.amEmulationFallback.Add(context.Background(), 1, metric.WithAttributes(attribute.String(labelPass, attrs[labelPass])))
}

func (o *OTelMetrics) ProxyLaneCreated(pass string, _ map[string]string) {
	o.proxyLaneCreated.Add(context.Background(), 1, metric.WithAttributes(attribute.String(labelPass, pass)))
}
