package wireup

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPrometheusMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewPrometheusMetrics(PrometheusMetricsOptions{Registerer: reg})
	if err != nil {
		t.Fatalf("NewPrometheusMetrics: %v", err)
	}

	metrics.PassStarted("rma", map[string]string{labelPass: "rma"})
	metrics.LaneSelected("rma", map[string]string{labelPass: "rma"})
	metrics.PassUnreachable("tag", map[string]string{labelPass: "tag"})
	metrics.AMEmulationFallback(map[string]string{labelPass: "rma"})
	metrics.ProxyLaneCreated("am", map[string]string{labelPass: "am"})

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	cases := map[string]float64{
		"wireup_pass_started_total":          1,
		"wireup_lane_selected_total":         1,
		"wireup_pass_unreachable_total":      1,
		"wireup_am_emulation_fallback_total": 1,
		"wireup_proxy_lane_created_total":    1,
	}

	for name, want := range cases {
		if got := findCounterValue(mfs, name); got != want {
			t.Fatalf("unexpected counter %s: got %v want %v", name, got, want)
		}
	}
}

func findCounterValue(mfs []*dto.MetricFamily, name string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.Metric {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}
	return 0
}
