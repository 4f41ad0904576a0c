package wireup

import "fmt"

// Logger provides unstructured debug logging hooks for the selector.
type Logger interface {
	Debugf(format string, args ...any)
}

// StructuredLogger emits key/value pairs for structured logging backends.
type StructuredLogger interface {
	Debugw(msg string, keyvals ...any)
}

// TraceAttribute represents a tracing attribute attached to selection spans
// or events.
type TraceAttribute struct {
	Key   string
	Value any
}

// Tracer starts the span that wraps a Select call. Role passes start no
// spans of their own and add no span events.
type Tracer interface {
	StartSpan(name string, attrs ...TraceAttribute) Span
}

// Span records pass lifecycle, events, and errors for tracing systems.
type Span interface {
	End(err error)
	AddEvent(name string, attrs ...TraceAttribute)
	RecordError(err error)
}

// MetricHook captures selection telemetry events.
type MetricHook interface {
	PassStarted(pass string, attrs map[string]string)
	LaneSelected(pass string, attrs map[string]string)
	PassUnreachable(pass string, attrs map[string]string)
	AMEmulationFallback(attrs map[string]string)
	ProxyLaneCreated(pass string, attrs map[string]string)
}

type logField struct {
	key   string
	value any
}

func logKV(key string, value any) logField {
	return logField{key: key, value: value}
}

// hookSink bundles the ambient hooks and knows how to fan a single event
// out to whichever of them are configured, mirroring the teacher's
// Client.logDispatcherEvent/metricAttrs pair.
type hookSink struct {
	logger           Logger
	structuredLogger StructuredLogger
	tracer           Tracer
	metrics          MetricHook
}

func (h *hookSink) logEvent(event string, fields ...logField) {
	if h == nil {
		return
	}
	if h.structuredLogger != nil {
		kv := make([]any, 0, len(fields)*2+2)
		kv = append(kv, "event", event)
		for _, f := range fields {
			kv = append(kv, f.key, f.value)
		}
		h.structuredLogger.Debugw("wireup select", kv...)
		return
	}
	if h.logger == nil {
		return
	}
	msg := event
	for _, f := range fields {
		msg += fmt.Sprintf(" %s=%v", f.key, f.value)
	}
	h.logger.Debugf("wireup select %s", msg)
}

func (h *hookSink) attrs(fields ...logField) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.key] = fmt.Sprint(f.value)
	}
	return m
}

func (h *hookSink) passStarted(pass string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.PassStarted(pass, h.attrs(logKV("pass", pass)))
}

func (h *hookSink) laneSelected(pass string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.LaneSelected(pass, h.attrs(logKV("pass", pass)))
}

func (h *hookSink) passUnreachable(pass string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.PassUnreachable(pass, h.attrs(logKV("pass", pass)))
}

func (h *hookSink) amEmulationFallback(pass string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.AMEmulationFallback(h.attrs(logKV("pass", pass)))
}

func (h *hookSink) proxyLaneCreated(pass string) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ProxyLaneCreated(pass, h.attrs(logKV("pass", pass)))
}
