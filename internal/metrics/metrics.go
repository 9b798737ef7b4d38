package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results used as label values.
const (
	ResultOK       = "ok"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Recorder counts editor operations by kind and result.
type Recorder interface {
	Record(op, result string)
}

// Counter is a prometheus-backed Recorder.
type Counter struct {
	vec *prometheus.CounterVec
}

// NewCounter registers the editor operation counter with reg.
func NewCounter(reg prometheus.Registerer) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menucms",
		Name:      "editor_operations_total",
		Help:      "Menu editor operations by operation and result.",
	}, []string{"op", "result"})

	reg.MustRegister(vec)

	return &Counter{vec: vec}
}

// Record increments the counter for op and result.
func (c *Counter) Record(op, result string) {
	c.vec.WithLabelValues(op, result).Inc()
}

// Nop discards every record.
type Nop struct{}

func (Nop) Record(string, string) {}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
