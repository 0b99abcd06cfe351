// Package metrics holds the process-wide counters exposed on /metrics.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestCounter counts handled requests for the endpoints that opt in.
// It is shared by every request; the value is read back through Value and
// mirrored into a prometheus counter.
type RequestCounter struct {
	value   atomic.Int64
	counter prometheus.Counter
}

// NewRequestCounter creates the counter and registers it on reg (when not nil)
func NewRequestCounter(namespace string, reg prometheus.Registerer) (*RequestCounter, error) {
	c := &RequestCounter{
		counter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counted_requests_total",
			Help:      "Requests counted by the request counter service.",
		}),
	}
	if reg != nil {
		if err := reg.Register(c.counter); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Increment adds one and returns the new value
func (c *RequestCounter) Increment() int64 {
	c.counter.Inc()
	return c.value.Add(1)
}

// Value returns the current count
func (c *RequestCounter) Value() int64 {
	return c.value.Load()
}
