package transport

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "radius_client"
	subsystem = "transport"
)

const labelPeer = "peer"

// Collector holds the Prometheus metrics for the UDP transport. A nil
// *Collector is valid everywhere it is accepted: every method is a no-op on
// a nil receiver, so instrumentation is opt-in.
type Collector struct {
	Sent     *prometheus.CounterVec
	Received *prometheus.CounterVec
	Timeouts *prometheus.CounterVec
	Rejected *prometheus.CounterVec
	Retries  *prometheus.CounterVec
}

// NewCollector builds a Collector and registers its metrics against reg. If
// reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := newMetrics()
	reg.MustRegister(c.Sent, c.Received, c.Timeouts, c.Rejected, c.Retries)
	return c
}

func newMetrics() *Collector {
	labels := []string{labelPeer}
	return &Collector{
		Sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "packets_sent_total",
			Help: "Total RADIUS request datagrams sent, counting retries.",
		}, labels),
		Received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "packets_received_total",
			Help: "Total RADIUS responses received and authenticator-verified.",
		}, labels),
		Timeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "exchanges_timed_out_total",
			Help: "Total exchanges that exhausted every retry without a reply.",
		}, labels),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "responses_rejected_total",
			Help: "Total responses discarded for identifier mismatch or bad authenticator.",
		}, labels),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "retries_total",
			Help: "Total retry attempts issued after a timeout.",
		}, labels),
	}
}

func (c *Collector) incSent(peer string) {
	if c != nil {
		c.Sent.WithLabelValues(peer).Inc()
	}
}

func (c *Collector) incReceived(peer string) {
	if c != nil {
		c.Received.WithLabelValues(peer).Inc()
	}
}

func (c *Collector) incTimeouts(peer string) {
	if c != nil {
		c.Timeouts.WithLabelValues(peer).Inc()
	}
}

func (c *Collector) incRejected(peer string) {
	if c != nil {
		c.Rejected.WithLabelValues(peer).Inc()
	}
}

func (c *Collector) incRetries(peer string) {
	if c != nil {
		c.Retries.WithLabelValues(peer).Inc()
	}
}
