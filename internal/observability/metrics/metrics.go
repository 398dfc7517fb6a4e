package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters/histograms for the chat and contact flows.
type SiteMetrics struct {
	chatMessagesTotal       *prometheus.CounterVec
	chatRespondSeconds      prometheus.Histogram
	contactSubmissionsTotal *prometheus.CounterVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		chatMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealspot",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat turns handled, by matched intent",
		}, []string{"intent"}),
		chatRespondSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dealspot",
			Subsystem: "chat",
			Name:      "respond_seconds",
			Help:      "Latency of the intent matcher",
			Buckets:   prometheus.DefBuckets,
		}),
		contactSubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dealspot",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact form submissions, by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatMessagesTotal, m.chatRespondSeconds, m.contactSubmissionsTotal)
	return m
}

func (m *SiteMetrics) ObserveChatMessage(intent string) {
	if m == nil {
		return
	}
	m.chatMessagesTotal.WithLabelValues(intent).Inc()
}

func (m *SiteMetrics) ObserveChatRespondLatency(seconds float64) {
	if m == nil {
		return
	}
	m.chatRespondSeconds.Observe(seconds)
}

func (m *SiteMetrics) ObserveContactSubmission(status string) {
	if m == nil {
		return
	}
	m.contactSubmissionsTotal.WithLabelValues(status).Inc()
}
