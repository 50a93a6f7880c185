package eidglue

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors ScanFiles updates as it works
// through a batch. A nil *Metrics is safe to use everywhere: every
// method is a no-op on a nil receiver, so callers that don't care about
// metrics don't need a stub implementation.
type Metrics struct {
	FilesScanned   prometheus.Counter
	FilesMatched   prometheus.Counter
	FilesErrored   prometheus.Counter
	EvidenceByKind *prometheus.CounterVec
}

// NewMetrics constructs a Metrics registered under namespace and
// registers its collectors with reg. reg may be nil, in which case the
// collectors are created but left unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Total number of files passed to the scanner.",
		}),
		FilesMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_matched_total",
			Help:      "Total number of files in which the magic header was found.",
		}),
		FilesErrored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_errored_total",
			Help:      "Total number of files whose scan ended with a non-fatal error such as context cancellation; read errors are not counted.",
		}),
		EvidenceByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evidence_emitted_total",
			Help:      "Total Evidence records emitted, labelled by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.FilesScanned, m.FilesMatched, m.FilesErrored, m.EvidenceByKind)
	}
	return m
}

func (m *Metrics) observeScanned() {
	if m == nil {
		return
	}
	m.FilesScanned.Inc()
}

func (m *Metrics) observeMatched() {
	if m == nil {
		return
	}
	m.FilesMatched.Inc()
}

func (m *Metrics) observeErrored() {
	if m == nil {
		return
	}
	m.FilesErrored.Inc()
}

func (m *Metrics) observeEvidence(kind string) {
	if m == nil {
		return
	}
	m.EvidenceByKind.WithLabelValues(kind).Inc()
}
