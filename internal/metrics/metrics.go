// Package metrics exposes Prometheus counters for imports and classification.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

const namespace = "ledgerdesk"

// Metrics owns a private registry so several instances (one per test server)
// can coexist without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry

	ImportBatches        *prometheus.CounterVec
	ImportRecords        *prometheus.CounterVec
	Classifications      *prometheus.CounterVec
	TransactionsRecorded *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ImportBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_batches_total",
			Help:      "Ticket import batches processed, by format",
		}, []string{"format"}),
		ImportRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_records_total",
			Help:      "Ticket import ledger entries, by format and outcome (success or failure)",
		}, []string{"format", "outcome"}),
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Keyword classifications, by resulting category and priority",
		}, []string{"category", "priority"}),
		TransactionsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_recorded_total",
			Help:      "Transactions accepted into the log, by type",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordClassification(category model.Category, priority model.Priority) {
	m.Classifications.WithLabelValues(string(category), string(priority)).Inc()
}

// RecordImport counts one batch and its ledger split.
func (m *Metrics) RecordImport(format string, successful, failed int) {
	m.ImportBatches.WithLabelValues(format).Inc()
	m.ImportRecords.WithLabelValues(format, "success").Add(float64(successful))
	m.ImportRecords.WithLabelValues(format, "failure").Add(float64(failed))
}

func (m *Metrics) RecordTransaction(t model.TransactionType) {
	m.TransactionsRecorded.WithLabelValues(string(t)).Inc()
}
