package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for sheet operations.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
	OutcomeNoConfig = "unconfigured"
)

var (
	sheetReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coxcoop",
			Subsystem: "sheets",
			Name:      "reads_total",
			Help:      "Sheet range reads by tab and outcome.",
		},
		[]string{"tab", "outcome"},
	)

	sheetAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coxcoop",
			Subsystem: "sheets",
			Name:      "appends_total",
			Help:      "Sheet row appends by tab and outcome.",
		},
		[]string{"tab", "outcome"},
	)
)

func RecordSheetRead(tab, outcome string) {
	sheetReads.WithLabelValues(tab, outcome).Inc()
}

func RecordSheetAppend(tab, outcome string) {
	sheetAppends.WithLabelValues(tab, outcome).Inc()
}
