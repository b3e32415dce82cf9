package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "capstock_imports_total",
		Help: "Number of spreadsheet imports completed.",
	})

	ImportRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "capstock_import_records_total",
		Help: "Number of inventory records created by imports.",
	})
)
