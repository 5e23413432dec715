package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SqliteLatency is the duration of SQLite queries.
	SqliteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_sqlite_latency",
			Help: "Duration of SQLite queries",
		},
		[]string{"dal", "query", "table"},
	)

	// SqliteTotalRequests is the total number of SQLite requests.
	SqliteTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_sqlite_total_requests",
			Help: "Total number of SQLite requests",
		},
		[]string{"dal", "query", "table"},
	)
)
