package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadb_api_calls_total",
			Help: "Total number of stats API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbadb_api_call_duration_seconds",
			Help:    "Duration of stats API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Sync operation metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadb_sync_operations_total",
			Help: "Total number of sync operations",
		},
		[]string{"operation", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbadb_sync_duration_seconds",
			Help:    "Duration of sync operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"operation"},
	)

	// Data metrics
	TeamsIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadb_teams_ingested",
			Help: "Number of teams ingested in the last sync",
		},
	)

	PlayersIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadb_players_ingested",
			Help: "Number of players ingested in the last sync",
		},
	)

	GamesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadb_games_ingested",
			Help: "Number of games ingested in the last sync",
		},
	)

	GamesFailed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadb_games_failed",
			Help: "Number of games that failed ingestion in the last sync",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbadb_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)

	// Worker status
	LastSuccessfulSync = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nbadb_last_successful_sync_timestamp",
			Help: "Timestamp of last successful sync operation",
		},
		[]string{"operation"},
	)

	UptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nbadb_uptime_seconds",
			Help: "Uptime of the worker in seconds",
		},
	)
)

// RecordAPICall records metrics for a stats API call
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordSyncOperation records metrics for a sync operation
func RecordSyncOperation(operation, status string, duration float64) {
	SyncOperationsTotal.WithLabelValues(operation, status).Inc()
	SyncDuration.WithLabelValues(operation).Observe(duration)
}

// RecordError increments the error counter for the given error type
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
