package ingest

import "github.com/prometheus/client_golang/prometheus"

var (
	metricRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytingest_runs_total",
		Help: "Total ingestion runs started.",
	})
	metricVideosProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytingest_videos_processed_total",
		Help: "Videos whose metadata document was written.",
	})
	metricVideosFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytingest_videos_failed_total",
		Help: "Videos whose metadata write failed.",
	})
	metricRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ytingest_run_duration_seconds",
		Help:    "Duration of ingestion runs.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(metricRuns, metricVideosProcessed, metricVideosFailed, metricRunDuration)
}
