package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	DatapointsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "texttocad",
			Name:      "datapoints_generated_total",
			Help:      "Total number of synthetic training examples generated",
		},
		[]string{"shape"},
	)

	TrainingEpochsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "texttocad",
			Name:      "training_epochs_total",
			Help:      "Total number of completed training epochs",
		},
	)

	TrainingLoss = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "texttocad",
			Name:      "training_loss",
			Help:      "Mean squared error of the most recent epoch",
		},
		[]string{"split"}, // "train" / "valid"
	)

	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "texttocad",
			Name:      "predictions_total",
			Help:      "Total number of prediction requests",
		},
		[]string{"status"},
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "texttocad",
			Name:      "prediction_duration_seconds",
			Help:      "Prediction duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PredictionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "texttocad",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(DatapointsGeneratedTotal)
	prometheus.MustRegister(TrainingEpochsTotal)
	prometheus.MustRegister(TrainingLoss)
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(PredictionCacheTotal)
	pipelineMetricsRegistered = true
}
