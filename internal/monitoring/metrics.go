package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"

	"pitplan/internal/planner"
)

// Collector exposes planning metrics through a dedicated Prometheus registry
type Collector struct {
	registry *prometheus.Registry

	planSpan        *prometheus.HistogramVec
	planConfidence  *prometheus.GaugeVec
	predictions     *prometheus.CounterVec
	finishShiftMins *prometheus.HistogramVec
}

// NewCollector creates and registers the planning metrics
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	planSpan := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cook_plan_span_minutes",
			Help:    "Total planned span from recommended start to predicted finish",
			Buckets: prometheus.LinearBuckets(0, 120, 15), // 2-hour buckets
		},
		[]string{"meat_cut", "smoker_type"},
	)

	planConfidence := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cook_plan_confidence_score",
			Help: "Overall confidence score of the most recent plan",
		},
		[]string{"meat_cut"},
	)

	predictions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cook_prediction_updates_total",
			Help: "Prediction updates by qualitative status",
		},
		[]string{"status"},
	)

	finishShift := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cook_prediction_finish_shift_minutes",
			Help:    "Absolute shift applied to the predicted finish time",
			Buckets: prometheus.LinearBuckets(0, 15, 12), // 15-minute buckets
		},
		[]string{"status"},
	)

	for _, metric := range []prometheus.Collector{planSpan, planConfidence, predictions, finishShift} {
		registry.MustRegister(metric)
	}

	return &Collector{
		registry:        registry,
		planSpan:        planSpan,
		planConfidence:  planConfidence,
		predictions:     predictions,
		finishShiftMins: finishShift,
	}
}

// Registry returns the underlying registry for the metrics endpoint
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObservePlan records metrics for a freshly generated plan
func (c *Collector) ObservePlan(cut, smoker string, plan planner.CookPlan) {
	span := plan.PredictedFinishTime.Sub(plan.RecommendedStartTime).Minutes()
	c.planSpan.WithLabelValues(cut, smoker).Observe(span)
	c.planConfidence.WithLabelValues(cut).Set(float64(plan.ConfidenceScore))
}

// ObservePrediction records metrics for a prediction update against the
// plan it revised
func (c *Collector) ObservePrediction(plan planner.CookPlan, update planner.PredictionUpdate) {
	c.predictions.WithLabelValues(string(update.Status)).Inc()

	shift := update.UpdatedFinishTime.Sub(plan.PredictedFinishTime).Minutes()
	if shift < 0 {
		shift = -shift
	}
	c.finishShiftMins.WithLabelValues(string(update.Status)).Observe(shift)
}
