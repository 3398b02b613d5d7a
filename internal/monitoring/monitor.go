package monitoring

import (
	"sync"
	"time"

	"pitplan/internal/planner"
)

// Monitor collects lightweight runtime counters for the planning service
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordPlanGenerated records the outcome of a plan generation
func (m *Monitor) RecordPlanGenerated(cut string, plan planner.CookPlan) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := "plan_" + cut + "_"
	m.metrics[prefix+"confidence_score"] = plan.ConfidenceScore
	m.metrics[prefix+"phase_count"] = len(plan.Phases)
	m.metrics[prefix+"span_minutes"] = plan.PredictedFinishTime.Sub(plan.RecommendedStartTime).Minutes()
	m.metrics[prefix+"last_generated"] = time.Now().Format(time.RFC3339)

	if count, ok := m.metrics["plans_generated_total"].(int); ok {
		m.metrics["plans_generated_total"] = count + 1
	} else {
		m.metrics["plans_generated_total"] = 1
	}
}

// RecordPrediction records the outcome of a prediction update
func (m *Monitor) RecordPrediction(cookID string, update planner.PredictionUpdate) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := "prediction_" + cookID + "_"
	m.metrics[prefix+"status"] = string(update.Status)
	m.metrics[prefix+"confidence"] = update.AdjustedConfidence
	m.metrics[prefix+"last_updated"] = time.Now().Format(time.RFC3339)

	if count, ok := m.metrics["predictions_total"].(int); ok {
		m.metrics["predictions_total"] = count + 1
	} else {
		m.metrics["predictions_total"] = 1
	}
}
