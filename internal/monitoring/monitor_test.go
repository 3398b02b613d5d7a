package monitoring

import (
	"testing"
	"time"

	"pitplan/internal/planner"
)

func samplePlan() planner.CookPlan {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	return planner.GeneratePlan(planner.CookPlanInput{
		MeatCut:     planner.CutBrisket,
		WeightLb:    12,
		Smoker:      planner.SmokerPellet,
		SmokerTempF: 225,
		Wrap:        planner.WrapNone,
		ServeTime:   serve,
	})
}

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	if _, exists = metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordPlanGenerated(t *testing.T) {
	m := NewMonitor()
	plan := samplePlan()

	m.RecordPlanGenerated("brisket", plan)
	m.RecordPlanGenerated("brisket", plan)

	metrics := m.GetMetrics()

	score, exists := metrics["plan_brisket_confidence_score"]
	if !exists {
		t.Fatalf("Expected 'plan_brisket_confidence_score' to be present, but it was not")
	}
	if score != plan.ConfidenceScore {
		t.Errorf("Expected confidence score %d, but got %v", plan.ConfidenceScore, score)
	}

	if count := metrics["plans_generated_total"]; count != 2 {
		t.Errorf("Expected 2 plans generated, but got %v", count)
	}

	if _, exists = metrics["plan_brisket_last_generated"]; !exists {
		t.Errorf("Expected 'plan_brisket_last_generated' to be present, but it was not")
	}
}

func TestMonitor_RecordPrediction(t *testing.T) {
	m := NewMonitor()
	plan := samplePlan()
	update := planner.UpdatePrediction(plan, 160, 300, 203)

	m.RecordPrediction("cook-1", update)

	metrics := m.GetMetrics()
	if status := metrics["prediction_cook-1_status"]; status != string(update.Status) {
		t.Errorf("Expected status %q, but got %v", update.Status, status)
	}
	if count := metrics["predictions_total"]; count != 1 {
		t.Errorf("Expected 1 prediction recorded, but got %v", count)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()
	if _, exists := metrics["test_metric"]; exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}
	if _, exists := metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestCollectorObserve(t *testing.T) {
	c := NewCollector()
	plan := samplePlan()

	c.ObservePlan("brisket", "pellet", plan)
	update := planner.UpdatePrediction(plan, 180, 200, 203)
	c.ObservePrediction(plan, update)

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, fam := range families {
		seen[fam.GetName()] = true
	}
	for _, want := range []string{
		"cook_plan_span_minutes",
		"cook_plan_confidence_score",
		"cook_prediction_updates_total",
		"cook_prediction_finish_shift_minutes",
	} {
		if !seen[want] {
			t.Errorf("Expected metric family %q to be registered, but it was not", want)
		}
	}
}
