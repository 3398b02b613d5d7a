package planner

import (
	"math"
	"time"
)

// PredictionStatus is the qualitative read on a running cook
type PredictionStatus string

const (
	StatusAhead   PredictionStatus = "ahead"
	StatusOnTrack PredictionStatus = "on_track"
	StatusBehind  PredictionStatus = "behind"
)

// PredictionUpdate is the revised estimate derived from a live temperature
// reading. The original plan is never rewritten; this is a separate result.
type PredictionUpdate struct {
	UpdatedFinishTime  time.Time        `json:"updated_finish_time"`
	AdjustedConfidence int              `json:"adjusted_confidence"`
	Status             PredictionStatus `json:"status"`
}

const (
	// Deviation between actual and expected progress beyond which the
	// cook is called ahead or behind
	progressDeadband = 0.10
	// Share of the projected progress gap applied to the finish time
	finishShiftRate = 0.3
	// Confidence drops in proportion to deviation, capped here
	maxConfidencePenalty = 30
)

// UpdatePrediction recomputes the finish estimate from a live internal
// temperature. Progress is modeled as currentTempF/targetTempF, a
// deliberately linear proxy: real temperature rise flattens through the
// stall, but the simplification keeps the update cheap and monotonic.
// The caller must reject targetTempF of zero and plans with a zero span
// before invoking; the engine does not guard those preconditions.
func UpdatePrediction(plan CookPlan, currentTempF, elapsedMinutes, targetTempF float64) PredictionUpdate {
	totalExpected := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	expectedProgress := elapsedMinutes / totalExpected
	actualProgress := currentTempF / targetTempF
	deviation := actualProgress - expectedProgress

	status := StatusOnTrack
	shiftMins := 0.0
	switch {
	case deviation > progressDeadband:
		status = StatusAhead
		shiftMins = -deviation * finishShiftRate * totalExpected
	case deviation < -progressDeadband:
		status = StatusBehind
		shiftMins = -deviation * finishShiftRate * totalExpected
	}

	penalty := math.Abs(deviation) * 100
	if penalty > maxConfidencePenalty {
		penalty = maxConfidencePenalty
	}
	confidence := plan.ConfidenceScore - int(penalty)
	if confidence < confidenceScoreMin {
		confidence = confidenceScoreMin
	}

	return PredictionUpdate{
		UpdatedFinishTime:  plan.PredictedFinishTime.Add(time.Duration(shiftMins * float64(time.Minute))),
		AdjustedConfidence: confidence,
		Status:             status,
	}
}
