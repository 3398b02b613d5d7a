package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackedPlan(t *testing.T) CookPlan {
	t.Helper()
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	plan := GeneratePlan(brisketInput(serve))
	require.False(t, plan.ConfidenceRange.Latest.Equal(plan.RecommendedStartTime))
	return plan
}

func TestUpdatePredictionOnTrack(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	// Actual progress exactly equals expected progress
	update := UpdatePrediction(plan, target*0.5, total*0.5, target)

	assert.Equal(t, StatusOnTrack, update.Status)
	assert.True(t, update.UpdatedFinishTime.Equal(plan.PredictedFinishTime))
	assert.Equal(t, plan.ConfidenceScore, update.AdjustedConfidence)
}

func TestUpdatePredictionWithinDeadband(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	// 5% ahead of schedule still reads as on track
	update := UpdatePrediction(plan, target*0.55, total*0.5, target)
	assert.Equal(t, StatusOnTrack, update.Status)
	assert.True(t, update.UpdatedFinishTime.Equal(plan.PredictedFinishTime))
}

func TestUpdatePredictionAhead(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	// Internal temp at double the linear expectation
	update := UpdatePrediction(plan, target*0.8, total*0.4, target)

	assert.Equal(t, StatusAhead, update.Status)
	assert.True(t, update.UpdatedFinishTime.Before(plan.PredictedFinishTime),
		"ahead reading must pull the finish earlier")
	assert.Less(t, update.AdjustedConfidence, plan.ConfidenceScore)
}

func TestUpdatePredictionBehind(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	update := UpdatePrediction(plan, target*0.3, total*0.6, target)

	assert.Equal(t, StatusBehind, update.Status)
	assert.True(t, update.UpdatedFinishTime.After(plan.PredictedFinishTime),
		"behind reading must push the finish later")
	assert.Less(t, update.AdjustedConfidence, plan.ConfidenceScore)
}

func TestUpdatePredictionSymmetricShift(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	// Equal deviations either side of expected shift the finish by the
	// same magnitude in opposite directions
	ahead := UpdatePrediction(plan, target*0.70, total*0.5, target)
	behind := UpdatePrediction(plan, target*0.30, total*0.5, target)

	pull := plan.PredictedFinishTime.Sub(ahead.UpdatedFinishTime)
	push := behind.UpdatedFinishTime.Sub(plan.PredictedFinishTime)
	assert.Equal(t, pull, push)
}

func TestUpdatePredictionConfidenceFloor(t *testing.T) {
	plan := trackedPlan(t)
	target := DefaultTargetTemp(CutBrisket)
	total := plan.ConfidenceRange.Latest.Sub(plan.RecommendedStartTime).Minutes()

	// Deviation beyond the 30-point cap cannot drag confidence below 20
	update := UpdatePrediction(plan, target, total*0.05, target)
	assert.GreaterOrEqual(t, update.AdjustedConfidence, 20)
	assert.GreaterOrEqual(t, plan.ConfidenceScore-update.AdjustedConfidence, 0)
	assert.LessOrEqual(t, plan.ConfidenceScore-update.AdjustedConfidence, 30)
}

func TestUpdatePredictionDoesNotMutatePlan(t *testing.T) {
	plan := trackedPlan(t)
	before := plan
	target := DefaultTargetTemp(CutBrisket)

	UpdatePrediction(plan, 160, 240, target)

	assert.Equal(t, before, plan, "the original plan is read-only evidence")
}
