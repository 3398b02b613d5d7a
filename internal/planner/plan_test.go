package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func brisketInput(serve time.Time) CookPlanInput {
	return CookPlanInput{
		MeatCut:      CutBrisket,
		WeightLb:     12,
		Smoker:       SmokerPellet,
		SmokerTempF:  225,
		Wrap:         WrapNone,
		ServeTime:    serve,
		AmbientTempF: floatPtr(70),
		AltitudeFt:   floatPtr(0),
	}
}

func TestGeneratePlanBrisketScenario(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	plan := GeneratePlan(brisketInput(serve))

	require.Len(t, plan.Phases, 6)

	wantOrder := []PhaseName{PhasePrep, PhasePreheat, PhaseSmokeOne, PhaseStallWindow, PhaseSmokeTwo, PhaseRest}
	for i, p := range plan.Phases {
		assert.Equal(t, wantOrder[i], p.Name)
		assert.Equal(t, i, p.Order)
	}

	// Finish must precede serve by at least the rest minimum plus the
	// 30-minute serve tolerance
	minLead := time.Duration(restRanges[CutBrisket].Min+serveToleranceMins) * time.Minute
	assert.True(t, plan.PredictedFinishTime.Add(minLead).Before(serve) ||
		plan.PredictedFinishTime.Add(minLead).Equal(serve),
		"finish %v too close to serve %v", plan.PredictedFinishTime, serve)

	assert.GreaterOrEqual(t, plan.ConfidenceScore, 60)
	assert.LessOrEqual(t, plan.ConfidenceScore, 100)
}

func TestGeneratePlanPhasesContiguous(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	inputs := []CookPlanInput{
		brisketInput(serve),
		{MeatCut: CutPorkShoulder, WeightLb: 8, Smoker: SmokerOffset, SmokerTempF: 250, Wrap: WrapFoil, ServeTime: serve},
		{MeatCut: CutBabyBackRibs, WeightLb: 3, Smoker: SmokerKamado, SmokerTempF: 225, Wrap: WrapNone, ServeTime: serve},
		{MeatCut: CutWholeChicken, WeightLb: 5, Smoker: SmokerElectric, SmokerTempF: 275, Wrap: WrapNone, ServeTime: serve},
		{MeatCut: CutTurkeyBreast, WeightLb: 7, Smoker: SmokerDrum, SmokerTempF: 250, Wrap: WrapButcherPaper, ServeTime: serve, AmbientTempF: floatPtr(30), AltitudeFt: floatPtr(6000)},
	}

	for _, input := range inputs {
		plan := GeneratePlan(input)
		require.NotEmpty(t, plan.Phases, "cut %s", input.MeatCut)

		for i, p := range plan.Phases {
			assert.False(t, p.EndTime.Before(p.StartTime), "%s: end before start", p.Name)
			if i > 0 {
				prev := plan.Phases[i-1]
				assert.True(t, prev.EndTime.Equal(p.StartTime),
					"%s → %s not contiguous: %v vs %v", prev.Name, p.Name, prev.EndTime, p.StartTime)
				assert.False(t, p.StartTime.Before(prev.StartTime), "start times must be non-decreasing")
			}
		}

		last := plan.Phases[len(plan.Phases)-1]
		assert.False(t, last.EndTime.Before(plan.Phases[0].StartTime))
		assert.Equal(t, plan.Phases[0].StartTime, plan.RecommendedStartTime)
	}
}

func TestPredictedFinishIsRestStart(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	plan := GeneratePlan(brisketInput(serve))

	var rest *Phase
	for i := range plan.Phases {
		if plan.Phases[i].Name == PhaseRest {
			rest = &plan.Phases[i]
		}
	}
	require.NotNil(t, rest)
	assert.True(t, plan.PredictedFinishTime.Equal(rest.StartTime))
}

func TestFinishWithinConfidenceRange(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	plan := GeneratePlan(brisketInput(serve))

	assert.False(t, plan.PredictedFinishTime.Before(plan.ConfidenceRange.Earliest))
	assert.False(t, plan.PredictedFinishTime.After(plan.ConfidenceRange.Latest))
	assert.GreaterOrEqual(t, plan.ConfidenceScore, confidenceScoreMin)
	assert.LessOrEqual(t, plan.ConfidenceScore, confidenceScoreMax)
}

func TestStallWindowPresence(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	hasPhase := func(plan CookPlan, name PhaseName) bool {
		for _, p := range plan.Phases {
			if p.Name == name {
				return true
			}
		}
		return false
	}

	for cut := range cookTimes {
		input := CookPlanInput{MeatCut: cut, WeightLb: 8, Smoker: SmokerPellet, SmokerTempF: 225, Wrap: WrapNone, ServeTime: serve}
		plan := GeneratePlan(input)
		assert.Equal(t, IsStallProne(cut), hasPhase(plan, PhaseStallWindow), "cut %s", cut)
		assert.False(t, hasPhase(plan, PhaseWrapDecision), "no wrap selected for %s", cut)
	}
}

func TestWrapDecisionOnlyForStallProneCuts(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	wrapped := brisketInput(serve)
	wrapped.Wrap = WrapButcherPaper
	plan := GeneratePlan(wrapped)

	var wrapPhase *Phase
	for i := range plan.Phases {
		if plan.Phases[i].Name == PhaseWrapDecision {
			wrapPhase = &plan.Phases[i]
		}
	}
	require.NotNil(t, wrapPhase, "stall-prone wrapped cook must carry a wrap decision")
	assert.True(t, wrapPhase.StartTime.Equal(wrapPhase.EndTime), "wrap decision is instantaneous")

	// Baby back ribs never stall, so wrapping produces no decision phase
	// and no stall window, only a note on the smoke phase
	ribs := CookPlanInput{MeatCut: CutBabyBackRibs, WeightLb: 3, Smoker: SmokerOffset, SmokerTempF: 250, Wrap: WrapFoil, ServeTime: serve}
	ribsPlan := GeneratePlan(ribs)
	for _, p := range ribsPlan.Phases {
		assert.NotEqual(t, PhaseStallWindow, p.Name)
		assert.NotEqual(t, PhaseWrapDecision, p.Name)
		if p.Name == PhaseSmokeOne {
			assert.NotEmpty(t, p.Note, "wrap method should be recorded in a note")
		}
	}
}

func TestWrapHalvesStallRange(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	stallRange := func(plan CookPlan) DurationRange {
		for _, p := range plan.Phases {
			if p.Name == PhaseStallWindow {
				return p.Duration
			}
		}
		t.Fatal("no stall window in plan")
		return DurationRange{}
	}

	unwrapped := stallRange(GeneratePlan(brisketInput(serve)))

	wrappedInput := brisketInput(serve)
	wrappedInput.Wrap = WrapButcherPaper
	wrapped := stallRange(GeneratePlan(wrappedInput))

	assert.Equal(t, unwrapped.Min/2, wrapped.Min)
	assert.Equal(t, unwrapped.Max/2, wrapped.Max)
}

func TestHeavierCookNeverShorter(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	span := func(weight float64) time.Duration {
		input := brisketInput(serve)
		input.WeightLb = weight
		plan := GeneratePlan(input)
		return plan.PredictedFinishTime.Sub(plan.RecommendedStartTime)
	}

	prev := span(0.5)
	for _, w := range []float64{2, 5, 8, 12, 16, 20, 30} {
		cur := span(w)
		assert.GreaterOrEqual(t, cur, prev, "weight %v shortened the cook", w)
		prev = cur
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	input := brisketInput(serve)

	first := GeneratePlan(input)
	second := GeneratePlan(input)
	assert.Equal(t, first, second)
}

func TestEnvironmentalFactorsCompound(t *testing.T) {
	serve := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)

	mild := brisketInput(serve)
	mildPlan := GeneratePlan(mild)

	harsh := brisketInput(serve)
	harsh.AmbientTempF = floatPtr(20)
	harsh.AltitudeFt = floatPtr(7000)
	harshPlan := GeneratePlan(harsh)

	mildSpan := mildPlan.PredictedFinishTime.Sub(mildPlan.RecommendedStartTime)
	harshSpan := harshPlan.PredictedFinishTime.Sub(harshPlan.RecommendedStartTime)
	assert.Greater(t, harshSpan, mildSpan, "cold plus altitude should lengthen the cook")

	hot := brisketInput(serve)
	hot.AmbientTempF = floatPtr(105)
	hotPlan := GeneratePlan(hot)
	hotSpan := hotPlan.PredictedFinishTime.Sub(hotPlan.RecommendedStartTime)
	assert.Less(t, hotSpan, mildSpan, "hot ambient should shorten the cook")
}

func TestDegenerateRangesNormalized(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

	// Boundary weight with every compounding factor active must still
	// produce ordered, non-negative phase durations
	input := CookPlanInput{
		MeatCut:      CutTurkeyBreast,
		WeightLb:     0.5,
		Smoker:       SmokerOffset,
		SmokerTempF:  400,
		Wrap:         WrapFoil,
		ServeTime:    serve,
		AmbientTempF: floatPtr(-20),
		AltitudeFt:   floatPtr(15000),
	}
	plan := GeneratePlan(input)

	for _, p := range plan.Phases {
		assert.LessOrEqual(t, p.Duration.Min, p.Duration.Max, "phase %s", p.Name)
		assert.GreaterOrEqual(t, p.Duration.Min, 0, "phase %s", p.Name)
		assert.False(t, p.EndTime.Before(p.StartTime), "phase %s", p.Name)
	}
}

func TestPhaseConfidenceAssignment(t *testing.T) {
	serve := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	input := brisketInput(serve)
	input.Wrap = WrapButcherPaper
	plan := GeneratePlan(input)

	want := map[PhaseName]ConfidenceLevel{
		PhasePrep:         ConfidenceHigh,
		PhasePreheat:      ConfidenceHigh,
		PhaseSmokeOne:     ConfidenceMedium,
		PhaseStallWindow:  ConfidenceLow,
		PhaseWrapDecision: ConfidenceMedium,
		PhaseSmokeTwo:     ConfidenceMedium,
		PhaseRest:         ConfidenceHigh,
	}
	for _, p := range plan.Phases {
		assert.Equal(t, want[p.Name], p.Confidence, "phase %s", p.Name)
	}
}
