package planner

import (
	"fmt"
	"time"
)

// CookPlanInput holds the static parameters of a planned cook. The engine
// assumes the caller has already validated numeric ranges at the boundary;
// AmbientTempF and AltitudeFt are nil when not supplied.
type CookPlanInput struct {
	MeatCut      MeatCut    `json:"meat_cut"`
	WeightLb     float64    `json:"weight_lb"`
	Smoker       SmokerType `json:"smoker_type"`
	SmokerTempF  float64    `json:"smoker_temp_f"`
	Wrap         WrapMethod `json:"wrap_method"`
	ServeTime    time.Time  `json:"serve_time"`
	AmbientTempF *float64   `json:"ambient_temp_f,omitempty"`
	AltitudeFt   *float64   `json:"altitude_ft,omitempty"`
}

// Phase is a named, time-bounded segment of the cook timeline. Instantaneous
// phases (start == end) mark single-moment decisions like the wrap call.
type Phase struct {
	Name       PhaseName       `json:"name"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    time.Time       `json:"end_time"`
	Duration   DurationRange   `json:"duration_range"`
	Confidence ConfidenceLevel `json:"confidence"`
	Note       string          `json:"note,omitempty"`
	Order      int             `json:"order"`
}

// FinishWindow brackets the predicted finish time
type FinishWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// CookPlan is the full time-anchored schedule for a cook. Plans are built
// fresh for every input; nothing mutates a plan in place.
type CookPlan struct {
	Phases               []Phase      `json:"phases"`
	PredictedFinishTime  time.Time    `json:"predicted_finish_time"`
	ConfidenceRange      FinishWindow `json:"confidence_range"`
	ConfidenceScore      int          `json:"confidence_score"`
	RecommendedStartTime time.Time    `json:"recommended_start_time"`
}

// minuteRange is the internal floating-point duration range used while
// multipliers compound; it is rounded into DurationRange only at assembly.
type minuteRange struct {
	min float64
	max float64
}

func (r minuteRange) mid() float64 { return (r.min + r.max) / 2 }

// normalize restores min <= max and clamps below zero. Compounding
// multipliers can cross the bounds for extreme inputs.
func (r minuteRange) normalize() minuteRange {
	if r.min > r.max {
		r.min, r.max = r.max, r.min
	}
	if r.min < 0 {
		r.min = 0
	}
	if r.max < 0 {
		r.max = 0
	}
	return r
}

func (r minuteRange) scale(factor float64) minuteRange {
	return minuteRange{min: r.min * factor, max: r.max * factor}
}

func (r minuteRange) rounded() DurationRange {
	return DurationRange{Min: int(r.min + 0.5), Max: int(r.max + 0.5)}
}

// GeneratePlan converts static cook parameters into a time-anchored phase
// schedule, working backward from the serve time. Pure and deterministic:
// identical input always yields an identical plan.
func GeneratePlan(input CookPlanInput) CookPlan {
	cook := baseCookRange(input.MeatCut, input.WeightLb)
	cook = applySmokerProfile(cook, input.Smoker)
	cook = applyEnvironment(cook, input.AmbientTempF, input.AltitudeFt)
	cook = cook.normalize()

	stallProne := IsStallProne(input.MeatCut)
	var stall minuteRange
	if stallProne {
		stall = minuteRange{min: stallMinMins, max: stallMaxMins}
		if input.Wrap != WrapNone && input.Wrap != "" {
			// Wrapping powers through the evaporative plateau
			stall = stall.scale(stallWrapReduction)
		}
		stall = stall.normalize()
	}

	phases, finish := assemblePhases(input, cook, stall, stallProne)

	varianceMins := (cook.max - cook.min) + (stall.max - stall.min)
	halfSpread := time.Duration(varianceMins / 2 * finishSpreadFactor * float64(time.Minute))

	return CookPlan{
		Phases:              phases,
		PredictedFinishTime: finish,
		ConfidenceRange: FinishWindow{
			Earliest: finish.Add(-halfSpread),
			Latest:   finish.Add(halfSpread),
		},
		ConfidenceScore:      scorePlan(phases, input.Smoker),
		RecommendedStartTime: phases[0].StartTime,
	}
}

// baseCookRange looks up the cook-time range in minutes for a cut and weight
func baseCookRange(cut MeatCut, weightLb float64) minuteRange {
	spec := cookTimes[cut]
	if spec.PerPound {
		return minuteRange{min: spec.MinMins * weightLb, max: spec.MaxMins * weightLb}
	}
	return minuteRange{min: spec.MinMins, max: spec.MaxMins}
}

// applySmokerProfile shifts the mean of the range, then widens or narrows
// the spread around its midpoint without moving the center
func applySmokerProfile(r minuteRange, smoker SmokerType) minuteRange {
	profile, ok := smokerProfiles[smoker]
	if !ok {
		return r
	}
	r = r.scale(profile.MeanMult)
	center := r.mid()
	half := (r.max - r.min) / 2 * profile.VarianceMult
	return minuteRange{min: center - half, max: center + half}
}

// applyEnvironment compounds the cold/hot ambient and altitude factors.
// Both can apply at once; each is independent of the others.
func applyEnvironment(r minuteRange, ambientF, altitudeFt *float64) minuteRange {
	factor := 1.0
	if ambientF != nil {
		if *ambientF < coldBelowF {
			factor *= coldFactor
		} else if *ambientF > hotAboveF {
			factor *= hotFactor
		}
	}
	if altitudeFt != nil && *altitudeFt > altitudeAboveFt {
		factor *= altitudeFactor
	}
	return r.scale(factor)
}

// assemblePhases builds the chronological phase list by inserting each phase
// at the logical front while walking backward from the serve time: every new
// phase ends where the most recently placed phase starts. Rest, Preheat and
// Prep are placed at their range max so earlier phases are never shorted;
// smoke and stall segments are placed at their range midpoint. Returns the
// list and the predicted finish time (start of Rest).
func assemblePhases(input CookPlanInput, cook, stall minuteRange, stallProne bool) ([]Phase, time.Time) {
	var backward []Phase
	prepend := func(p Phase) time.Time {
		backward = append(backward, p)
		return p.StartTime
	}

	// Serve Window is implicit: it only shifts the Rest end 30 minutes
	// ahead of the serve time and is not stored as its own phase.
	cursor := input.ServeTime.Add(-serveToleranceMins * time.Minute)

	rest := restRanges[input.MeatCut]
	cursor = prepend(Phase{
		Name:      PhaseRest,
		StartTime: cursor.Add(-time.Duration(rest.Max) * time.Minute),
		EndTime:   cursor,
		Duration:  rest,
	})
	finish := cursor

	if stallProne {
		smokeTwo := cook.scale(smokeTwoShare)
		cursor = prepend(Phase{
			Name:      PhaseSmokeTwo,
			StartTime: cursor.Add(-time.Duration(smokeTwo.mid() * float64(time.Minute))),
			EndTime:   cursor,
			Duration:  smokeTwo.rounded(),
		})

		if input.Wrap != WrapNone && input.Wrap != "" {
			// Instantaneous marker at the stall-to-smoke-2 boundary
			cursor = prepend(Phase{
				Name:      PhaseWrapDecision,
				StartTime: cursor,
				EndTime:   cursor,
				Duration:  DurationRange{},
				Note:      fmt.Sprintf("Wrap in %s once the stall sets in", wrapLabel(input.Wrap)),
			})
		}

		cursor = prepend(Phase{
			Name:      PhaseStallWindow,
			StartTime: cursor.Add(-time.Duration(stall.mid() * float64(time.Minute))),
			EndTime:   cursor,
			Duration:  stall.rounded(),
			Note:      fmt.Sprintf("Internal temp typically plateaus between %.0fF and %.0fF", stallBandLowF, stallBandHighF),
		})

		smokeOne := cook.scale(smokeOneShare)
		cursor = prepend(Phase{
			Name:      PhaseSmokeOne,
			StartTime: cursor.Add(-time.Duration(smokeOne.mid() * float64(time.Minute))),
			EndTime:   cursor,
			Duration:  smokeOne.rounded(),
		})
	} else {
		note := ""
		if input.Wrap != WrapNone && input.Wrap != "" {
			// Wrapping only matters through a stall; record the choice anyway
			note = fmt.Sprintf("%s wrap selected; no stall expected for this cut", wrapLabel(input.Wrap))
		}
		cursor = prepend(Phase{
			Name:      PhaseSmokeOne,
			StartTime: cursor.Add(-time.Duration(cook.mid() * float64(time.Minute))),
			EndTime:   cursor,
			Duration:  cook.rounded(),
			Note:      note,
		})
	}

	cursor = prepend(Phase{
		Name:      PhasePreheat,
		StartTime: cursor.Add(-time.Duration(preheatRange.Max) * time.Minute),
		EndTime:   cursor,
		Duration:  preheatRange,
	})
	prepend(Phase{
		Name:      PhasePrep,
		StartTime: cursor.Add(-time.Duration(prepRange.Max) * time.Minute),
		EndTime:   cursor,
		Duration:  prepRange,
	})

	// Reverse into chronological order and assign indices in one pass
	phases := make([]Phase, len(backward))
	for i := range backward {
		p := backward[len(backward)-1-i]
		p.Confidence = phaseConfidence[p.Name]
		p.Order = i
		phases[i] = p
	}
	return phases, finish
}

// scorePlan computes the overall confidence score: start at 100, deduct for
// high-variance smokers and for each Low/Medium phase, clamp to [20, 100]
func scorePlan(phases []Phase, smoker SmokerType) int {
	score := 100.0
	if profile, ok := smokerProfiles[smoker]; ok && profile.VarianceMult > 1 {
		score -= (profile.VarianceMult - 1) * variancePenaltyRate
	}
	for _, p := range phases {
		switch p.Confidence {
		case ConfidenceLow:
			score -= lowPhasePenalty
		case ConfidenceMedium:
			score -= mediumPhasePenalty
		}
	}
	result := int(score)
	if result < confidenceScoreMin {
		result = confidenceScoreMin
	}
	if result > confidenceScoreMax {
		result = confidenceScoreMax
	}
	return result
}

func wrapLabel(wrap WrapMethod) string {
	switch wrap {
	case WrapButcherPaper:
		return "butcher paper"
	case WrapFoil:
		return "foil"
	}
	return string(wrap)
}
