package planner

// MeatCut identifies the cut of meat being smoked
type MeatCut string

const (
	CutBrisket      MeatCut = "brisket"
	CutPorkShoulder MeatCut = "pork_shoulder"
	CutPorkBelly    MeatCut = "pork_belly"
	CutSpareRibs    MeatCut = "spare_ribs"
	CutBabyBackRibs MeatCut = "baby_back_ribs"
	CutWholeChicken MeatCut = "whole_chicken"
	CutTurkeyBreast MeatCut = "turkey_breast"
)

// SmokerType identifies the style of smoker in use
type SmokerType string

const (
	SmokerPellet   SmokerType = "pellet"
	SmokerOffset   SmokerType = "offset"
	SmokerKamado   SmokerType = "kamado"
	SmokerElectric SmokerType = "electric"
	SmokerPropane  SmokerType = "propane"
	SmokerDrum     SmokerType = "drum"
)

// WrapMethod identifies the wrap technique applied mid-cook
type WrapMethod string

const (
	WrapNone         WrapMethod = "none"
	WrapButcherPaper WrapMethod = "butcher_paper"
	WrapFoil         WrapMethod = "foil"
)

// PhaseName is one of the fixed vocabulary of cook phases
type PhaseName string

const (
	PhasePrep         PhaseName = "Prep & Trim"
	PhasePreheat      PhaseName = "Preheat Smoker"
	PhaseSmokeOne     PhaseName = "Smoke Phase 1"
	PhaseStallWindow  PhaseName = "Stall Window"
	PhaseWrapDecision PhaseName = "Wrap Decision"
	PhaseSmokeTwo     PhaseName = "Smoke Phase 2"
	PhaseRest         PhaseName = "Rest"
	PhaseServeWindow  PhaseName = "Serve Window"
)

// ConfidenceLevel is a coarse qualitative label for phase predictability
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// DurationRange is a min/max duration pair in minutes
type DurationRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// cookTimeSpec is either a per-pound rate or a flat total range, in minutes
type cookTimeSpec struct {
	PerPound bool
	MinMins  float64
	MaxMins  float64
}

// smokerProfile shifts the mean of the cook-time range and widens or
// narrows its spread around the midpoint
type smokerProfile struct {
	MeanMult     float64
	VarianceMult float64
}

// Base cook times. Per-pound rates reflect low-and-slow temperatures around
// 225-250F; flat ranges are for cuts that don't scale much with weight.
var cookTimes = map[MeatCut]cookTimeSpec{
	CutBrisket:      {PerPound: true, MinMins: 60, MaxMins: 90},
	CutPorkShoulder: {PerPound: true, MinMins: 75, MaxMins: 105},
	CutPorkBelly:    {PerPound: false, MinMins: 300, MaxMins: 420},
	CutSpareRibs:    {PerPound: false, MinMins: 300, MaxMins: 390},
	CutBabyBackRibs: {PerPound: false, MinMins: 270, MaxMins: 330},
	CutWholeChicken: {PerPound: false, MinMins: 180, MaxMins: 240},
	CutTurkeyBreast: {PerPound: true, MinMins: 30, MaxMins: 40},
}

var smokerProfiles = map[SmokerType]smokerProfile{
	SmokerPellet:   {MeanMult: 1.0, VarianceMult: 0.9},
	SmokerOffset:   {MeanMult: 1.1, VarianceMult: 1.3},
	SmokerKamado:   {MeanMult: 0.95, VarianceMult: 1.0},
	SmokerElectric: {MeanMult: 1.0, VarianceMult: 0.85},
	SmokerPropane:  {MeanMult: 0.95, VarianceMult: 1.05},
	SmokerDrum:     {MeanMult: 1.05, VarianceMult: 1.15},
}

// Environmental thresholds and factors. Cold ambient and altitude lengthen
// the cook, hot ambient shortens it; the effects compound multiplicatively.
const (
	coldBelowF      = 40.0
	coldFactor      = 1.15
	hotAboveF       = 95.0
	hotFactor       = 0.92
	altitudeAboveFt = 5000.0
	altitudeFactor  = 1.1
)

// Stall configuration. The stall is the evaporative-cooling plateau,
// typically between 150F and 170F internal.
const (
	stallBandLowF       = 150.0
	stallBandHighF      = 170.0
	stallMinMins        = 60
	stallMaxMins        = 180
	stallWrapReduction  = 0.5
	smokeOneShare       = 0.4
	smokeTwoShare       = 0.3
	serveToleranceMins  = 30
	finishSpreadFactor  = 1.0 // tunable: confidence window = variance/2 * factor each side
	confidenceScoreMin  = 20
	confidenceScoreMax  = 100
	lowPhasePenalty     = 15
	mediumPhasePenalty  = 5
	variancePenaltyRate = 50 // points per 1.0 of variance multiplier above 1
)

// stallProneCuts are the large collagen-heavy cuts that plateau through
// the 150-170F band. Ribs and poultry cook past it too fast to stall.
var stallProneCuts = map[MeatCut]bool{
	CutBrisket:      true,
	CutPorkShoulder: true,
	CutPorkBelly:    true,
}

// defaultTargetTemps holds the conventional finished internal temperature per cut
var defaultTargetTemps = map[MeatCut]float64{
	CutBrisket:      203,
	CutPorkShoulder: 203,
	CutPorkBelly:    200,
	CutSpareRibs:    198,
	CutBabyBackRibs: 195,
	CutWholeChicken: 165,
	CutTurkeyBreast: 160,
}

var restRanges = map[MeatCut]DurationRange{
	CutBrisket:      {Min: 45, Max: 120},
	CutPorkShoulder: {Min: 30, Max: 60},
	CutPorkBelly:    {Min: 20, Max: 40},
	CutSpareRibs:    {Min: 15, Max: 30},
	CutBabyBackRibs: {Min: 10, Max: 20},
	CutWholeChicken: {Min: 10, Max: 15},
	CutTurkeyBreast: {Min: 20, Max: 30},
}

var (
	prepRange    = DurationRange{Min: 30, Max: 45}
	preheatRange = DurationRange{Min: 20, Max: 45}
)

// phaseConfidence assigns each phase name its fixed confidence level
var phaseConfidence = map[PhaseName]ConfidenceLevel{
	PhasePrep:         ConfidenceHigh,
	PhasePreheat:      ConfidenceHigh,
	PhaseSmokeOne:     ConfidenceMedium,
	PhaseStallWindow:  ConfidenceLow,
	PhaseWrapDecision: ConfidenceMedium,
	PhaseSmokeTwo:     ConfidenceMedium,
	PhaseRest:         ConfidenceHigh,
	PhaseServeWindow:  ConfidenceHigh,
}

// IsCutValid checks if a meat cut is in the supported set
func IsCutValid(cut string) bool {
	_, ok := cookTimes[MeatCut(cut)]
	return ok
}

// IsSmokerValid checks if a smoker type is in the supported set
func IsSmokerValid(smoker string) bool {
	_, ok := smokerProfiles[SmokerType(smoker)]
	return ok
}

// IsWrapValid checks if a wrap method is in the supported set
func IsWrapValid(wrap string) bool {
	switch WrapMethod(wrap) {
	case WrapNone, WrapButcherPaper, WrapFoil:
		return true
	}
	return false
}

// IsStallProne reports whether a cut belongs to the stall-affected set
func IsStallProne(cut MeatCut) bool {
	return stallProneCuts[cut]
}

// DefaultTargetTemp returns the conventional finished internal temperature
// for a cut, or 0 if the cut is unknown
func DefaultTargetTemp(cut MeatCut) float64 {
	return defaultTargetTemps[cut]
}

// StallBand returns the internal-temperature band where the stall sets in
func StallBand() (lowF, highF float64) {
	return stallBandLowF, stallBandHighF
}

// LevelForScore maps an overall confidence score to its coarse label
func LevelForScore(score int) ConfidenceLevel {
	switch {
	case score >= 70:
		return ConfidenceHigh
	case score >= 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
