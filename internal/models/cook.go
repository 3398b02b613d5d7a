package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"pitplan/internal/planner"
)

// Validation bounds enforced at the API boundary. The planning engine
// assumes these hold and never re-checks them.
const (
	MinWeightLb     = 0.5
	MaxWeightLb     = 30.0
	MinSmokerTempF  = 175.0
	MaxSmokerTempF  = 400.0
	MinInternalF    = 32.0
	MaxInternalF    = 220.0
	MinAmbientF     = -20.0
	MaxAmbientF     = 120.0
	MinAltitudeFt   = 0.0
	MaxAltitudeFt   = 15000.0
	MinHumidityPct  = 0.0
	MaxHumidityPct  = 100.0
)

// CookStatus represents the lifecycle state of a cook
type CookStatus string

const (
	CookStatusPlanned   CookStatus = "planned"
	CookStatusActive    CookStatus = "active"
	CookStatusResting   CookStatus = "resting"
	CookStatusCompleted CookStatus = "completed"
	CookStatusAbandoned CookStatus = "abandoned"
)

// Cook represents a single smoking session tracked from planning through
// completion. The generated plan is stored as a JSON text column; a changed
// input always produces a freshly generated plan, never an in-place edit.
type Cook struct {
	gorm.Model
	CookID       string     `gorm:"column:cook_id;unique_index" json:"cook_id"`
	Name         string     `json:"name"`
	MeatCut      string     `json:"meat_cut"`
	WeightLb     float64    `json:"weight_lb"`
	SmokerType   string     `json:"smoker_type"`
	SmokerTempF  float64    `json:"smoker_temp_f"`
	WrapMethod   string     `json:"wrap_method"`
	ServeTime    time.Time  `json:"serve_time"`
	AmbientTempF *float64   `json:"ambient_temp_f,omitempty"`
	AltitudeFt   *float64   `json:"altitude_ft,omitempty"`
	HumidityPct  *float64   `json:"humidity_pct,omitempty"`
	TargetTempF  float64    `json:"target_temp_f"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	PlanJSON     string     `gorm:"type:text" json:"-"`
	// Transient decoded plan (ignored by GORM)
	Plan *planner.CookPlan `gorm:"-" json:"plan,omitempty"`
}

// TableName sets the table name for Cook
func (Cook) TableName() string {
	return "cooks"
}

// GetPlan returns the deserialized cook plan
func (c *Cook) GetPlan() (*planner.CookPlan, error) {
	if c.Plan != nil {
		return c.Plan, nil
	}
	if c.PlanJSON == "" {
		return nil, fmt.Errorf("cook %s has no stored plan", c.CookID)
	}
	var plan planner.CookPlan
	if err := json.Unmarshal([]byte(c.PlanJSON), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	c.Plan = &plan
	return c.Plan, nil
}

// SetPlan serializes the plan for storage
func (c *Cook) SetPlan(plan planner.CookPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	c.PlanJSON = string(data)
	c.Plan = &plan
	return nil
}

// PlanInput converts the stored parameters into engine input. Empty wrap
// methods collapse to "none".
func (c *Cook) PlanInput() planner.CookPlanInput {
	wrap := planner.WrapMethod(c.WrapMethod)
	if wrap == "" {
		wrap = planner.WrapNone
	}
	return planner.CookPlanInput{
		MeatCut:      planner.MeatCut(c.MeatCut),
		WeightLb:     c.WeightLb,
		Smoker:       planner.SmokerType(c.SmokerType),
		SmokerTempF:  c.SmokerTempF,
		Wrap:         wrap,
		ServeTime:    c.ServeTime,
		AmbientTempF: c.AmbientTempF,
		AltitudeFt:   c.AltitudeFt,
	}
}

// ElapsedMinutes returns minutes since the cook was started, or 0 if it
// has not been started
func (c *Cook) ElapsedMinutes(now time.Time) float64 {
	if c.StartedAt == nil {
		return 0
	}
	return now.Sub(*c.StartedAt).Minutes()
}

// ValidateCook rejects out-of-range or malformed cook parameters. This is
// the precondition gate for the planning engine: anything passing here is
// safe to plan.
func ValidateCook(c *Cook) error {
	if !planner.IsCutValid(c.MeatCut) {
		return fmt.Errorf("unknown meat cut %q", c.MeatCut)
	}
	if !planner.IsSmokerValid(c.SmokerType) {
		return fmt.Errorf("unknown smoker type %q", c.SmokerType)
	}
	if c.WrapMethod != "" && !planner.IsWrapValid(c.WrapMethod) {
		return fmt.Errorf("unknown wrap method %q", c.WrapMethod)
	}
	if c.WeightLb < MinWeightLb || c.WeightLb > MaxWeightLb {
		return fmt.Errorf("weight %.1f lb outside %.1f-%.1f", c.WeightLb, MinWeightLb, MaxWeightLb)
	}
	if c.SmokerTempF < MinSmokerTempF || c.SmokerTempF > MaxSmokerTempF {
		return fmt.Errorf("smoker temperature %.0fF outside %.0f-%.0f", c.SmokerTempF, MinSmokerTempF, MaxSmokerTempF)
	}
	if c.AmbientTempF != nil && (*c.AmbientTempF < MinAmbientF || *c.AmbientTempF > MaxAmbientF) {
		return fmt.Errorf("ambient temperature %.0fF outside %.0f-%.0f", *c.AmbientTempF, MinAmbientF, MaxAmbientF)
	}
	if c.AltitudeFt != nil && (*c.AltitudeFt < MinAltitudeFt || *c.AltitudeFt > MaxAltitudeFt) {
		return fmt.Errorf("altitude %.0f ft outside %.0f-%.0f", *c.AltitudeFt, MinAltitudeFt, MaxAltitudeFt)
	}
	if c.HumidityPct != nil && (*c.HumidityPct < MinHumidityPct || *c.HumidityPct > MaxHumidityPct) {
		return fmt.Errorf("humidity %.0f%% outside %.0f-%.0f", *c.HumidityPct, MinHumidityPct, MaxHumidityPct)
	}
	if c.ServeTime.IsZero() {
		return fmt.Errorf("serve time is required")
	}
	return nil
}

// IsCookStatusValid checks if a cook status is valid
func IsCookStatusValid(status string) bool {
	switch CookStatus(status) {
	case CookStatusPlanned, CookStatusActive, CookStatusResting, CookStatusCompleted, CookStatusAbandoned:
		return true
	}
	return false
}
