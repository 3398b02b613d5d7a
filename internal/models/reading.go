package models

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// TemperatureReading represents a single probe reading reported for a cook
type TemperatureReading struct {
	gorm.Model
	CookID        string    `gorm:"column:cook_id;index" json:"cook_id"`
	InternalTempF float64   `gorm:"column:internal_temp_f" json:"internal_temp_f"`
	PitTempF      float64   `gorm:"column:pit_temp_f" json:"pit_temp_f,omitempty"`
	RecordedAt    time.Time `gorm:"column:recorded_at" json:"recorded_at"`
}

// TableName sets the table name for TemperatureReading
func (TemperatureReading) TableName() string {
	return "temperature_readings"
}

// ValidateReading rejects readings outside the supported probe range
func ValidateReading(r *TemperatureReading) error {
	if r.CookID == "" {
		return fmt.Errorf("reading requires a cook ID")
	}
	if r.InternalTempF < MinInternalF || r.InternalTempF > MaxInternalF {
		return fmt.Errorf("internal temperature %.0fF outside %.0f-%.0f", r.InternalTempF, MinInternalF, MaxInternalF)
	}
	if r.PitTempF != 0 && (r.PitTempF < MinSmokerTempF || r.PitTempF > MaxSmokerTempF) {
		return fmt.Errorf("pit temperature %.0fF outside %.0f-%.0f", r.PitTempF, MinSmokerTempF, MaxSmokerTempF)
	}
	return nil
}
