package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"pitplan/internal/models"
)

// CookStore persists cooks and temperature readings through GORM
type CookStore struct {
	db *gorm.DB
}

// NewCookStore creates a store backed by the given connection
func NewCookStore(db *gorm.DB) *CookStore {
	return &CookStore{db: db}
}

// GetCook fetches a cook by its public ID
func (s *CookStore) GetCook(ctx context.Context, id string) (*models.Cook, error) {
	var cook models.Cook
	if err := s.db.Where("cook_id = ?", id).First(&cook).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("cook %s not found", id)
		}
		return nil, err
	}
	return &cook, nil
}

// SaveCook inserts or updates a cook record
func (s *CookStore) SaveCook(ctx context.Context, cook *models.Cook) error {
	return s.db.Save(cook).Error
}

// ListCooks returns all cooks, newest first
func (s *CookStore) ListCooks(ctx context.Context) ([]models.Cook, error) {
	var cooks []models.Cook
	if err := s.db.Order("created_at desc").Find(&cooks).Error; err != nil {
		return nil, err
	}
	return cooks, nil
}

// DeleteCook removes a cook and its readings
func (s *CookStore) DeleteCook(ctx context.Context, id string) error {
	tx := s.db.Begin()
	if err := tx.Where("cook_id = ?", id).Delete(&models.TemperatureReading{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("cook_id = ?", id).Delete(&models.Cook{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// SaveReading persists a temperature reading
func (s *CookStore) SaveReading(ctx context.Context, reading *models.TemperatureReading) error {
	return s.db.Create(reading).Error
}

// LatestReading returns the most recent reading for a cook, or nil if none
func (s *CookStore) LatestReading(ctx context.Context, cookID string) (*models.TemperatureReading, error) {
	var reading models.TemperatureReading
	err := s.db.Where("cook_id = ?", cookID).Order("recorded_at desc").First(&reading).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

// ListReadings returns the readings for a cook in chronological order
func (s *CookStore) ListReadings(ctx context.Context, cookID string) ([]models.TemperatureReading, error) {
	var readings []models.TemperatureReading
	if err := s.db.Where("cook_id = ?", cookID).Order("recorded_at asc").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}
