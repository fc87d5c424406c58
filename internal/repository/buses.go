package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bus_logistics/internal/models"
)

type gormBuses struct{ db *gorm.DB }

func (s gormBuses) FindByID(ctx context.Context, id uint) (*models.Bus, error) {
	var bus models.Bus
	if err := s.db.WithContext(ctx).First(&bus, id).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &bus, nil
}

func (s gormBuses) FindByIDLocked(ctx context.Context, id uint) (*models.Bus, error) {
	var bus models.Bus
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bus, id).Error
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return &bus, nil
}

func (s gormBuses) FindAll(ctx context.Context) ([]models.Bus, error) {
	var buses []models.Bus
	if err := s.db.WithContext(ctx).Find(&buses).Error; err != nil {
		return nil, err
	}
	return buses, nil
}

func (s gormBuses) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, "id = ?", id)
}

func (s gormBuses) ExistsByBusNumber(ctx context.Context, busNumber string) (bool, error) {
	return s.exists(ctx, "bus_number = ?", busNumber)
}

func (s gormBuses) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	return s.exists(ctx, "plate_number = ?", plateNumber)
}

func (s gormBuses) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Bus{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormBuses) Create(ctx context.Context, bus *models.Bus) error {
	return translateWrite(s.db.WithContext(ctx).Create(bus).Error)
}

func (s gormBuses) Save(ctx context.Context, bus *models.Bus) error {
	return translateWrite(s.db.WithContext(ctx).Save(bus).Error)
}

func (s gormBuses) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Bus{}, id).Error
}

type gormStops struct{ db *gorm.DB }

func (s gormStops) FindByID(ctx context.Context, id uint) (*models.Stop, error) {
	var stop models.Stop
	if err := s.db.WithContext(ctx).First(&stop, id).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &stop, nil
}

func (s gormStops) FindAll(ctx context.Context) ([]models.Stop, error) {
	var stops []models.Stop
	if err := s.db.WithContext(ctx).Find(&stops).Error; err != nil {
		return nil, err
	}
	return stops, nil
}

func (s gormStops) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Stop{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormStops) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Stop{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormStops) Create(ctx context.Context, stop *models.Stop) error {
	return translateWrite(s.db.WithContext(ctx).Create(stop).Error)
}

func (s gormStops) Save(ctx context.Context, stop *models.Stop) error {
	return translateWrite(s.db.WithContext(ctx).Save(stop).Error)
}

func (s gormStops) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Stop{}, id).Error
}
