package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bus_logistics/internal/models"
)

type gormSchedules struct{ db *gorm.DB }

func (s gormSchedules) FindByID(ctx context.Context, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := s.db.WithContext(ctx).
		Preload("Driver").Preload("Driver.Roles").
		Preload("Bus").Preload("Route").
		First(&schedule, id).Error
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return &schedule, nil
}

func (s gormSchedules) FindAll(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := s.db.WithContext(ctx).
		Preload("Driver").Preload("Bus").Preload("Route").
		Order("departure_date_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s gormSchedules) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Schedule{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormSchedules) FindOverlapping(ctx context.Context, entity ScheduleEntity, entityID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error) {
	column := "driver_id"
	if entity == EntityBus {
		column = "bus_id"
	}

	var schedules []models.Schedule
	err := s.db.WithContext(ctx).
		Where(column+" = ? AND id <> ? AND departure_date_time < ? AND estimated_arrival_date_time > ?",
			entityID, excludeID, end, start).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s gormSchedules) FindByRouteAndDepartureWindow(ctx context.Context, routeID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := s.db.WithContext(ctx).
		Where("route_id = ? AND id <> ? AND departure_date_time BETWEEN ? AND ?",
			routeID, excludeID, start, end).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s gormSchedules) Create(ctx context.Context, schedule *models.Schedule) error {
	return translateWrite(s.db.WithContext(ctx).Create(schedule).Error)
}

func (s gormSchedules) Save(ctx context.Context, schedule *models.Schedule) error {
	return translateWrite(s.db.WithContext(ctx).Save(schedule).Error)
}

func (s gormSchedules) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Schedule{}, id).Error
}
