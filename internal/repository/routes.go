package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bus_logistics/internal/models"
)

type gormRoutes struct{ db *gorm.DB }

func (s gormRoutes) FindByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	if err := s.db.WithContext(ctx).First(&route, id).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &route, nil
}

func (s gormRoutes) FindByIDLocked(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&route, id).Error
	if err != nil {
		return nil, notFoundToNil(err)
	}
	return &route, nil
}

func (s gormRoutes) FindAll(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.WithContext(ctx).Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s gormRoutes) SearchByName(ctx context.Context, name string) ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.WithContext(ctx).Where("name ILIKE ?", "%"+name+"%").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s gormRoutes) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Route{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormRoutes) ExistsByRouteCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Route{}).Where("route_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormRoutes) ExistsByNameAndDirection(ctx context.Context, name, direction string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Route{}).
		Where("name = ? AND direction = ?", name, direction).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormRoutes) Create(ctx context.Context, route *models.Route) error {
	return translateWrite(s.db.WithContext(ctx).Create(route).Error)
}

func (s gormRoutes) Save(ctx context.Context, route *models.Route) error {
	return translateWrite(s.db.WithContext(ctx).Save(route).Error)
}

func (s gormRoutes) Delete(ctx context.Context, id uint) error {
	// Route stops go with the route.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", id).Delete(&models.RouteStop{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Route{}, id).Error
	})
}

type gormRouteStops struct{ db *gorm.DB }

func (s gormRouteStops) FindByID(ctx context.Context, id uint) (*models.RouteStop, error) {
	var rs models.RouteStop
	if err := s.db.WithContext(ctx).Preload("Stop").First(&rs, id).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &rs, nil
}

func (s gormRouteStops) FindByRouteOrdered(ctx context.Context, routeID uint) ([]models.RouteStop, error) {
	var stops []models.RouteStop
	err := s.db.WithContext(ctx).
		Preload("Stop").
		Where("route_id = ?", routeID).
		Order("stop_order ASC").
		Find(&stops).Error
	if err != nil {
		return nil, err
	}
	return stops, nil
}

func (s gormRouteStops) FindAll(ctx context.Context) ([]models.RouteStop, error) {
	var stops []models.RouteStop
	err := s.db.WithContext(ctx).
		Preload("Stop").
		Order("route_id ASC, stop_order ASC").
		Find(&stops).Error
	if err != nil {
		return nil, err
	}
	return stops, nil
}

func (s gormRouteStops) ExistsByRouteAndOrder(ctx context.Context, routeID uint, order int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RouteStop{}).
		Where("route_id = ? AND stop_order = ?", routeID, order).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s gormRouteStops) ShiftOrdersFrom(ctx context.Context, routeID uint, from int) error {
	return s.db.WithContext(ctx).Model(&models.RouteStop{}).
		Where("route_id = ? AND stop_order >= ?", routeID, from).
		UpdateColumn("stop_order", gorm.Expr("stop_order + 1")).Error
}

func (s gormRouteStops) CompactOrdersAfter(ctx context.Context, routeID uint, after int) error {
	return s.db.WithContext(ctx).Model(&models.RouteStop{}).
		Where("route_id = ? AND stop_order > ?", routeID, after).
		UpdateColumn("stop_order", gorm.Expr("stop_order - 1")).Error
}

func (s gormRouteStops) Create(ctx context.Context, rs *models.RouteStop) error {
	return translateWrite(s.db.WithContext(ctx).Create(rs).Error)
}

func (s gormRouteStops) Save(ctx context.Context, rs *models.RouteStop) error {
	return translateWrite(s.db.WithContext(ctx).Save(rs).Error)
}

func (s gormRouteStops) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.RouteStop{}, id).Error
}
