package services

import (
	"context"
	"strings"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// RouteRequest is the create/update payload for a route. Geometry is
// WKB, already converted from GeoJSON by the transport layer.
type RouteRequest struct {
	RouteCode   string
	Name        string
	Direction   string
	Description string
	Geometry    []byte
}

type RouteService struct {
	repo repository.Repository
}

func NewRouteService(repo repository.Repository) *RouteService {
	return &RouteService{repo: repo}
}

func (s *RouteService) Create(ctx context.Context, req RouteRequest) (*models.Route, error) {
	taken, err := s.repo.Routes().ExistsByNameAndDirection(ctx, req.Name, req.Direction)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("a route with the same name and direction already exists")
	}
	taken, err = s.repo.Routes().ExistsByRouteCode(ctx, req.RouteCode)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("route code already exists")
	}

	route := &models.Route{
		RouteCode:   req.RouteCode,
		Name:        req.Name,
		Direction:   req.Direction,
		Description: req.Description,
		Geometry:    req.Geometry,
	}
	if err := s.repo.Routes().Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *RouteService) Update(ctx context.Context, id uint, req RouteRequest) (*models.Route, error) {
	route, err := s.repo.Routes().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFound("route not found with id: %d", id)
	}

	if route.Name != req.Name || route.Direction != req.Direction {
		taken, err := s.repo.Routes().ExistsByNameAndDirection(ctx, req.Name, req.Direction)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("a route with the same name and direction already exists")
		}
	}
	if route.RouteCode != req.RouteCode {
		taken, err := s.repo.Routes().ExistsByRouteCode(ctx, req.RouteCode)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("route code already exists")
		}
	}

	route.RouteCode = req.RouteCode
	route.Name = req.Name
	route.Direction = req.Direction
	route.Description = req.Description
	if req.Geometry != nil {
		route.Geometry = req.Geometry
	}
	if err := s.repo.Routes().Save(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *RouteService) List(ctx context.Context) ([]models.Route, error) {
	return s.repo.Routes().FindAll(ctx)
}

// Search matches routes by name substring; a blank query lists all.
func (s *RouteService) Search(ctx context.Context, name string) ([]models.Route, error) {
	if strings.TrimSpace(name) == "" {
		return s.repo.Routes().FindAll(ctx)
	}
	return s.repo.Routes().SearchByName(ctx, name)
}

func (s *RouteService) Get(ctx context.Context, id uint) (*models.Route, error) {
	route, err := s.repo.Routes().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFound("route not found with id: %d", id)
	}
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Routes().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("route not found with id: %d", id)
	}
	return s.repo.Routes().Delete(ctx, id)
}
