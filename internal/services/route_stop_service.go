package services

import (
	"context"
	"time"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// validateTimes checks the optional timetable strings are HH:MM.
func validateTimes(req RouteStopRequest) error {
	for _, v := range []*string{req.ArrivalTime, req.DepartureTime} {
		if v == nil {
			continue
		}
		if _, err := time.Parse("15:04", *v); err != nil {
			return apperr.Invalid("time must be in HH:MM format, got %q", *v)
		}
	}
	return nil
}

// RouteStopRequest carries a stop binding. Pointer fields distinguish
// "leave unchanged" (nil) from an explicit value on partial updates.
type RouteStopRequest struct {
	StopID                uint     `json:"stop_id"`
	StopOrder             *int     `json:"stop_order"`
	ArrivalTime           *string  `json:"arrival_time"`
	DepartureTime         *string  `json:"departure_time"`
	DistanceFromStartKm   *float64 `json:"distance_from_start_km"`
	TravelTimeFromPrevMin *int     `json:"travel_time_from_prev_min"`
	Remarks               *string  `json:"remarks"`
}

// RouteStopService maintains the ordered stop sequence of a route:
// insertion shifts neighbours up, removal compacts the gap, so orders
// stay dense for display and for arrival estimation.
type RouteStopService struct {
	repo repository.Repository
}

func NewRouteStopService(repo repository.Repository) *RouteStopService {
	return &RouteStopService{repo: repo}
}

// ListAll returns every stop binding across all routes, for the admin
// overview.
func (s *RouteStopService) ListAll(ctx context.Context) ([]models.RouteStop, error) {
	return s.repo.RouteStops().FindAll(ctx)
}

// List returns the route's stops ascending by order.
func (s *RouteStopService) List(ctx context.Context, routeID uint) ([]models.RouteStop, error) {
	exists, err := s.repo.Routes().ExistsByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("route not found with id: %d", routeID)
	}
	return s.repo.RouteStops().FindByRouteOrdered(ctx, routeID)
}

// Insert places a stop at the requested order. If the order is already
// occupied, every stop at or above it shifts up by one first; shift and
// insert commit or roll back together.
func (s *RouteStopService) Insert(ctx context.Context, routeID uint, req RouteStopRequest) (*models.RouteStop, error) {
	if req.StopID == 0 {
		return nil, apperr.Invalid("stop id is required")
	}
	if req.StopOrder == nil || *req.StopOrder < 1 {
		return nil, apperr.Invalid("stop order must be a positive integer")
	}
	if err := validateTimes(req); err != nil {
		return nil, err
	}

	var created *models.RouteStop
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		// Lock the route row so two concurrent inserts at the same order
		// cannot both see "occupied" and double-shift.
		route, err := r.Routes().FindByIDLocked(ctx, routeID)
		if err != nil {
			return err
		}
		if route == nil {
			return apperr.NotFound("route not found with id: %d", routeID)
		}
		stop, err := r.Stops().FindByID(ctx, req.StopID)
		if err != nil {
			return err
		}
		if stop == nil {
			return apperr.NotFound("stop not found with id: %d", req.StopID)
		}

		occupied, err := r.RouteStops().ExistsByRouteAndOrder(ctx, routeID, *req.StopOrder)
		if err != nil {
			return err
		}
		if occupied {
			if err := r.RouteStops().ShiftOrdersFrom(ctx, routeID, *req.StopOrder); err != nil {
				return err
			}
		}

		rs := &models.RouteStop{
			RouteID:               route.ID,
			StopID:                stop.ID,
			StopOrder:             *req.StopOrder,
			ArrivalTime:           req.ArrivalTime,
			DepartureTime:         req.DepartureTime,
			DistanceFromStartKm:   req.DistanceFromStartKm,
			TravelTimeFromPrevMin: req.TravelTimeFromPrevMin,
		}
		if req.Remarks != nil {
			rs.Remarks = *req.Remarks
		}
		if err := r.RouteStops().Create(ctx, rs); err != nil {
			return err
		}
		created = rs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update; nil fields are left unchanged.
// Changing StopOrder does not re-shift other rows, asymmetric with
// Insert on purpose.
func (s *RouteStopService) Update(ctx context.Context, routeStopID uint, req RouteStopRequest) (*models.RouteStop, error) {
	if req.StopID == 0 {
		return nil, apperr.Invalid("stop id is required")
	}
	if err := validateTimes(req); err != nil {
		return nil, err
	}

	rs, err := s.repo.RouteStops().FindByID(ctx, routeStopID)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, apperr.NotFound("route stop not found with id: %d", routeStopID)
	}
	stop, err := s.repo.Stops().FindByID(ctx, req.StopID)
	if err != nil {
		return nil, err
	}
	if stop == nil {
		return nil, apperr.NotFound("stop not found with id: %d", req.StopID)
	}

	rs.StopID = stop.ID
	rs.Stop = nil
	if req.StopOrder != nil {
		rs.StopOrder = *req.StopOrder
	}
	if req.ArrivalTime != nil {
		rs.ArrivalTime = req.ArrivalTime
	}
	if req.DepartureTime != nil {
		rs.DepartureTime = req.DepartureTime
	}
	if req.DistanceFromStartKm != nil {
		rs.DistanceFromStartKm = req.DistanceFromStartKm
	}
	if req.TravelTimeFromPrevMin != nil {
		rs.TravelTimeFromPrevMin = req.TravelTimeFromPrevMin
	}
	if req.Remarks != nil {
		rs.Remarks = *req.Remarks
	}

	if err := s.repo.RouteStops().Save(ctx, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Remove deletes the row and closes the gap: every remaining stop on
// the route above the removed order comes down by one. Atomic.
func (s *RouteStopService) Remove(ctx context.Context, routeStopID uint) error {
	return s.repo.Transaction(ctx, func(r repository.Repository) error {
		rs, err := r.RouteStops().FindByID(ctx, routeStopID)
		if err != nil {
			return err
		}
		if rs == nil {
			return apperr.NotFound("route stop not found with id: %d", routeStopID)
		}
		// Serialize against concurrent inserts on the same route.
		if _, err := r.Routes().FindByIDLocked(ctx, rs.RouteID); err != nil {
			return err
		}
		if err := r.RouteStops().CompactOrdersAfter(ctx, rs.RouteID, rs.StopOrder); err != nil {
			return err
		}
		return r.RouteStops().Delete(ctx, rs.ID)
	})
}
