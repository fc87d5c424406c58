package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// routeWindow is the coarse route-level rule: no two schedules on the
// same route may depart within one hour of each other. Independent of,
// and checked before, the per-driver/per-bus interval overlap rule.
const routeWindow = time.Hour

// ScheduleRequest carries a proposed (driver, bus, route, departure)
// assignment. Status is optional and defaults to SCHEDULED.
type ScheduleRequest struct {
	DriverID          uint      `json:"driver_id"`
	BusID             uint      `json:"bus_id"`
	RouteID           uint      `json:"route_id"`
	DepartureDateTime time.Time `json:"departure_date_time"`
	Status            string    `json:"status"`
}

// ScheduleService is the admission controller: it validates a request
// end to end and commits or rejects it as one unit.
type ScheduleService struct {
	repo repository.Repository
}

func NewScheduleService(repo repository.Repository) *ScheduleService {
	return &ScheduleService{repo: repo}
}

func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	return s.repo.Schedules().FindAll(ctx)
}

func (s *ScheduleService) Get(ctx context.Context, id uint) (*models.Schedule, error) {
	schedule, err := s.repo.Schedules().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperr.NotFound("schedule not found with id: %d", id)
	}
	return schedule, nil
}

// Create admits a new schedule. The whole pipeline runs inside one
// storage transaction; a failure at any step persists nothing.
func (s *ScheduleService) Create(ctx context.Context, req ScheduleRequest) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if err := s.admit(ctx, r, schedule, req); err != nil {
			return err
		}
		return r.Schedules().Create(ctx, schedule)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"driver_id":   schedule.DriverID,
		"bus_id":      schedule.BusID,
		"route_id":    schedule.RouteID,
	}).Info("schedule admitted")
	return schedule, nil
}

// Update re-runs the full admission pipeline against the stored row,
// including re-deriving the arrival estimate from the route's current
// stops, which may have changed since creation.
func (s *ScheduleService) Update(ctx context.Context, id uint, req ScheduleRequest) (*models.Schedule, error) {
	var updated *models.Schedule
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		schedule, err := r.Schedules().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if schedule == nil {
			return apperr.NotFound("schedule not found with id: %d", id)
		}
		if err := s.admit(ctx, r, schedule, req); err != nil {
			return err
		}
		if err := r.Schedules().Save(ctx, schedule); err != nil {
			return err
		}
		updated = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// admit is the one-shot validation pipeline, terminal on first failure.
// schedule.ID is zero for a new schedule, which doubles as the
// "exclude nothing" sentinel on the window and overlap queries.
func (s *ScheduleService) admit(ctx context.Context, r repository.Repository, schedule *models.Schedule, req ScheduleRequest) error {
	if req.DriverID == 0 {
		return apperr.Invalid("driver id is required")
	}
	if req.BusID == 0 {
		return apperr.Invalid("bus id is required")
	}
	if req.RouteID == 0 {
		return apperr.Invalid("route id is required")
	}
	if req.DepartureDateTime.IsZero() {
		return apperr.Invalid("departure date time is required")
	}

	// FOR UPDATE reads: concurrent admissions contending on the same
	// driver or bus serialize here rather than both passing the overlap
	// checks.
	driver, err := r.Users().FindByIDLocked(ctx, req.DriverID)
	if err != nil {
		return err
	}
	if driver == nil {
		return apperr.NotFound("driver not found with id: %d", req.DriverID)
	}
	if !driver.HasRole(models.RoleDriver) {
		return apperr.Invalid("user with id %d is not a driver", req.DriverID)
	}
	if driver.Status != models.StatusActive {
		return apperr.Invalid("driver with id %d is not active, current status: %s", req.DriverID, driver.Status)
	}

	bus, err := r.Buses().FindByIDLocked(ctx, req.BusID)
	if err != nil {
		return err
	}
	if bus == nil {
		return apperr.NotFound("bus not found with id: %d", req.BusID)
	}
	if !bus.IsActive() {
		return apperr.Invalid("bus with id %d is not active, current status: %s", req.BusID, bus.Status)
	}

	route, err := r.Routes().FindByID(ctx, req.RouteID)
	if err != nil {
		return err
	}
	if route == nil {
		return apperr.NotFound("route not found with id: %d", req.RouteID)
	}

	windowed, err := r.Schedules().FindByRouteAndDepartureWindow(ctx,
		route.ID, req.DepartureDateTime, req.DepartureDateTime.Add(routeWindow), schedule.ID)
	if err != nil {
		return err
	}
	if len(windowed) > 0 {
		return apperr.Conflict("route is already scheduled for this time period")
	}

	stops, err := r.RouteStops().FindByRouteOrdered(ctx, route.ID)
	if err != nil {
		return err
	}
	arrival := EstimateArrival(req.DepartureDateTime, stops)

	driverBusy, err := hasOverlap(ctx, r.Schedules(), repository.EntityDriver, driver.ID,
		req.DepartureDateTime, arrival, schedule.ID)
	if err != nil {
		return err
	}
	if driverBusy {
		return apperr.Conflict("driver is already scheduled for an overlapping time period")
	}

	busBusy, err := hasOverlap(ctx, r.Schedules(), repository.EntityBus, bus.ID,
		req.DepartureDateTime, arrival, schedule.ID)
	if err != nil {
		return err
	}
	if busBusy {
		return apperr.Conflict("bus is already scheduled for an overlapping time period")
	}

	schedule.DriverID = driver.ID
	schedule.BusID = bus.ID
	schedule.RouteID = route.ID
	schedule.DepartureDateTime = req.DepartureDateTime
	schedule.EstimatedArrivalDateTime = arrival
	if req.Status != "" {
		schedule.Status = req.Status
	} else if schedule.Status == "" {
		schedule.Status = models.DefaultScheduleStatus
	}
	// Drop any associations preloaded on fetch so Save does not try to
	// upsert them alongside the row.
	schedule.Driver = nil
	schedule.Bus = nil
	schedule.Route = nil
	return nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Schedules().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("schedule not found with id: %d", id)
	}
	return s.repo.Schedules().Delete(ctx, id)
}
