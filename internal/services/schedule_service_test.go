package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

type scheduleFixture struct {
	repo    *repository.Memory
	driver  *models.User
	bus     *models.Bus
	route   *models.Route
	baseDep time.Time
}

// newScheduleFixture seeds one active driver, one active bus and one
// route whose stops estimate to a 65 minute trip (20 + 30 travel, 15
// buffer).
func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	driverRole := &models.Role{Name: models.RoleDriver}
	if err := repo.Roles().Create(ctx, driverRole); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	f := &scheduleFixture{
		repo:    repo,
		baseDep: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	f.driver = f.newDriver(t, "wanjiku", models.StatusActive, true)
	f.bus = f.newBus(t, "KBS-001", "ACTIVE")
	f.route = f.newRoute(t, "CBD - Westlands", "R-101")

	for i, travel := range []*int{nil, intPtr(20), nil} {
		stop := &models.Stop{Name: "Stop " + string(rune('A'+i))}
		if err := repo.Stops().Create(ctx, stop); err != nil {
			t.Fatalf("seed stop: %v", err)
		}
		rs := &models.RouteStop{RouteID: f.route.ID, StopID: stop.ID, StopOrder: i + 1, TravelTimeFromPrevMin: travel}
		if err := repo.RouteStops().Create(ctx, rs); err != nil {
			t.Fatalf("seed route stop: %v", err)
		}
	}
	return f
}

func (f *scheduleFixture) newDriver(t *testing.T, username string, status models.EmployeeStatus, isDriver bool) *models.User {
	t.Helper()
	ctx := context.Background()
	user := &models.User{
		EmployeeID: "EMP-" + username,
		Username:   username,
		Email:      username + "@example.com",
		Status:     status,
	}
	if isDriver {
		role, err := f.repo.Roles().FindByName(ctx, models.RoleDriver)
		if err != nil || role == nil {
			t.Fatalf("driver role missing: %v", err)
		}
		user.Roles = []models.Role{*role}
	}
	if err := f.repo.Users().Create(ctx, user); err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return user
}

func (f *scheduleFixture) newBus(t *testing.T, number, status string) *models.Bus {
	t.Helper()
	bus := &models.Bus{BusNumber: number, PlateNumber: "K" + number, Status: status}
	if err := f.repo.Buses().Create(context.Background(), bus); err != nil {
		t.Fatalf("seed bus: %v", err)
	}
	return bus
}

func (f *scheduleFixture) newRoute(t *testing.T, name, code string) *models.Route {
	t.Helper()
	route := &models.Route{Name: name, RouteCode: code, Direction: "OUTBOUND"}
	if err := f.repo.Routes().Create(context.Background(), route); err != nil {
		t.Fatalf("seed route: %v", err)
	}
	return route
}

func (f *scheduleFixture) request(driverID, busID, routeID uint, dep time.Time) ScheduleRequest {
	return ScheduleRequest{DriverID: driverID, BusID: busID, RouteID: routeID, DepartureDateTime: dep}
}

func mustConflict(t *testing.T, err error, substr string) {
	t.Helper()
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict mentioning %q, got %v", substr, err)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("expected conflict mentioning %q, got %q", substr, err.Error())
	}
}

func TestScheduleCreateStoresEstimatedInterval(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := f.baseDep.Add(65 * time.Minute); !created.EstimatedArrivalDateTime.Equal(want) {
		t.Fatalf("expected arrival %v, got %v", want, created.EstimatedArrivalDateTime)
	}
	if created.Status != models.DefaultScheduleStatus {
		t.Fatalf("expected status %q, got %q", models.DefaultScheduleStatus, created.Status)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 stored schedule, got %d", len(all))
	}
}

func TestScheduleCreateMissingFields(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	cases := []ScheduleRequest{
		{BusID: f.bus.ID, RouteID: f.route.ID, DepartureDateTime: f.baseDep},
		{DriverID: f.driver.ID, RouteID: f.route.ID, DepartureDateTime: f.baseDep},
		{DriverID: f.driver.ID, BusID: f.bus.ID, DepartureDateTime: f.baseDep},
		{DriverID: f.driver.ID, BusID: f.bus.ID, RouteID: f.route.ID},
	}
	for i, req := range cases {
		if _, err := svc.Create(ctx, req); !apperr.IsInvalid(err) {
			t.Fatalf("case %d: expected invalid, got %v", i, err)
		}
	}
}

func TestScheduleCreateRejectsIneligibleDriver(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.request(999, f.bus.ID, f.route.ID, f.baseDep)); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown driver, got %v", err)
	}

	clerk := f.newDriver(t, "otieno", models.StatusActive, false)
	if _, err := svc.Create(ctx, f.request(clerk.ID, f.bus.ID, f.route.ID, f.baseDep)); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for non-driver, got %v", err)
	}

	suspended := f.newDriver(t, "kamau", models.StatusSuspended, true)
	if _, err := svc.Create(ctx, f.request(suspended.ID, f.bus.ID, f.route.ID, f.baseDep)); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for suspended driver, got %v", err)
	}
}

func TestScheduleCreateRejectsIneligibleBus(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.request(f.driver.ID, 999, f.route.ID, f.baseDep)); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown bus, got %v", err)
	}

	parked := f.newBus(t, "KBS-002", "MAINTENANCE")
	if _, err := svc.Create(ctx, f.request(f.driver.ID, parked.ID, f.route.ID, f.baseDep)); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for inactive bus, got %v", err)
	}

	if _, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, 999, f.baseDep)); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown route, got %v", err)
	}
}

func TestScheduleCreateRouteWindowConflict(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Different driver and bus, same route, departing half an hour
	// earlier: the existing departure falls inside the new one-hour
	// window.
	driver2 := f.newDriver(t, "njeri", models.StatusActive, true)
	bus2 := f.newBus(t, "KBS-003", "ACTIVE")
	_, err := svc.Create(ctx, f.request(driver2.ID, bus2.ID, f.route.ID, f.baseDep.Add(-30*time.Minute)))
	mustConflict(t, err, "route")
}

func TestScheduleCreateDriverOverlapConflict(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same driver on a different bus and route while the first trip is
	// still running.
	bus2 := f.newBus(t, "KBS-003", "ACTIVE")
	route2 := f.newRoute(t, "CBD - Karen", "R-202")
	_, err := svc.Create(ctx, f.request(f.driver.ID, bus2.ID, route2.ID, f.baseDep.Add(30*time.Minute)))
	mustConflict(t, err, "driver")

	// A failed admission leaves nothing behind.
	all, _ := svc.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 stored schedule after rejection, got %d", len(all))
	}
}

func TestScheduleCreateBusOverlapConflict(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep)); err != nil {
		t.Fatalf("create: %v", err)
	}

	driver2 := f.newDriver(t, "njeri", models.StatusActive, true)
	route2 := f.newRoute(t, "CBD - Karen", "R-202")
	_, err := svc.Create(ctx, f.request(driver2.ID, f.bus.ID, route2.ID, f.baseDep.Add(30*time.Minute)))
	mustConflict(t, err, "bus")
}

func TestScheduleCreateBackToBackAllowed(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same driver and bus on the return leg, departing the instant the
	// outbound trip arrives.
	route2 := f.newRoute(t, "Westlands - CBD", "R-102")
	if _, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, route2.ID, first.EstimatedArrivalDateTime)); err != nil {
		t.Fatalf("expected back-to-back admission, got %v", err)
	}
}

func TestScheduleUpdateExcludesSelfAndRederivesArrival(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	rsSvc := NewRouteStopService(f.repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-submitting the schedule unchanged must not conflict with
	// itself on either the route window or the overlap checks.
	if _, err := svc.Update(ctx, created.ID, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep)); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	// Slow down the middle leg and update again: the stored arrival
	// follows the route's current stops.
	stops, _ := f.repo.RouteStops().FindByRouteOrdered(ctx, f.route.ID)
	if _, err := rsSvc.Update(ctx, stops[1].ID, RouteStopRequest{StopID: stops[1].StopID, TravelTimeFromPrevMin: intPtr(50)}); err != nil {
		t.Fatalf("update route stop: %v", err)
	}
	updated, err := svc.Update(ctx, created.ID, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if want := f.baseDep.Add(95 * time.Minute); !updated.EstimatedArrivalDateTime.Equal(want) {
		t.Fatalf("expected rederived arrival %v, got %v", want, updated.EstimatedArrivalDateTime)
	}
}

func TestScheduleGetAndDelete(t *testing.T) {
	f := newScheduleFixture(t)
	svc := NewScheduleService(f.repo)
	ctx := context.Background()

	if _, err := svc.Get(ctx, 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on get, got %v", err)
	}
	if err := svc.Delete(ctx, 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on delete, got %v", err)
	}

	created, err := svc.Create(ctx, f.request(f.driver.ID, f.bus.ID, f.route.ID, f.baseDep))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
