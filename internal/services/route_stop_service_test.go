package services

import (
	"context"
	"testing"

	"bus_logistics/internal/apperr"
	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// seedRouteWithStops creates a route plus n stops bound at orders 1..n
// and returns the repo, the route id and the stop ids.
func seedRouteWithStops(t *testing.T, n int) (*repository.Memory, uint, []uint) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	route := &models.Route{Name: "CBD - Westlands", RouteCode: "R-101", Direction: "OUTBOUND"}
	if err := repo.Routes().Create(ctx, route); err != nil {
		t.Fatalf("seed route: %v", err)
	}

	stopIDs := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		stop := &models.Stop{Name: "Stop " + string(rune('A'+i)), Latitude: -1.28, Longitude: 36.82}
		if err := repo.Stops().Create(ctx, stop); err != nil {
			t.Fatalf("seed stop: %v", err)
		}
		stopIDs = append(stopIDs, stop.ID)
		rs := &models.RouteStop{RouteID: route.ID, StopID: stop.ID, StopOrder: i + 1}
		if err := repo.RouteStops().Create(ctx, rs); err != nil {
			t.Fatalf("seed route stop: %v", err)
		}
	}
	return repo, route.ID, stopIDs
}

func orders(t *testing.T, repo repository.Repository, routeID uint) []int {
	t.Helper()
	stops, err := repo.RouteStops().FindByRouteOrdered(context.Background(), routeID)
	if err != nil {
		t.Fatalf("list route stops: %v", err)
	}
	out := make([]int, 0, len(stops))
	for _, rs := range stops {
		out = append(out, rs.StopOrder)
	}
	return out
}

func assertOrders(t *testing.T, got []int, want ...int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected orders %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected orders %v, got %v", want, got)
		}
	}
}

func TestRouteStopListAllSpansRoutes(t *testing.T) {
	repo, routeID, _ := seedRouteWithStops(t, 2)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	route2 := &models.Route{Name: "CBD - Karen", RouteCode: "R-202", Direction: "OUTBOUND"}
	if err := repo.Routes().Create(ctx, route2); err != nil {
		t.Fatalf("seed route: %v", err)
	}
	stop := &models.Stop{Name: "Karen Terminus"}
	if err := repo.Stops().Create(ctx, stop); err != nil {
		t.Fatalf("seed stop: %v", err)
	}
	if err := repo.RouteStops().Create(ctx, &models.RouteStop{RouteID: route2.ID, StopID: stop.ID, StopOrder: 1}); err != nil {
		t.Fatalf("seed route stop: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 bindings across routes, got %d", len(all))
	}
	if all[0].RouteID != routeID || all[2].RouteID != route2.ID {
		t.Fatalf("expected grouping by route, got %+v", all)
	}
}

func TestRouteStopListUnknownRoute(t *testing.T) {
	svc := NewRouteStopService(repository.NewMemory())

	_, err := svc.List(context.Background(), 42)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRouteStopInsertAtOccupiedOrderShifts(t *testing.T) {
	repo, routeID, _ := seedRouteWithStops(t, 3)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	newStop := &models.Stop{Name: "Museum Hill"}
	if err := repo.Stops().Create(ctx, newStop); err != nil {
		t.Fatalf("seed stop: %v", err)
	}

	created, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: newStop.ID, StopOrder: intPtr(2)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.StopOrder != 2 {
		t.Fatalf("expected inserted order 2, got %d", created.StopOrder)
	}

	assertOrders(t, orders(t, repo, routeID), 1, 2, 3, 4)

	// The new stop holds order 2, the previous occupant moved to 3.
	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)
	if stops[1].StopID != newStop.ID {
		t.Fatalf("expected stop %d at order 2, got %d", newStop.ID, stops[1].StopID)
	}
}

func TestRouteStopInsertAtFreeOrderDoesNotShift(t *testing.T) {
	repo, routeID, stopIDs := seedRouteWithStops(t, 2)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	newStop := &models.Stop{Name: "Terminus"}
	if err := repo.Stops().Create(ctx, newStop); err != nil {
		t.Fatalf("seed stop: %v", err)
	}

	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: newStop.ID, StopOrder: intPtr(3)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	assertOrders(t, orders(t, repo, routeID), 1, 2, 3)

	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)
	if stops[0].StopID != stopIDs[0] || stops[1].StopID != stopIDs[1] {
		t.Fatalf("existing stops moved unexpectedly: %+v", stops)
	}
}

func TestRouteStopInsertValidation(t *testing.T) {
	repo, routeID, stopIDs := seedRouteWithStops(t, 1)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopOrder: intPtr(1)}); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for missing stop id, got %v", err)
	}
	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: stopIDs[0]}); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for missing order, got %v", err)
	}
	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: stopIDs[0], StopOrder: intPtr(0)}); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for order 0, got %v", err)
	}
	badTime := "25:99"
	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: stopIDs[0], StopOrder: intPtr(1), ArrivalTime: &badTime}); !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid for malformed time, got %v", err)
	}
	if _, err := svc.Insert(ctx, 999, RouteStopRequest{StopID: stopIDs[0], StopOrder: intPtr(1)}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown route, got %v", err)
	}
	if _, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: 999, StopOrder: intPtr(1)}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown stop, got %v", err)
	}
}

func TestRouteStopRemoveCompactsOrders(t *testing.T) {
	repo, routeID, _ := seedRouteWithStops(t, 4)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)
	if err := svc.Remove(ctx, stops[1].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	assertOrders(t, orders(t, repo, routeID), 1, 2, 3)
}

func TestRouteStopInsertThenRemoveRestoresSequence(t *testing.T) {
	repo, routeID, stopIDs := seedRouteWithStops(t, 3)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	extra := &models.Stop{Name: "Detour"}
	if err := repo.Stops().Create(ctx, extra); err != nil {
		t.Fatalf("seed stop: %v", err)
	}
	created, err := svc.Insert(ctx, routeID, RouteStopRequest{StopID: extra.ID, StopOrder: intPtr(2)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := svc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)
	assertOrders(t, orders(t, repo, routeID), 1, 2, 3)
	for i, rs := range stops {
		if rs.StopID != stopIDs[i] {
			t.Fatalf("expected original stop %d at position %d, got %d", stopIDs[i], i, rs.StopID)
		}
	}
}

func TestRouteStopUpdateDoesNotReshift(t *testing.T) {
	repo, routeID, stopIDs := seedRouteWithStops(t, 3)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)

	// Move the last stop onto an occupied order; the occupant stays put.
	updated, err := svc.Update(ctx, stops[2].ID, RouteStopRequest{StopID: stopIDs[2], StopOrder: intPtr(1)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StopOrder != 1 {
		t.Fatalf("expected updated order 1, got %d", updated.StopOrder)
	}
	assertOrders(t, orders(t, repo, routeID), 1, 1, 2)
}

func TestRouteStopUpdatePartialFields(t *testing.T) {
	repo, routeID, stopIDs := seedRouteWithStops(t, 2)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	stops, _ := repo.RouteStops().FindByRouteOrdered(ctx, routeID)
	travel := 25
	if _, err := svc.Update(ctx, stops[1].ID, RouteStopRequest{StopID: stopIDs[1], TravelTimeFromPrevMin: &travel}); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := repo.RouteStops().FindByID(ctx, stops[1].ID)
	if after.TravelTimeFromPrevMin == nil || *after.TravelTimeFromPrevMin != 25 {
		t.Fatalf("expected travel time 25, got %+v", after.TravelTimeFromPrevMin)
	}
	if after.StopOrder != 2 {
		t.Fatalf("untouched order changed: %d", after.StopOrder)
	}
}

func TestRouteStopUpdateAndRemoveUnknown(t *testing.T) {
	repo, _, stopIDs := seedRouteWithStops(t, 1)
	svc := NewRouteStopService(repo)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 999, RouteStopRequest{StopID: stopIDs[0]}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := svc.Remove(ctx, 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on remove, got %v", err)
	}
}
