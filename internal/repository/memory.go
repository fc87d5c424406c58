package repository

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"bus_logistics/internal/models"
)

// Memory is an in-process Repository used by service tests, in the same
// spirit as a mock distance provider living next to the real adapter.
// It mirrors the Postgres implementation's semantics where the services
// depend on them: zero-id sentinel exclusion, half-open overlap,
// inclusive departure window, rollback on transaction error.
type Memory struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID     uint
	users      map[uint]models.User
	roles      map[uint]models.Role
	buses      map[uint]models.Bus
	stops      map[uint]models.Stop
	routes     map[uint]models.Route
	routeStops map[uint]models.RouteStop
	schedules  map[uint]models.Schedule
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[uint]models.User),
		roles:      make(map[uint]models.Role),
		buses:      make(map[uint]models.Bus),
		stops:      make(map[uint]models.Stop),
		routes:     make(map[uint]models.Route),
		routeStops: make(map[uint]models.RouteStop),
		schedules:  make(map[uint]models.Schedule),
	}
}

func (m *Memory) Users() UserStore { return memUsers{m} }
func (m *Memory) Roles() RoleStore { return memRoles{m} }
func (m *Memory) Buses() BusStore { return memBuses{m} }
func (m *Memory) Stops() StopStore { return memStops{m} }
func (m *Memory) Routes() RouteStore { return memRoutes{m} }
func (m *Memory) RouteStops() RouteStopStore { return memRouteStops{m} }
func (m *Memory) Schedules() ScheduleStore { return memSchedules{m} }

// Transaction serializes callers and restores the pre-transaction
// snapshot when fn fails, so a failed admission leaves no partial rows.
func (m *Memory) Transaction(ctx context.Context, fn func(Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapUsers := maps.Clone(m.users)
	snapRoles := maps.Clone(m.roles)
	snapBuses := maps.Clone(m.buses)
	snapStops := maps.Clone(m.stops)
	snapRoutes := maps.Clone(m.routes)
	snapRouteStops := maps.Clone(m.routeStops)
	snapSchedules := maps.Clone(m.schedules)
	snapNextID := m.nextID
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.users = snapUsers
		m.roles = snapRoles
		m.buses = snapBuses
		m.stops = snapStops
		m.routes = snapRoutes
		m.routeStops = snapRouteStops
		m.schedules = snapSchedules
		m.nextID = snapNextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) allocID() uint {
	m.nextID++
	return m.nextID
}

type memUsers struct{ m *Memory }

func (s memUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s memUsers) FindByIDLocked(ctx context.Context, id uint) (*models.User, error) {
	return s.FindByID(ctx, id)
}

func (s memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s memUsers) FindAll(ctx context.Context) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.User, 0, len(s.m.users))
	for _, u := range s.m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memUsers) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.users[id]
	return ok, nil
}

func (s memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s memUsers) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (s memUsers) Create(ctx context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.m.allocID()
	}
	s.m.users[user.ID] = *user
	return nil
}

func (s memUsers) Save(ctx context.Context, user *models.User) error {
	return s.Create(ctx, user)
}

func (s memUsers) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.users, id)
	return nil
}

type memRoles struct{ m *Memory }

func (s memRoles) FindByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.roles {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, nil
}

func (s memRoles) Create(ctx context.Context, role *models.Role) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if role.ID == 0 {
		role.ID = s.m.allocID()
	}
	s.m.roles[role.ID] = *role
	return nil
}

type memBuses struct{ m *Memory }

func (s memBuses) FindByID(ctx context.Context, id uint) (*models.Bus, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if b, ok := s.m.buses[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s memBuses) FindByIDLocked(ctx context.Context, id uint) (*models.Bus, error) {
	return s.FindByID(ctx, id)
}

func (s memBuses) FindAll(ctx context.Context) ([]models.Bus, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Bus, 0, len(s.m.buses))
	for _, b := range s.m.buses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memBuses) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.buses[id]
	return ok, nil
}

func (s memBuses) ExistsByBusNumber(ctx context.Context, busNumber string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, b := range s.m.buses {
		if b.BusNumber == busNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s memBuses) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, b := range s.m.buses {
		if b.PlateNumber == plateNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s memBuses) Create(ctx context.Context, bus *models.Bus) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if bus.ID == 0 {
		bus.ID = s.m.allocID()
	}
	s.m.buses[bus.ID] = *bus
	return nil
}

func (s memBuses) Save(ctx context.Context, bus *models.Bus) error {
	return s.Create(ctx, bus)
}

func (s memBuses) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.buses, id)
	return nil
}

type memStops struct{ m *Memory }

func (s memStops) FindByID(ctx context.Context, id uint) (*models.Stop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if st, ok := s.m.stops[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (s memStops) FindAll(ctx context.Context) ([]models.Stop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Stop, 0, len(s.m.stops))
	for _, st := range s.m.stops {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memStops) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.stops[id]
	return ok, nil
}

func (s memStops) ExistsByName(ctx context.Context, name string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.stops {
		if st.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s memStops) Create(ctx context.Context, stop *models.Stop) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if stop.ID == 0 {
		stop.ID = s.m.allocID()
	}
	s.m.stops[stop.ID] = *stop
	return nil
}

func (s memStops) Save(ctx context.Context, stop *models.Stop) error {
	return s.Create(ctx, stop)
}

func (s memStops) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.stops, id)
	return nil
}

type memRoutes struct{ m *Memory }

func (s memRoutes) FindByID(ctx context.Context, id uint) (*models.Route, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if r, ok := s.m.routes[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s memRoutes) FindByIDLocked(ctx context.Context, id uint) (*models.Route, error) {
	return s.FindByID(ctx, id)
}

func (s memRoutes) FindAll(ctx context.Context) ([]models.Route, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Route, 0, len(s.m.routes))
	for _, r := range s.m.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memRoutes) SearchByName(ctx context.Context, name string) ([]models.Route, error) {
	all, _ := s.FindAll(ctx)
	out := make([]models.Route, 0, len(all))
	for _, r := range all {
		if containsFold(r.Name, name) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s memRoutes) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.routes[id]
	return ok, nil
}

func (s memRoutes) ExistsByRouteCode(ctx context.Context, code string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.routes {
		if r.RouteCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (s memRoutes) ExistsByNameAndDirection(ctx context.Context, name, direction string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.routes {
		if r.Name == name && r.Direction == direction {
			return true, nil
		}
	}
	return false, nil
}

func (s memRoutes) Create(ctx context.Context, route *models.Route) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if route.ID == 0 {
		route.ID = s.m.allocID()
	}
	s.m.routes[route.ID] = *route
	return nil
}

func (s memRoutes) Save(ctx context.Context, route *models.Route) error {
	return s.Create(ctx, route)
}

func (s memRoutes) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for rsID, rs := range s.m.routeStops {
		if rs.RouteID == id {
			delete(s.m.routeStops, rsID)
		}
	}
	delete(s.m.routes, id)
	return nil
}

type memRouteStops struct{ m *Memory }

func (s memRouteStops) FindByID(ctx context.Context, id uint) (*models.RouteStop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if rs, ok := s.m.routeStops[id]; ok {
		return &rs, nil
	}
	return nil, nil
}

func (s memRouteStops) FindByRouteOrdered(ctx context.Context, routeID uint) ([]models.RouteStop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.RouteStop
	for _, rs := range s.m.routeStops {
		if rs.RouteID == routeID {
			if stop, ok := s.m.stops[rs.StopID]; ok {
				st := stop
				rs.Stop = &st
			}
			out = append(out, rs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopOrder < out[j].StopOrder })
	return out, nil
}

func (s memRouteStops) FindAll(ctx context.Context) ([]models.RouteStop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.RouteStop, 0, len(s.m.routeStops))
	for _, rs := range s.m.routeStops {
		if stop, ok := s.m.stops[rs.StopID]; ok {
			st := stop
			rs.Stop = &st
		}
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RouteID != out[j].RouteID {
			return out[i].RouteID < out[j].RouteID
		}
		return out[i].StopOrder < out[j].StopOrder
	})
	return out, nil
}

func (s memRouteStops) ExistsByRouteAndOrder(ctx context.Context, routeID uint, order int) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, rs := range s.m.routeStops {
		if rs.RouteID == routeID && rs.StopOrder == order {
			return true, nil
		}
	}
	return false, nil
}

func (s memRouteStops) ShiftOrdersFrom(ctx context.Context, routeID uint, from int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, rs := range s.m.routeStops {
		if rs.RouteID == routeID && rs.StopOrder >= from {
			rs.StopOrder++
			s.m.routeStops[id] = rs
		}
	}
	return nil
}

func (s memRouteStops) CompactOrdersAfter(ctx context.Context, routeID uint, after int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, rs := range s.m.routeStops {
		if rs.RouteID == routeID && rs.StopOrder > after {
			rs.StopOrder--
			s.m.routeStops[id] = rs
		}
	}
	return nil
}

func (s memRouteStops) Create(ctx context.Context, rs *models.RouteStop) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if rs.ID == 0 {
		rs.ID = s.m.allocID()
	}
	s.m.routeStops[rs.ID] = *rs
	return nil
}

func (s memRouteStops) Save(ctx context.Context, rs *models.RouteStop) error {
	return s.Create(ctx, rs)
}

func (s memRouteStops) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.routeStops, id)
	return nil
}

type memSchedules struct{ m *Memory }

func (s memSchedules) FindByID(ctx context.Context, id uint) (*models.Schedule, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if sc, ok := s.m.schedules[id]; ok {
		return &sc, nil
	}
	return nil, nil
}

func (s memSchedules) FindAll(ctx context.Context) ([]models.Schedule, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Schedule, 0, len(s.m.schedules))
	for _, sc := range s.m.schedules {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DepartureDateTime.Before(out[j].DepartureDateTime)
	})
	return out, nil
}

func (s memSchedules) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.schedules[id]
	return ok, nil
}

func (s memSchedules) FindOverlapping(ctx context.Context, entity ScheduleEntity, entityID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Schedule
	for _, sc := range s.m.schedules {
		if sc.ID == excludeID {
			continue
		}
		owner := sc.DriverID
		if entity == EntityBus {
			owner = sc.BusID
		}
		if owner != entityID {
			continue
		}
		if sc.DepartureDateTime.Before(end) && sc.EstimatedArrivalDateTime.After(start) {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s memSchedules) FindByRouteAndDepartureWindow(ctx context.Context, routeID uint, start, end time.Time, excludeID uint) ([]models.Schedule, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Schedule
	for _, sc := range s.m.schedules {
		if sc.ID == excludeID || sc.RouteID != routeID {
			continue
		}
		if !sc.DepartureDateTime.Before(start) && !sc.DepartureDateTime.After(end) {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s memSchedules) Create(ctx context.Context, schedule *models.Schedule) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if schedule.ID == 0 {
		schedule.ID = s.m.allocID()
	}
	s.m.schedules[schedule.ID] = *schedule
	return nil
}

func (s memSchedules) Save(ctx context.Context, schedule *models.Schedule) error {
	return s.Create(ctx, schedule)
}

func (s memSchedules) Delete(ctx context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.schedules, id)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
