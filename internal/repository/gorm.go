package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bus_logistics/internal/apperr"
)

// Gorm is the Postgres-backed repository.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Users() UserStore { return gormUsers{g.db} }
func (g *Gorm) Roles() RoleStore { return gormRoles{g.db} }
func (g *Gorm) Buses() BusStore { return gormBuses{g.db} }
func (g *Gorm) Stops() StopStore { return gormStops{g.db} }
func (g *Gorm) Routes() RouteStore { return gormRoutes{g.db} }
func (g *Gorm) RouteStops() RouteStopStore { return gormRouteStops{g.db} }
func (g *Gorm) Schedules() ScheduleStore { return gormSchedules{g.db} }

func (g *Gorm) Transaction(ctx context.Context, fn func(Repository) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

// uniqueViolation is the Postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// translateWrite folds duplicate-key failures into the conflict
// taxonomy so constraint races surface the same way pre-checks do.
func translateWrite(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("duplicate key value violates unique constraint %q", pgErr.ConstraintName)
	}
	return err
}

// notFoundToNil converts gorm's record-not-found into the (nil, nil)
// contract the store interfaces promise.
func notFoundToNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
