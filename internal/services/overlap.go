package services

import (
	"context"
	"time"

	"bus_logistics/internal/repository"
)

// IntervalsOverlap reports whether the half-open intervals [s1, e1) and
// [s2, e2) share any instant. Back-to-back trips, where one ends exactly
// when the other begins, do not overlap.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// hasOverlap reports whether the driver or bus already holds a
// commitment colliding with [start, end). A driver and a bus are
// independent resources, so admission runs this once for each.
// excludeID skips the schedule being updated; pass
// repository.NoExclusion for new schedules.
func hasOverlap(ctx context.Context, schedules repository.ScheduleStore, entity repository.ScheduleEntity, entityID uint, start, end time.Time, excludeID uint) (bool, error) {
	existing, err := schedules.FindOverlapping(ctx, entity, entityID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}
