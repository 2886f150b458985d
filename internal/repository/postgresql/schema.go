package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the record tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := GetQuerier(ctx, db).Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// calendarDate rebuilds a DATE column value as midnight in loc. pgx returns
// DATE values at UTC midnight, which would shift a day west of UTC.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	return timewindow.CalendarDate(t, loc)
}

func calendarDatePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	d := calendarDate(*t, loc)
	return &d
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
