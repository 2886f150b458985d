package roster

import (
	"context"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

type EmployeeFilter struct {
	Team            *string
	IncludeHidden   bool
	IncludeInactive bool
}

type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
}

type LeaveRepository interface {
	ListOverlapping(ctx context.Context, window timewindow.Window) ([]LeaveRecord, error)
	ListReasons(ctx context.Context) ([]LeaveReason, error)
}

type CompensationRepository interface {
	ListOverlapping(ctx context.Context, window timewindow.Window) ([]CompensationRecord, error)
}

type CourtFreeRepository interface {
	ListOverlapping(ctx context.Context, window timewindow.Window) ([]CourtFreeRecord, error)
}

type WeeklyScheduleRepository interface {
	// ListEffectiveBefore returns every version that may be active on or
	// before the given day, including ones without an effective date.
	ListEffectiveBefore(ctx context.Context, day time.Time) ([]WeeklyScheduleVersion, error)
}

type DayIndicatorRepository interface {
	List(ctx context.Context) ([]DayIndicator, error)
}
