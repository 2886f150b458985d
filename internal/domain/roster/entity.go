package roster

import "time"

type Employee struct {
	ID               int    `json:"id"`
	Username         string `json:"username"` // raw, may be DOMAIN\user
	DisplayName      string `json:"display_name,omitempty"`
	Team             string `json:"team"`
	Active           bool   `json:"active"`
	Hidden           bool   `json:"hidden"`
	HearingAvailable bool   `json:"hearing_available"`
}

type LeaveStatus string

const (
	LeaveStatusApproved  LeaveStatus = "Approved"
	LeaveStatusPending   LeaveStatus = "Pending"
	LeaveStatusRejected  LeaveStatus = "Rejected"
	LeaveStatusCancelled LeaveStatus = "Cancelled"
)

// LeaveRecord spans whole calendar days, both ends inclusive.
type LeaveRecord struct {
	ID          int         `json:"id"`
	EmployeeKey string      `json:"employee_key"`
	ReasonID    string      `json:"reason_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Description string      `json:"description,omitempty"`
	Status      LeaveStatus `json:"status,omitempty"`
}

type CompensationRecord struct {
	ID            int       `json:"id"`
	EmployeeKey   string    `json:"employee_key"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status,omitempty"`
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = ""
	RecurrenceWeekly  RecurrencePattern = "Weekly"
	RecurrenceMonthly RecurrencePattern = "Monthly"
)

type CourtFreeRecord struct {
	ID                int               `json:"id"`
	EmployeeKey       string            `json:"employee_key"`
	StartDateTime     time.Time         `json:"start_date_time"`
	EndDateTime       time.Time         `json:"end_date_time"`
	Recurring         bool              `json:"recurring"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate *time.Time        `json:"recurrence_end_date,omitempty"`
	Description       string            `json:"description,omitempty"`
}

// Day type codes used by weekly schedule versions.
const (
	DayTypeNormal    = "Normaal"
	DayTypeMorning   = "VVO"
	DayTypeAfternoon = "VVM"
	DayTypeFullDay   = "VVD"
)

// ModifiedDayTypes are the day types that render as a schedule marker.
var ModifiedDayTypes = []string{DayTypeMorning, DayTypeAfternoon, DayTypeFullDay}

type DaySchedule struct {
	Start      string  `json:"start,omitempty"`
	End        string  `json:"end,omitempty"`
	TotalHours float64 `json:"total_hours"`
	DayType    string  `json:"day_type"`
}

// WeeklyScheduleVersion is an effective-dated weekly work-hours template.
// Veranderingsdatum takes precedence over Ingangsdatum when deriving the
// effective date.
type WeeklyScheduleVersion struct {
	ID                int         `json:"id"`
	EmployeeKey       string      `json:"employee_key"`
	Veranderingsdatum *time.Time  `json:"veranderingsdatum,omitempty"`
	Ingangsdatum      *time.Time  `json:"ingangsdatum,omitempty"`
	Monday            DaySchedule `json:"monday"`
	Tuesday           DaySchedule `json:"tuesday"`
	Wednesday         DaySchedule `json:"wednesday"`
	Thursday          DaySchedule `json:"thursday"`
	Friday            DaySchedule `json:"friday"`
}

// Day returns the schedule for a weekday. Weekends have no schedule.
func (v WeeklyScheduleVersion) Day(weekday time.Weekday) (DaySchedule, bool) {
	switch weekday {
	case time.Monday:
		return v.Monday, true
	case time.Tuesday:
		return v.Tuesday, true
	case time.Wednesday:
		return v.Wednesday, true
	case time.Thursday:
		return v.Thursday, true
	case time.Friday:
		return v.Friday, true
	}
	return DaySchedule{}, false
}

// DayIndicator maps either a day type code (matched on Title) or a
// calendar date encoded in Description to a color and pattern.
type DayIndicator struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Color       string `json:"color"`
	Pattern     string `json:"pattern,omitempty"`
	Description string `json:"description,omitempty"`
}

type LeaveReason struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Records is one refresh cycle's worth of record collections.
type Records struct {
	Leaves           []LeaveRecord           `json:"leaves"`
	Compensations    []CompensationRecord    `json:"compensations"`
	CourtFrees       []CourtFreeRecord       `json:"court_frees"`
	ScheduleVersions []WeeklyScheduleVersion `json:"schedule_versions"`
	Indicators       []DayIndicator          `json:"indicators"`
	Reasons          []LeaveReason           `json:"reasons"`
}

type EventKind string

const (
	EventKindLeave          EventKind = "leave"
	EventKindCompensation   EventKind = "compensation"
	EventKindCourtFree      EventKind = "courtFree"
	EventKindScheduleMarker EventKind = "scheduleMarker"
	EventKindDayIndicator   EventKind = "dayIndicator"
)

type ResolvedEvent struct {
	Kind        EventKind `json:"kind"`
	SourceID    int       `json:"source_id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Label       string    `json:"label,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
}

// ResolvedCell is the outcome for one employee on one day. PrimaryKind is
// empty when no record owns the cell.
type ResolvedCell struct {
	Date              time.Time            `json:"date"`
	EmployeeKey       string               `json:"employee_key"`
	Events            []ResolvedEvent      `json:"events"`
	PrimaryKind       EventKind            `json:"primary_kind,omitempty"`
	PrimarySourceID   int                  `json:"primary_source_id,omitempty"`
	PrimaryBackground string               `json:"primary_background,omitempty"`
	PrimaryLabel      string               `json:"primary_label,omitempty"`
	PrimaryPattern    string               `json:"primary_pattern,omitempty"`
	Overlays          []ResolvedEvent      `json:"overlays,omitempty"`
	IsWeekend         bool                 `json:"is_weekend"`
	IsToday           bool                 `json:"is_today"`
	Layered           *LayeredPresentation `json:"layered,omitempty"`
}

type LayeredItem struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description,omitempty"`
}

type LayeredPresentation struct {
	Count int           `json:"count"`
	Items []LayeredItem `json:"items"`
}
