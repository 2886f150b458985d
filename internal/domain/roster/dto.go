package roster

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/validator"
)

var themeValues = []string{"light", "dark"}

type GridRequest struct {
	Date            string  `json:"date"`
	View            string  `json:"view"`
	Team            *string `json:"team,omitempty"`
	IncludeHidden   bool    `json:"include_hidden"`
	IncludeInactive bool    `json:"include_inactive"`

	Theme colorutil.ThemeContext `json:"-"`
}

func (r *GridRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateFocus(r.Date, r.View)...)
	if r.Team != nil && validator.IsEmpty(*r.Team) {
		r.Team = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CellRequest struct {
	Employee string `json:"employee"`
	Date     string `json:"date"`

	Theme colorutil.ThemeContext `json:"-"`
}

func (r *CellRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.ParseCalendarDate(r.Date, time.UTC); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidFocusDate.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WindowRequest struct {
	Date string `json:"date"`
	View string `json:"view"`
}

func (r *WindowRequest) Validate() error {
	if errs := validateFocus(r.Date, r.View); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateFocus(date, view string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.ParseCalendarDate(date, time.UTC); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidFocusDate.Error(),
		})
	}

	if validator.IsEmpty(view) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view is required",
		})
	} else if !validator.IsInSlice(strings.TrimSpace(view), timewindow.GranularityValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "view",
			Message: "view must be one of: " + strings.Join(timewindow.GranularityValues, ", "),
		})
	}

	return errs
}

type ContrastRequest struct {
	Hex   string `json:"hex"`
	Theme string `json:"theme"`
}

func (r *ContrastRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Theme) {
		r.Theme = "light"
	}
	if !validator.IsInSlice(r.Theme, themeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "theme",
			Message: "theme must be one of: " + strings.Join(themeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ContrastResponse struct {
	Hex       string `json:"hex"`
	Theme     string `json:"theme"`
	Valid     bool   `json:"valid"`
	TextColor string `json:"text_color"`
}

type WindowResponse struct {
	View         string   `json:"view"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Days         []string `json:"days"`
	ODataFilter  string   `json:"odata_filter"`
	SQLPredicate string   `json:"sql_predicate"`
}

type DayResponse struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	IsWeekend bool   `json:"is_weekend"`
	IsToday   bool   `json:"is_today"`
}

type EmployeeResponse struct {
	ID               int    `json:"id"`
	Key              string `json:"key"`
	Username         string `json:"username"`
	DisplayName      string `json:"display_name,omitempty"`
	Team             string `json:"team"`
	HearingAvailable bool   `json:"hearing_available"`
}

type CellResponse struct {
	Date            string               `json:"date"`
	Events          []ResolvedEvent      `json:"events"`
	PrimaryKind     EventKind            `json:"primary_kind,omitempty"`
	PrimarySourceID int                  `json:"primary_source_id,omitempty"`
	Background      string               `json:"background,omitempty"`
	Label           string               `json:"label,omitempty"`
	Pattern         string               `json:"pattern,omitempty"`
	TextColor       string               `json:"text_color,omitempty"`
	Overlays        []ResolvedEvent      `json:"overlays,omitempty"`
	IsWeekend       bool                 `json:"is_weekend"`
	IsToday         bool                 `json:"is_today"`
	Layered         *LayeredPresentation `json:"layered,omitempty"`
}

type CellDetailResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Theme    string           `json:"theme"`
	Cell     CellResponse     `json:"cell"`
}

type GridRowResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Cells    []CellResponse   `json:"cells"`
}

type SkippedEmployeeResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

type GridResponse struct {
	PassID  string                    `json:"pass_id"`
	View    string                    `json:"view"`
	Theme   string                    `json:"theme"`
	Start   string                    `json:"start"`
	End     string                    `json:"end"`
	Days    []DayResponse             `json:"days"`
	Rows    []GridRowResponse         `json:"rows"`
	Skipped []SkippedEmployeeResponse `json:"skipped,omitempty"`
}
