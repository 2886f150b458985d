package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Slice contains check, case-insensitive
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

const (
	isoDateLayout   = "2006-01-02"
	dutchDateLayout = "02-01-2006"
)

// ParseCalendarDate accepts "YYYY-MM-DD" or "DD-MM-YYYY" and returns
// midnight of that date in loc.
func ParseCalendarDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{isoDateLayout, dutchDateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var embeddedDateRegex = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4})\b`)

// FindCalendarDate parses s as a whole, or else the single date token it
// contains. Text with no date or with several different dates yields false.
func FindCalendarDate(s string, loc *time.Location) (time.Time, bool) {
	if t, ok := ParseCalendarDate(s, loc); ok {
		return t, true
	}

	var found time.Time
	for _, token := range embeddedDateRegex.FindAllString(s, -1) {
		t, ok := ParseCalendarDate(token, loc)
		if !ok {
			continue
		}
		if !found.IsZero() && !found.Equal(t) {
			return time.Time{}, false
		}
		found = t
	}
	return found, !found.IsZero()
}
