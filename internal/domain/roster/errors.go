package roster

import "errors"

var (
	// Request Errors
	ErrInvalidFocusDate   = errors.New("invalid date format, use YYYY-MM-DD or DD-MM-YYYY")
	ErrInvalidGranularity = errors.New("view must be 'month' or 'week'")

	// Lookup Errors
	ErrEmployeeNotFound = errors.New("employee not found")

	// Load Errors
	ErrSnapshotUnavailable = errors.New("roster records could not be loaded")
)
