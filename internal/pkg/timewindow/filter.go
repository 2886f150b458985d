package timewindow

import (
	"fmt"
	"time"
)

const odataDateTimeLayout = "2006-01-02T15:04:05Z"

// ODataFilter builds a list-query $filter fragment selecting items whose
// [startField, endField] interval overlaps the window. Values are sent in UTC.
func ODataFilter(startField, endField string, w Window) string {
	return fmt.Sprintf("(%s le datetime'%s') and (%s ge datetime'%s')",
		startField, w.End.UTC().Format(odataDateTimeLayout),
		endField, w.Start.UTC().Format(odataDateTimeLayout),
	)
}

// SQLOverlap builds a positional-argument predicate equivalent to Overlaps.
// firstArg is the placeholder number of the first argument, so the fragment
// can be appended to queries that already bind parameters.
func SQLOverlap(startExpr, endExpr string, firstArg int, w Window) (string, []interface{}) {
	clause := fmt.Sprintf("%s <= $%d AND %s >= $%d", startExpr, firstArg, endExpr, firstArg+1)
	return clause, []interface{}{w.End, w.Start}
}

// SQLDateOverlap is SQLOverlap for DATE columns. The window bounds are bound
// as calendar dates in the window's location, so the session time zone
// never shifts them.
func SQLDateOverlap(startCol, endCol string, firstArg int, w Window) (string, []interface{}) {
	clause := fmt.Sprintf("%s <= $%d::date AND %s >= $%d::date", startCol, firstArg, endCol, firstArg+1)
	return clause, []interface{}{w.End.Format(time.DateOnly), w.Start.Format(time.DateOnly)}
}

// Describe renders the window as "YYYY-MM-DD..YYYY-MM-DD".
func (w Window) Describe() string {
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}
