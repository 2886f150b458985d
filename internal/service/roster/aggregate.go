package roster

import "github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"

// Aggregate packages a cell's events for secondary disclosure. Cells with
// at most one event need none and yield nil. Items keep evaluation order.
func Aggregate(cell roster.ResolvedCell) *roster.LayeredPresentation {
	if len(cell.Events) <= 1 {
		return nil
	}

	items := make([]roster.LayeredItem, 0, len(cell.Events))
	for _, e := range cell.Events {
		items = append(items, roster.LayeredItem{
			Title:       e.Title,
			Subtitle:    e.Subtitle,
			Description: e.Description,
		})
	}
	return &roster.LayeredPresentation{Count: len(cell.Events), Items: items}
}
