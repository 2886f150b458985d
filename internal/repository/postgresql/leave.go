package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
)

type leaveRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewLeaveRepository(db *database.DB, loc *time.Location) roster.LeaveRepository {
	return &leaveRepositoryImpl{db: db, loc: orLocal(loc)}
}

func leaveOverlapQuery(w timewindow.Window) (string, []interface{}) {
	predicate, args := timewindow.SQLDateOverlap("start_date", "end_date", 1, w)
	query := fmt.Sprintf(`
		SELECT id, employee_key, COALESCE(reason_id, ''),
			   start_date, end_date,
			   COALESCE(description, ''), COALESCE(status, '')
		FROM leave_records
		WHERE start_date IS NOT NULL AND end_date IS NOT NULL
		  AND %s
		ORDER BY id
	`, predicate)
	return query, args
}

// ListOverlapping implements roster.LeaveRepository.
func (r *leaveRepositoryImpl) ListOverlapping(ctx context.Context, window timewindow.Window) ([]roster.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)
	query, args := leaveOverlapQuery(window)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leave records: %w", err)
	}
	defer rows.Close()

	var leaves []roster.LeaveRecord
	for rows.Next() {
		var l roster.LeaveRecord
		var status string
		if err := rows.Scan(
			&l.ID, &l.EmployeeKey, &l.ReasonID,
			&l.StartDate, &l.EndDate,
			&l.Description, &status,
		); err != nil {
			return nil, fmt.Errorf("scan leave record: %w", err)
		}
		l.StartDate = calendarDate(l.StartDate, r.loc)
		l.EndDate = calendarDate(l.EndDate, r.loc)
		l.Status = roster.LeaveStatus(status)
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave records: %w", err)
	}

	logger.From(ctx).Debug("leave records loaded", "count", len(leaves))
	return leaves, nil
}

// ListReasons implements roster.LeaveRepository.
func (r *leaveRepositoryImpl) ListReasons(ctx context.Context) ([]roster.LeaveReason, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, title, COALESCE(color, '')
		FROM leave_reasons
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query leave reasons: %w", err)
	}
	defer rows.Close()

	var reasons []roster.LeaveReason
	for rows.Next() {
		var reason roster.LeaveReason
		if err := rows.Scan(&reason.ID, &reason.Title, &reason.Color); err != nil {
			return nil, fmt.Errorf("scan leave reason: %w", err)
		}
		reasons = append(reasons, reason)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave reasons: %w", err)
	}

	return reasons, nil
}
