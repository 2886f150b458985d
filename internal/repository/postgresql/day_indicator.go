package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/database"
)

type dayIndicatorRepositoryImpl struct {
	db *database.DB
}

func NewDayIndicatorRepository(db *database.DB) roster.DayIndicatorRepository {
	return &dayIndicatorRepositoryImpl{db: db}
}

// List implements roster.DayIndicatorRepository.
func (r *dayIndicatorRepositoryImpl) List(ctx context.Context) ([]roster.DayIndicator, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, title, COALESCE(color, ''), COALESCE(pattern, ''), COALESCE(description, '')
		FROM day_indicators
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query day indicators: %w", err)
	}
	defer rows.Close()

	var indicators []roster.DayIndicator
	for rows.Next() {
		var ind roster.DayIndicator
		if err := rows.Scan(&ind.ID, &ind.Title, &ind.Color, &ind.Pattern, &ind.Description); err != nil {
			return nil, fmt.Errorf("scan day indicator: %w", err)
		}
		indicators = append(indicators, ind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day indicators: %w", err)
	}

	return indicators, nil
}
