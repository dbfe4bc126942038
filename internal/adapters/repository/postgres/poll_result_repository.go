package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, option_id, vote_count, last_updated_at)
		SELECT o.poll_id, o.id, COUNT(v.id), NOW()
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.poll_id, o.id
		ON CONFLICT (poll_id, option_id)
		DO UPDATE SET vote_count = EXCLUDED.vote_count, last_updated_at = EXCLUDED.last_updated_at
	`
	_, err := r.db.ExecContext(ctx, query, pollID)
	if err != nil {
		return fmt.Errorf("failed to summarize votes: %w", err)
	}
	return nil
}

func (r *pollResultRepository) GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	query := `
		SELECT option_id, vote_count
		FROM poll_results
		WHERE poll_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poll stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	var total int64
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan poll result: %w", err)
		}
		counts[optionID] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poll results: %w", err)
	}

	stats := make(map[uuid.UUID]domain.PollOptionStats, len(counts))
	for optionID, count := range counts {
		var pct float64
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		stats[optionID] = domain.PollOptionStats{VoteCount: count, Percentage: pct}
	}
	return stats, nil
}
