package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type pollResultRepository struct {
	client *Client
}

func NewPollResultRepository(client *Client) ports.PollResultRepository {
	return &pollResultRepository{
		client: client,
	}
}

type resultRow struct {
	PollID        uuid.UUID `json:"poll_id"`
	OptionID      uuid.UUID `json:"option_id"`
	VoteCount     int64     `json:"vote_count"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// SummarizeVotes asks the platform to recount one poll. The aggregation
// itself is a stored function so counting stays next to the data.
func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	body := map[string]string{"p_poll_id": pollID.String()}
	err := r.client.do(ctx, request{method: http.MethodPost, path: "/rest/v1/rpc/summarize_poll_votes", body: body}, nil)
	if err != nil {
		return fmt.Errorf("failed to summarize votes: %w", translate(err, nil))
	}
	return nil
}

func (r *pollResultRepository) GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	query := url.Values{"poll_id": {"eq." + pollID.String()}}

	var rows []resultRow
	err := r.client.do(ctx, request{method: http.MethodGet, path: "/rest/v1/poll_results", query: query}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poll stats: %w", translate(err, nil))
	}

	var total int64
	for _, row := range rows {
		total += row.VoteCount
	}

	stats := make(map[uuid.UUID]domain.PollOptionStats, len(rows))
	for _, row := range rows {
		var pct float64
		if total > 0 {
			pct = float64(row.VoteCount) / float64(total) * 100
		}
		stats[row.OptionID] = domain.PollOptionStats{
			VoteCount:  row.VoteCount,
			Percentage: pct,
		}
	}
	return stats, nil
}
