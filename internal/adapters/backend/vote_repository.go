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

type voteRepository struct {
	client *Client
}

func NewVoteRepository(client *Client) ports.VoteRepository {
	return &voteRepository{
		client: client,
	}
}

type voteRow struct {
	ID        uuid.UUID  `json:"id"`
	PollID    uuid.UUID  `json:"poll_id"`
	OptionID  uuid.UUID  `json:"option_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	VoterIP   string     `json:"voter_ip"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	row := voteRow{
		ID:       vote.ID,
		PollID:   vote.PollID,
		OptionID: vote.OptionID,
		UserID:   vote.UserID,
		VoterIP:  vote.VoterIP,
	}
	err := r.client.do(ctx, request{method: http.MethodPost, path: "/rest/v1/votes", body: []voteRow{row}}, nil)
	if err != nil {
		// the partial unique indexes turn a double vote into a conflict
		return fmt.Errorf("failed to save vote: %w", translate(err, domain.ErrAlreadyVoted))
	}
	return nil
}

func (r *voteRepository) DeleteVote(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error {
	err := r.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/votes",
		query:  voterQuery(pollID, userID, voterIP),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", translate(err, nil))
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) (bool, error) {
	query := voterQuery(pollID, userID, voterIP)
	query.Set("select", "id")
	query.Set("limit", "1")

	var rows []voteRow
	err := r.client.do(ctx, request{method: http.MethodGet, path: "/rest/v1/votes", query: query}, &rows)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", translate(err, nil))
	}
	return len(rows) > 0, nil
}

func voterQuery(pollID uuid.UUID, userID *uuid.UUID, voterIP string) url.Values {
	query := url.Values{"poll_id": {"eq." + pollID.String()}}
	if userID != nil {
		query.Set("user_id", "eq."+userID.String())
	} else {
		query.Set("user_id", "is.null")
		query.Set("voter_ip", "eq."+voterIP)
	}
	return query
}
