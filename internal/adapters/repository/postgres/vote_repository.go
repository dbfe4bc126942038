package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, option_id, user_id, voter_ip)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.VoterIP)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return domain.ErrAlreadyVoted
			case "23503":
				return domain.ErrInvalidOption
			}
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteVote(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error {
	query, args := voterFilter(
		`DELETE FROM votes WHERE poll_id = $1`, pollID, userID, voterIP)
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) (bool, error) {
	query, args := voterFilter(
		`SELECT 1 FROM votes WHERE poll_id = $1`, pollID, userID, voterIP)
	query += " LIMIT 1"

	var exists int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func voterFilter(base string, pollID uuid.UUID, userID *uuid.UUID, voterIP string) (string, []any) {
	if userID != nil {
		return base + " AND user_id = $2", []any{pollID, *userID}
	}
	return base + " AND user_id IS NULL AND voter_ip = $2", []any{pollID, voterIP}
}
