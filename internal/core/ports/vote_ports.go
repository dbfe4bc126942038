package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
)

type VoteRepository interface {
	SaveVote(ctx context.Context, vote *domain.Vote) error
	DeleteVote(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error
	HasVoted(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) (bool, error)
}

type VoteInput struct {
	PollID   uuid.UUID
	OptionID uuid.UUID
	UserID   *uuid.UUID
	VoterIP  string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) error
	Unvote(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error
}
