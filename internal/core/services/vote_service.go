package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) error {
	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return err
	}

	if poll.Expired(time.Now()) {
		return domain.ErrPollExpired
	}

	if poll.Option(input.OptionID) == nil {
		return domain.ErrInvalidOption
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, input.PollID, input.UserID, input.VoterIP)
	if err != nil {
		return err
	}
	if hasVoted {
		return domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		PollID:    input.PollID,
		OptionID:  input.OptionID,
		UserID:    input.UserID,
		VoterIP:   input.VoterIP,
		CreatedAt: time.Now(),
	}

	return s.voteRepo.SaveVote(ctx, vote)
}

func (s *voteService) Unvote(ctx context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error {
	hasVoted, err := s.voteRepo.HasVoted(ctx, pollID, userID, voterIP)
	if err != nil {
		return err
	}

	if !hasVoted {
		return domain.ErrDidNotVote
	}

	return s.voteRepo.DeleteVote(ctx, pollID, userID, voterIP)
}
