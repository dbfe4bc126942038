package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type stubVoteRepo struct {
	votes []*domain.Vote
}

func (r *stubVoteRepo) SaveVote(_ context.Context, vote *domain.Vote) error {
	r.votes = append(r.votes, vote)
	return nil
}

func (r *stubVoteRepo) DeleteVote(_ context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) error {
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.PollID == pollID && sameVoter(v, userID, voterIP) {
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return nil
}

func (r *stubVoteRepo) HasVoted(_ context.Context, pollID uuid.UUID, userID *uuid.UUID, voterIP string) (bool, error) {
	for _, v := range r.votes {
		if v.PollID == pollID && sameVoter(v, userID, voterIP) {
			return true, nil
		}
	}
	return false, nil
}

func sameVoter(v *domain.Vote, userID *uuid.UUID, voterIP string) bool {
	if userID != nil {
		return v.UserID != nil && *v.UserID == *userID
	}
	return v.UserID == nil && v.VoterIP == voterIP
}

func voteFixture(t *testing.T) (ports.VoteService, *stubPollRepo, *stubVoteRepo, *domain.Poll, uuid.UUID) {
	t.Helper()
	pollRepo := newStubPollRepo()
	voteRepo := &stubVoteRepo{}
	owner := uuid.New()
	poll := seedPoll(pollRepo, owner)
	return NewVoteService(pollRepo, voteRepo), pollRepo, voteRepo, poll, owner
}

func TestVote(t *testing.T) {
	svc, _, voteRepo, poll, _ := voteFixture(t)
	userID := uuid.New()

	err := svc.Vote(context.Background(), ports.VoteInput{
		PollID:   poll.ID,
		OptionID: poll.Options[0].ID,
		UserID:   &userID,
		VoterIP:  "203.0.113.7",
	})
	require.NoError(t, err)
	require.Len(t, voteRepo.votes, 1)
	assert.Equal(t, poll.Options[0].ID, voteRepo.votes[0].OptionID)
}

func TestVoteTwiceConflicts(t *testing.T) {
	svc, _, _, poll, _ := voteFixture(t)
	userID := uuid.New()
	input := ports.VoteInput{
		PollID:   poll.ID,
		OptionID: poll.Options[0].ID,
		UserID:   &userID,
	}

	require.NoError(t, svc.Vote(context.Background(), input))

	input.OptionID = poll.Options[1].ID
	err := svc.Vote(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestAnonymousVoteKeyedByIP(t *testing.T) {
	svc, _, voteRepo, poll, _ := voteFixture(t)

	first := ports.VoteInput{PollID: poll.ID, OptionID: poll.Options[0].ID, VoterIP: "203.0.113.7"}
	require.NoError(t, svc.Vote(context.Background(), first))

	// same IP may not vote again
	err := svc.Vote(context.Background(), first)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	// a different IP may
	second := ports.VoteInput{PollID: poll.ID, OptionID: poll.Options[1].ID, VoterIP: "203.0.113.8"}
	require.NoError(t, svc.Vote(context.Background(), second))
	assert.Len(t, voteRepo.votes, 2)
}

func TestVoteInvalidOption(t *testing.T) {
	svc, _, _, poll, _ := voteFixture(t)
	userID := uuid.New()

	err := svc.Vote(context.Background(), ports.VoteInput{
		PollID:   poll.ID,
		OptionID: uuid.New(),
		UserID:   &userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestVoteOnExpiredPoll(t *testing.T) {
	svc, pollRepo, _, poll, _ := voteFixture(t)
	past := time.Now().Add(-time.Hour)
	pollRepo.polls[poll.ID].ExpiresAt = &past
	userID := uuid.New()

	err := svc.Vote(context.Background(), ports.VoteInput{
		PollID:   poll.ID,
		OptionID: poll.Options[0].ID,
		UserID:   &userID,
	})
	assert.ErrorIs(t, err, domain.ErrPollExpired)
}

func TestVoteOnMissingPoll(t *testing.T) {
	svc, _, _, _, _ := voteFixture(t)
	userID := uuid.New()

	err := svc.Vote(context.Background(), ports.VoteInput{
		PollID:   uuid.New(),
		OptionID: uuid.New(),
		UserID:   &userID,
	})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestUnvote(t *testing.T) {
	svc, _, voteRepo, poll, _ := voteFixture(t)
	userID := uuid.New()
	input := ports.VoteInput{PollID: poll.ID, OptionID: poll.Options[0].ID, UserID: &userID}

	require.NoError(t, svc.Vote(context.Background(), input))
	require.NoError(t, svc.Unvote(context.Background(), poll.ID, &userID, ""))
	assert.Empty(t, voteRepo.votes)

	err := svc.Unvote(context.Background(), poll.ID, &userID, "")
	assert.ErrorIs(t, err, domain.ErrDidNotVote)
}
