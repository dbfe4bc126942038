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

type stubPollRepo struct {
	polls      map[uuid.UUID]*domain.Poll
	updates    []ports.UpdatePollInput
	deleted    []uuid.UUID
	listLimit  int
	listOffset int
}

func newStubPollRepo() *stubPollRepo {
	return &stubPollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *stubPollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.polls[poll.ID] = poll
	return nil
}

func (r *stubPollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return poll, nil
}

func (r *stubPollRepo) GetAll(_ context.Context) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, p := range r.polls {
		polls = append(polls, p)
	}
	return polls, nil
}

func (r *stubPollRepo) List(_ context.Context, limit, offset int) ([]*domain.Poll, error) {
	r.listLimit, r.listOffset = limit, offset
	return r.GetAll(context.Background())
}

func (r *stubPollRepo) Search(_ context.Context, limit, offset int, query string) ([]*domain.Poll, error) {
	return r.GetAll(context.Background())
}

func (r *stubPollRepo) Update(_ context.Context, update ports.UpdatePollInput) error {
	r.updates = append(r.updates, update)
	return nil
}

func (r *stubPollRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.polls, id)
	return nil
}

func seedPoll(repo *stubPollRepo, owner uuid.UUID) *domain.Poll {
	pollID := uuid.New()
	poll := &domain.Poll{
		ID:        pollID,
		Title:     "Best editor",
		CreatedBy: owner,
		CreatedAt: time.Now(),
		Options: []domain.PollOption{
			{ID: uuid.New(), PollID: pollID, Text: "vim", DisplayOrder: 1},
			{ID: uuid.New(), PollID: pollID, Text: "emacs", DisplayOrder: 2},
		},
	}
	repo.polls[pollID] = poll
	return poll
}

func TestCreatePoll(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Title:     "Best editor",
		Options:   []string{"vim", "", "emacs"},
		CreatedBy: owner,
	})
	require.NoError(t, err)

	assert.Equal(t, owner, poll.CreatedBy)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, 1, poll.Options[0].DisplayOrder)
	assert.Equal(t, 2, poll.Options[1].DisplayOrder)
	assert.Contains(t, repo.polls, poll.ID)
}

func TestCreatePollValidation(t *testing.T) {
	svc := NewPollService(newStubPollRepo(), 10)

	_, err := svc.Create(context.Background(), ports.CreatePollInput{
		Title:   "",
		Options: []string{"only one"},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, "title is required")
	assert.Contains(t, verr.Problems, "at least two options are required")
}

func TestGetPollInvalidID(t *testing.T) {
	svc := NewPollService(newStubPollRepo(), 10)
	_, err := svc.GetPoll(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidPollID)
}

func TestUpdatePoll(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()
	poll := seedPoll(repo, owner)

	_, err := svc.UpdatePoll(context.Background(), owner, ports.UpdatePollInput{
		PollID: poll.ID,
		Title:  "Best editor, really",
		Options: []ports.OptionChange{
			{ID: poll.Options[0].ID, Text: "neovim", DisplayOrder: 1},
			{ID: poll.Options[1].ID, Text: "emacs", DisplayOrder: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "Best editor, really", repo.updates[0].Title)
}

func TestUpdatePollForbiddenForNonOwner(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	poll := seedPoll(repo, uuid.New())

	_, err := svc.UpdatePoll(context.Background(), uuid.New(), ports.UpdatePollInput{
		PollID: poll.ID,
		Title:  "hijack",
		Options: []ports.OptionChange{
			{ID: poll.Options[0].ID, Text: "a", DisplayOrder: 1},
			{ID: poll.Options[1].ID, Text: "b", DisplayOrder: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.updates)
}

func TestUpdatePollRejectsForeignOption(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()
	poll := seedPoll(repo, owner)

	_, err := svc.UpdatePoll(context.Background(), owner, ports.UpdatePollInput{
		PollID: poll.ID,
		Title:  "Best editor",
		Options: []ports.OptionChange{
			{ID: uuid.New(), Text: "foreign", DisplayOrder: 1},
			{ID: poll.Options[1].ID, Text: "emacs", DisplayOrder: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestUpdatePollValidation(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()
	poll := seedPoll(repo, owner)

	_, err := svc.UpdatePoll(context.Background(), owner, ports.UpdatePollInput{
		PollID: poll.ID,
		Title:  "Best editor",
		Options: []ports.OptionChange{
			{ID: poll.Options[0].ID, Delete: true},
			{ID: poll.Options[1].ID, Text: "emacs", DisplayOrder: 1},
		},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, "at least two options are required")
}

func TestDeletePoll(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()
	poll := seedPoll(repo, owner)

	require.NoError(t, svc.DeletePoll(context.Background(), owner, poll.ID))
	assert.Equal(t, []uuid.UUID{poll.ID}, repo.deleted)

	err := svc.DeletePoll(context.Background(), owner, poll.ID)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestDeletePollForbiddenForNonOwner(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	poll := seedPoll(repo, uuid.New())

	err := svc.DeletePoll(context.Background(), uuid.New(), poll.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdatePollRenumbersDisplayOrder(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 10)
	owner := uuid.New()
	poll := seedPoll(repo, owner)

	// duplicate and sparse orders as an API client might send them
	_, err := svc.UpdatePoll(context.Background(), owner, ports.UpdatePollInput{
		PollID: poll.ID,
		Title:  "Best editor",
		Options: []ports.OptionChange{
			{ID: poll.Options[0].ID, Text: "vim", DisplayOrder: 7},
			{ID: poll.Options[1].ID, Text: "emacs", DisplayOrder: 7},
			{Text: "helix", DisplayOrder: 30},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.updates, 1)

	var orders []int
	for _, change := range repo.updates[0].Options {
		if !change.Delete {
			orders = append(orders, change.DisplayOrder)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, orders)
}

func TestListPollsUsesConfiguredPageSize(t *testing.T) {
	repo := newStubPollRepo()
	svc := NewPollService(repo, 5)

	_, err := svc.ListPolls(context.Background(), ports.ListPollsInput{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, repo.listLimit)
	assert.Equal(t, 10, repo.listOffset)
}
