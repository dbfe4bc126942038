package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/form"
	"github.com/apakou/alx-poll/internal/core/ports"
)

const defaultPollsPerPage = 10

type pollService struct {
	repo    ports.PollRepository
	perPage int
}

func NewPollService(repo ports.PollRepository, pollsPerPage int) ports.PollService {
	if pollsPerPage < 1 {
		pollsPerPage = defaultPollsPerPage
	}
	return &pollService{
		repo:    repo,
		perPage: pollsPerPage,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	f := &form.Form{
		Title:       input.Title,
		Description: input.Description,
		ExpiresAt:   input.ExpiresAt,
	}
	for _, text := range input.Options {
		if strings.TrimSpace(text) == "" {
			continue
		}
		f.AddOption(text)
	}
	if problems := f.Validate(time.Now()); len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}

	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:          pollID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		ExpiresAt:   input.ExpiresAt,
	}

	for _, opt := range f.Active() {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:           uuid.New(),
			PollID:       pollID,
			Text:         strings.TrimSpace(opt.Text),
			DisplayOrder: opt.DisplayOrder,
			CreatedAt:    now,
		})
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.perPage

	if q := strings.TrimSpace(input.Query); q != "" {
		return s.repo.Search(ctx, s.perPage, offset, q)
	}
	return s.repo.List(ctx, s.perPage, offset)
}

func (s *pollService) UpdatePoll(ctx context.Context, userID uuid.UUID, input ports.UpdatePollInput) (*domain.Poll, error) {
	poll, err := s.repo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}
	if poll.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}

	// every referenced option must belong to this poll
	for _, change := range input.Options {
		if change.ID == uuid.Nil {
			continue
		}
		if poll.Option(change.ID) == nil {
			return nil, domain.ErrInvalidOption
		}
	}

	// run the update through the edit form so API-assembled orders get the
	// same dense renumbering the form applies
	f := form.FromChanges(input)
	if problems := f.Validate(time.Now()); len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}

	if err := s.repo.Update(ctx, f.Changes()); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, input.PollID)
}

func (s *pollService) DeletePoll(ctx context.Context, userID, pollID uuid.UUID) error {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.CreatedBy != userID {
		return domain.ErrForbidden
	}

	return s.repo.Delete(ctx, pollID)
}
