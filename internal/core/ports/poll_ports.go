package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error)
	Update(ctx context.Context, update UpdatePollInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title       string
	Description string
	Options     []string
	ExpiresAt   *time.Time
	CreatedBy   uuid.UUID
}

// OptionChange carries the edit intent for a single option. A zero ID means
// the option is new; Delete wins over any other field.
type OptionChange struct {
	ID           uuid.UUID
	Text         string
	DisplayOrder int
	Delete       bool
}

type UpdatePollInput struct {
	PollID      uuid.UUID
	Title       string
	Description string
	ExpiresAt   *time.Time
	Options     []OptionChange
}

type ListPollsInput struct {
	Page  int
	Query string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	UpdatePoll(ctx context.Context, userID uuid.UUID, input UpdatePollInput) (*domain.Poll, error)
	DeletePoll(ctx context.Context, userID, pollID uuid.UUID) error
}
