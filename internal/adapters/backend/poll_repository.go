package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type pollRepository struct {
	client *Client
}

func NewPollRepository(client *Client) ports.PollRepository {
	return &pollRepository{
		client: client,
	}
}

type optionRow struct {
	ID           uuid.UUID `json:"id"`
	PollID       uuid.UUID `json:"poll_id"`
	Text         string    `json:"text"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type pollRow struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   *time.Time  `json:"expires_at"`
	Options     []optionRow `json:"poll_options"`
}

func (row *pollRow) toDomain() *domain.Poll {
	poll := &domain.Poll{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		ExpiresAt:   row.ExpiresAt,
	}
	for _, opt := range row.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:           opt.ID,
			PollID:       opt.PollID,
			Text:         opt.Text,
			DisplayOrder: opt.DisplayOrder,
			CreatedAt:    opt.CreatedAt,
		})
	}
	return poll
}

type insertPoll struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type insertOption struct {
	ID           uuid.UUID `json:"id"`
	PollID       uuid.UUID `json:"poll_id"`
	Text         string    `json:"text"`
	DisplayOrder int       `json:"display_order"`
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	row := insertPoll{
		ID:          poll.ID,
		Title:       poll.Title,
		Description: poll.Description,
		CreatedBy:   poll.CreatedBy,
		ExpiresAt:   poll.ExpiresAt,
	}
	err := r.client.do(ctx, request{method: http.MethodPost, path: "/rest/v1/polls", body: []insertPoll{row}}, nil)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", translate(err, nil))
	}

	options := make([]insertOption, 0, len(poll.Options))
	for _, opt := range poll.Options {
		options = append(options, insertOption{
			ID:           opt.ID,
			PollID:       opt.PollID,
			Text:         opt.Text,
			DisplayOrder: opt.DisplayOrder,
		})
	}
	err = r.client.do(ctx, request{method: http.MethodPost, path: "/rest/v1/poll_options", body: options}, nil)
	if err != nil {
		return fmt.Errorf("failed to insert options: %w", translate(err, nil))
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := url.Values{
		"id":         {"eq." + id.String()},
		"deleted_at": {"is.null"},
		"select":     {"*,poll_options(*)"},
	}

	var rows []pollRow
	err := r.client.do(ctx, request{method: http.MethodGet, path: "/rest/v1/polls", query: query}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", translate(err, nil))
	}
	if len(rows) == 0 {
		return nil, domain.ErrPollNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := url.Values{
		"deleted_at": {"is.null"},
		"select":     {"*,poll_options(*)"},
	}
	return r.fetch(ctx, "/rest/v1/polls", query)
}

func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	query := url.Values{
		"select": {"*,poll_options(*)"},
		"order":  {"total_votes.desc,created_at.desc"},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	// poll_listing is a view over non-deleted polls with their vote totals
	return r.fetch(ctx, "/rest/v1/poll_listing", query)
}

func (r *pollRepository) Search(ctx context.Context, limit, offset int, q string) ([]*domain.Poll, error) {
	query := url.Values{
		"select": {"*,poll_options(*)"},
		"title":  {"ilike.*" + q + "*"},
		"order":  {"total_votes.desc,created_at.desc"},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	return r.fetch(ctx, "/rest/v1/poll_listing", query)
}

func (r *pollRepository) fetch(ctx context.Context, path string, query url.Values) ([]*domain.Poll, error) {
	var rows []pollRow
	err := r.client.do(ctx, request{method: http.MethodGet, path: path, query: query}, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", translate(err, nil))
	}

	polls := make([]*domain.Poll, 0, len(rows))
	for i := range rows {
		polls = append(polls, rows[i].toDomain())
	}
	return polls, nil
}

type patchPoll struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type patchOption struct {
	Text         string `json:"text"`
	DisplayOrder int    `json:"display_order"`
}

// Update applies the edit diff one change at a time; the table API has no
// transaction surface. Deletes run first so renumbered survivors never
// collide with rows about to disappear.
func (r *pollRepository) Update(ctx context.Context, update ports.UpdatePollInput) error {
	body := patchPoll{
		Title:       update.Title,
		Description: update.Description,
		ExpiresAt:   update.ExpiresAt,
	}
	err := r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/polls",
		query:  url.Values{"id": {"eq." + update.PollID.String()}},
		body:   body,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", translate(err, nil))
	}

	for _, change := range update.Options {
		if !change.Delete {
			continue
		}
		err := r.client.do(ctx, request{
			method: http.MethodDelete,
			path:   "/rest/v1/poll_options",
			query: url.Values{
				"id":      {"eq." + change.ID.String()},
				"poll_id": {"eq." + update.PollID.String()},
			},
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to delete option: %w", translate(err, nil))
		}
	}

	for _, change := range update.Options {
		if change.Delete {
			continue
		}
		if err := r.applyOptionChange(ctx, update.PollID, change); err != nil {
			return err
		}
	}
	return nil
}

func (r *pollRepository) applyOptionChange(ctx context.Context, pollID uuid.UUID, change ports.OptionChange) error {
	if change.ID == uuid.Nil {
		row := insertOption{
			ID:           uuid.New(),
			PollID:       pollID,
			Text:         change.Text,
			DisplayOrder: change.DisplayOrder,
		}
		err := r.client.do(ctx, request{method: http.MethodPost, path: "/rest/v1/poll_options", body: []insertOption{row}}, nil)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", translate(err, nil))
		}
		return nil
	}

	err := r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/poll_options",
		query: url.Values{
			"id":      {"eq." + change.ID.String()},
			"poll_id": {"eq." + pollID.String()},
		},
		body: patchOption{Text: change.Text, DisplayOrder: change.DisplayOrder},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to update option: %w", translate(err, nil))
	}
	return nil
}

// Delete soft-deletes; the platform's cascade handles options, votes and
// results when the row is purged later.
func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/polls",
		query:  url.Values{"id": {"eq." + id.String()}},
		body:   map[string]string{"deleted_at": time.Now().UTC().Format(time.RFC3339)},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", translate(err, nil))
	}
	return nil
}
