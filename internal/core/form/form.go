// Package form holds the editable state of a poll and the transformation
// between a persisted poll and an update request. Options carry per-row
// intent flags so the edit screen can stage creates, edits and deletes
// before anything is submitted.
package form

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/domain"
	"github.com/apakou/alx-poll/internal/core/ports"
)

type Option struct {
	ID           uuid.UUID
	Text         string
	DisplayOrder int
	Persisted    bool
	Deleted      bool
}

type Form struct {
	PollID      uuid.UUID
	Title       string
	Description string
	ExpiresAt   *time.Time
	Options     []Option
}

// FromPoll converts a persisted poll into editable form state. Options are
// ordered by their stored display order.
func FromPoll(p *domain.Poll) *Form {
	f := &Form{
		PollID:      p.ID,
		Title:       p.Title,
		Description: p.Description,
		ExpiresAt:   p.ExpiresAt,
	}
	for _, opt := range p.Options {
		f.Options = append(f.Options, Option{
			ID:           opt.ID,
			Text:         opt.Text,
			DisplayOrder: opt.DisplayOrder,
			Persisted:    true,
		})
	}
	f.sortByOrder()
	f.renumber()
	return f
}

// FromChanges builds form state from an externally assembled update, so
// option orders submitted over the API pass through the same sorting and
// dense renumbering the edit form applies. Unsaved options marked for
// deletion are dropped, matching RemoveOption.
func FromChanges(input ports.UpdatePollInput) *Form {
	f := &Form{
		PollID:      input.PollID,
		Title:       input.Title,
		Description: input.Description,
		ExpiresAt:   input.ExpiresAt,
	}
	for _, change := range input.Options {
		if change.Delete && change.ID == uuid.Nil {
			continue
		}
		f.Options = append(f.Options, Option{
			ID:           change.ID,
			Text:         change.Text,
			DisplayOrder: change.DisplayOrder,
			Persisted:    change.ID != uuid.Nil,
			Deleted:      change.Delete,
		})
	}
	f.sortByOrder()
	f.renumber()
	return f
}

// AddOption appends a new, not-yet-persisted option at the end.
func (f *Form) AddOption(text string) {
	f.Options = append(f.Options, Option{Text: text})
	f.renumber()
}

// RemoveOption removes the option at index i. A persisted option is marked
// for deletion so the update can delete the row; an unsaved one is dropped
// outright. Remaining active options are renumbered.
func (f *Form) RemoveOption(i int) {
	if i < 0 || i >= len(f.Options) {
		return
	}
	if f.Options[i].Persisted {
		f.Options[i].Deleted = true
		f.Options[i].DisplayOrder = 0
	} else {
		f.Options = append(f.Options[:i], f.Options[i+1:]...)
	}
	f.renumber()
}

// MoveOption moves the option at index from to index to and renumbers.
// Indices refer to the full option list, deleted entries included.
func (f *Form) MoveOption(from, to int) {
	if from < 0 || from >= len(f.Options) || to < 0 || to >= len(f.Options) || from == to {
		return
	}
	opt := f.Options[from]
	f.Options = append(f.Options[:from], f.Options[from+1:]...)
	f.Options = append(f.Options[:to], append([]Option{opt}, f.Options[to:]...)...)
	f.renumber()
}

// Active returns the options that are not marked for deletion, in display order.
func (f *Form) Active() []Option {
	var active []Option
	for _, opt := range f.Options {
		if !opt.Deleted {
			active = append(active, opt)
		}
	}
	return active
}

// Validate returns every problem that would block submission. now anchors
// the expiry check.
func (f *Form) Validate(now time.Time) []string {
	var problems []string

	if strings.TrimSpace(f.Title) == "" {
		problems = append(problems, "title is required")
	}

	active := f.Active()
	if len(active) < 2 {
		problems = append(problems, "at least two options are required")
	}

	seen := make(map[string]bool)
	blankReported := false
	for _, opt := range active {
		text := strings.ToLower(strings.TrimSpace(opt.Text))
		if text == "" {
			if !blankReported {
				problems = append(problems, "option text is required")
				blankReported = true
			}
			continue
		}
		if seen[text] {
			problems = append(problems, "duplicate option: "+strings.TrimSpace(opt.Text))
			continue
		}
		seen[text] = true
	}

	if f.ExpiresAt != nil && !f.ExpiresAt.After(now) {
		problems = append(problems, "expiry date must be in the future")
	}

	return problems
}

// Changes converts the form into an update request: deletes for persisted
// options marked deleted, updates for surviving persisted options, creates
// for new ones. Dropped unsaved options leave no trace.
func (f *Form) Changes() ports.UpdatePollInput {
	input := ports.UpdatePollInput{
		PollID:      f.PollID,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		ExpiresAt:   f.ExpiresAt,
	}
	for _, opt := range f.Options {
		if opt.Deleted {
			input.Options = append(input.Options, ports.OptionChange{ID: opt.ID, Delete: true})
			continue
		}
		input.Options = append(input.Options, ports.OptionChange{
			ID:           opt.ID,
			Text:         strings.TrimSpace(opt.Text),
			DisplayOrder: opt.DisplayOrder,
		})
	}
	return input
}

// renumber assigns a dense 1-based display order to active options in
// list order. Deleted options keep order zero.
func (f *Form) renumber() {
	next := 1
	for i := range f.Options {
		if f.Options[i].Deleted {
			f.Options[i].DisplayOrder = 0
			continue
		}
		f.Options[i].DisplayOrder = next
		next++
	}
}

func (f *Form) sortByOrder() {
	sort.SliceStable(f.Options, func(i, j int) bool {
		return f.Options[i].DisplayOrder < f.Options[j].DisplayOrder
	})
}
