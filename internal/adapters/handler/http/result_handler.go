package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apakou/alx-poll/internal/core/ports"
)

type ResultHandler struct {
	pollService ports.PollService
	resultRepo  ports.PollResultRepository
}

func NewResultHandler(pollService ports.PollService, resultRepo ports.PollResultRepository) *ResultHandler {
	return &ResultHandler{
		pollService: pollService,
		resultRepo:  resultRepo,
	}
}

type optionResult struct {
	OptionID   uuid.UUID `json:"option_id"`
	Text       string    `json:"text"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}

type pollResults struct {
	PollID  uuid.UUID      `json:"poll_id"`
	Title   string         `json:"title"`
	Results []optionResult `json:"results"`
}

func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	poll, err := h.pollService.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	stats, err := h.resultRepo.GetPollOptionStats(r.Context(), poll.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := pollResults{
		PollID:  poll.ID,
		Title:   poll.Title,
		Results: make([]optionResult, 0, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		stat := stats[opt.ID]
		response.Results = append(response.Results, optionResult{
			OptionID:   opt.ID,
			Text:       opt.Text,
			VoteCount:  stat.VoteCount,
			Percentage: stat.Percentage,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
