package http

import (
	"encoding/json"
	"net/http"

	"github.com/apakou/alx-poll/internal/adapters/backend"
)

// SessionHandler proxies token refresh to the platform's auth endpoint.
// The app never issues tokens itself.
type SessionHandler struct {
	client *backend.Client
}

func NewSessionHandler(client *backend.Client) *SessionHandler {
	return &SessionHandler{
		client: client,
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		if cookie, cerr := r.Cookie("refresh_token"); cerr == nil && cookie.Value != "" {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "missing refresh token")
		return
	}

	session, err := h.client.RefreshSession(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}
