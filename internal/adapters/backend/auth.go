package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Session is what the platform's auth endpoint returns for a grant.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// RefreshSession exchanges a refresh token for a new session. Token
// issuance lives entirely in the platform; this is a pass-through.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	var session Session
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		body:   map[string]string{"refresh_token": refreshToken},
	}, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", translate(err, nil))
	}
	return &session, nil
}
