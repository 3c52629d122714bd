package auth

import (
	"context"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
	"github.com/partsdesk/partsdesk/internal/session"
)

// Service translates auth operations into backend calls. The bearer
// token is treated as an opaque credential throughout.
type Service struct {
	api *rest.Client
}

// NewService constructs a Service.
func NewService(api *rest.Client) *Service {
	return &Service{api: api}
}

// Login exchanges credentials for a token. The call is anonymous so a
// 401 here surfaces as bad credentials, never as session expiry.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := s.api.PostAnonymous(ctx, "/Users/login", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &rest.Error{Kind: rest.ErrUpstream, Message: "login response carried no token"}
	}
	return resp.Token, nil
}

// Register creates a new backend account.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	return s.api.PostAnonymous(ctx, "/Users/register", reg, nil)
}

// Me fetches the profile for the token carried by the current session.
func (s *Service) Me(ctx context.Context) (session.Profile, error) {
	var profile session.Profile
	if err := s.api.Get(ctx, "/Users/me", &profile); err != nil {
		return session.Profile{}, err
	}
	return profile, nil
}

// DeleteAccount removes the authenticated account upstream.
func (s *Service) DeleteAccount(ctx context.Context) error {
	return s.api.Delete(ctx, "/Users")
}
