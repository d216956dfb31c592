package client

import (
	"context"
	"net/http"
	"net/url"
)

// Session is the single source of truth for who is signed in. It is a
// constructed object; callers hold one per signed-in surface.
type Session struct {
	api *Client
}

func NewSession(api *Client) *Session {
	return &Session{api: api}
}

// authPayload is the register/verify/confirm response body.
type authPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CurrentUser fetches the signed-in user. Any failure, including 401,
// means "signed out", never a fatal error.
func (s *Session) CurrentUser(ctx context.Context) (*User, bool) {
	if s.api.Tokens.Token() == "" {
		return nil, false
	}
	var u User
	if err := s.api.get(ctx, "/api/user/me", keyCurrentUser(), &u); err != nil {
		return nil, false
	}
	return &u, true
}

type RegisterParams struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Register creates an account and stores the returned token.
func (s *Session) Register(ctx context.Context, p RegisterParams) (*User, error) {
	var out authPayload
	if err := s.api.mutate(ctx, http.MethodPost, "/api/user/register", opRegister, p, &out); err != nil {
		return nil, err
	}
	s.api.Tokens.SetToken(out.Token)
	return &out.User, nil
}

// Login verifies credentials and stores the returned token.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var out authPayload
	if err := s.api.mutate(ctx, http.MethodPost, "/api/user/verify", opLogin, body, &out); err != nil {
		return nil, err
	}
	s.api.Tokens.SetToken(out.Token)
	return &out.User, nil
}

// SendMagicLink asks the server to email a sign-in link. Fire and forget;
// it never changes session state by itself.
func (s *Session) SendMagicLink(ctx context.Context, email string) error {
	_, err := s.api.do(ctx, http.MethodPost, "/api/auth/magic-link", map[string]string{"email": email}, nil)
	return err
}

// ConfirmMagicLink redeems an emailed token for a session.
func (s *Session) ConfirmMagicLink(ctx context.Context, token string) (*User, error) {
	var out authPayload
	if err := s.api.mutate(ctx, http.MethodPost, "/api/auth/magic-link/confirm", opLogin, map[string]string{"token": token}, &out); err != nil {
		return nil, err
	}
	s.api.Tokens.SetToken(out.Token)
	return &out.User, nil
}

// GoogleSignInURL is where the browser should navigate to start the OAuth
// redirect leg. The session is picked up on next load via CurrentUser.
func (s *Session) GoogleSignInURL() string {
	u, err := url.Parse(s.api.BaseURL)
	if err != nil {
		return s.api.BaseURL + "/api/auth/google"
	}
	u.Path = "/api/auth/google"
	return u.String()
}

type OnboardingOrganization struct {
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"companySize,omitempty"`
	Website     string `json:"website,omitempty"`
}

type OnboardingPayload struct {
	FirstName    string                  `json:"firstName"`
	LastName     string                  `json:"lastName"`
	Role         string                  `json:"role"`
	Organization *OnboardingOrganization `json:"organization,omitempty"`
}

// CompleteOnboarding writes profile fields, conditionally a nested
// organization, and invalidates the current-user cache entry so the next
// read reflects the server's state.
func (s *Session) CompleteOnboarding(ctx context.Context, p OnboardingPayload) (*User, error) {
	var u User
	if err := s.api.mutate(ctx, http.MethodPost, "/api/onboarding", opCompleteOnboarding, p, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout invalidates the server session best-effort and always clears
// local state.
func (s *Session) Logout(ctx context.Context) {
	_, _ = s.api.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	s.api.Tokens.Clear()
	if s.api.Cache != nil {
		s.api.Cache.Purge()
	}
}
