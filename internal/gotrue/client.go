// Package gotrue adapts the supabase auth-go client to what the web app
// delegates to the hosted auth service: password sign-in, sign-up and sign-out.
// Token refresh and password management stay with the service.
package gotrue

import (
	"context"
	"net/http"
	"strings"
	"time"

	supabaseauth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
)

const requestTimeout = 10 * time.Second

type Client struct {
	api supabaseauth.Client
}

// New returns a client for the auth API rooted at baseURL, e.g.
// https://project.example.co/auth/v1.
func New(baseURL, apiKey string) *Client {
	api := supabaseauth.New("", apiKey).WithCustomAuthURL(strings.TrimRight(baseURL, "/"))
	return &Client{api: api}
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the token grant returned on sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// contextTransport binds every outgoing request to ctx, since auth-go's
// methods take no context of their own.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func (c *Client) bound(ctx context.Context) supabaseauth.Client {
	return c.api.WithClient(http.Client{
		Timeout:   requestTimeout,
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
	})
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.bound(ctx).SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fromAPIError(err)
	}
	return sessionFrom(resp.Session), nil
}

// SignUp registers a new user. When the service requires email confirmation it
// answers with the bare user and no tokens; the returned Session then has an
// empty AccessToken.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.bound(ctx).Signup(types.SignupRequest{Email: email, Password: password})
	if err != nil {
		return nil, fromAPIError(err)
	}
	if resp.AccessToken == "" {
		return &Session{User: userFrom(resp.User)}, nil
	}
	return sessionFrom(resp.Session), nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.bound(ctx).WithToken(accessToken).Logout(); err != nil {
		return fromAPIError(err)
	}
	return nil
}

func sessionFrom(s types.Session) *Session {
	return &Session{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   s.ExpiresIn,
		User:        userFrom(s.User),
	}
}

func userFrom(u types.User) User {
	return User{ID: u.ID.String(), Email: u.Email}
}
