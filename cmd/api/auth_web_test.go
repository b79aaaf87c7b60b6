package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"reaheats/internal/gotrue"
	"reaheats/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthPageHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	mux := app.mount()

	rr := executeRequest(newRequest(http.MethodGet, "/auth?mode=signup", nil, ""), mux)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Create Account")
	assert.Contains(t, rr.Body.String(), `name="mode" value="signup"`)

	token := accessToken(t, aliceID, "alice@example.com")
	rr = executeRequest(newRequest(http.MethodGet, "/auth", nil, token), mux)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestAuthSubmitHandler(t *testing.T) {
	creds := url.Values{"mode": {"signin"}, "email": {"alice@example.com"}, "password": {"hunter22"}}

	t.Run("sign in sets the session cookie", func(t *testing.T) {
		app, deps := newTestApplication(t)
		deps.remote.signInFunc = func(ctx context.Context, email, password string) (*gotrue.Session, error) {
			return &gotrue.Session{
				AccessToken: "issued-token",
				ExpiresIn:   3600,
				User:        gotrue.User{ID: aliceID, Email: email},
			}, nil
		}
		var events []session.Event
		app.sessions.Subscribe(func(e session.Event) { events = append(events, e) })

		rr := executeRequest(newRequest(http.MethodPost, "/auth", creds, ""), app.mount())
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))

		c := findCookie(rr, accessTokenCookie)
		require.NotNil(t, c)
		assert.Equal(t, "issued-token", c.Value)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.HttpOnly)

		require.Len(t, events, 1)
		assert.Equal(t, session.SignedIn, events[0].Type)
	})

	t.Run("rejected credentials show the service message", func(t *testing.T) {
		app, deps := newTestApplication(t)
		deps.remote.signInFunc = func(ctx context.Context, email, password string) (*gotrue.Session, error) {
			return nil, &gotrue.Error{StatusCode: http.StatusBadRequest, Code: "invalid_grant", Message: "Invalid login credentials"}
		}

		rr := executeRequest(newRequest(http.MethodPost, "/auth", creds, ""), app.mount())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid login credentials")
		assert.Nil(t, findCookie(rr, accessTokenCookie))
	})

	t.Run("service outage shows a generic message", func(t *testing.T) {
		app, deps := newTestApplication(t)
		deps.remote.signInFunc = func(ctx context.Context, email, password string) (*gotrue.Session, error) {
			return nil, errors.New("dial tcp: connection refused")
		}

		rr := executeRequest(newRequest(http.MethodPost, "/auth", creds, ""), app.mount())
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication failed")
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})

	t.Run("invalid form never reaches the service", func(t *testing.T) {
		app, _ := newTestApplication(t)
		form := url.Values{"mode": {"signin"}, "email": {"not-an-email"}, "password": {"123"}}

		rr := executeRequest(newRequest(http.MethodPost, "/auth", form, ""), app.mount())
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Please enter a valid email")
	})

	t.Run("sign up awaiting confirmation", func(t *testing.T) {
		app, deps := newTestApplication(t)
		deps.remote.signUpFunc = func(ctx context.Context, email, password string) (*gotrue.Session, error) {
			return &gotrue.Session{User: gotrue.User{ID: bobID, Email: email}}, nil
		}
		form := url.Values{"mode": {"signup"}, "email": {"bob@example.com"}, "password": {"hunter22"}}

		rr := executeRequest(newRequest(http.MethodPost, "/auth", form, ""), app.mount())
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Check your email to confirm your account")
		assert.Contains(t, rr.Body.String(), `name="mode" value="signin"`)
		assert.Nil(t, findCookie(rr, accessTokenCookie))
	})

	t.Run("attempts are rate limited", func(t *testing.T) {
		app, deps := newTestApplication(t)
		deps.remote.signInFunc = func(ctx context.Context, email, password string) (*gotrue.Session, error) {
			return nil, &gotrue.Error{StatusCode: http.StatusBadRequest, Message: "Invalid login credentials"}
		}
		mux := app.mount()

		for i := 0; i < app.config.rateLimiter.RequestsPerTimeFrame; i++ {
			rr := executeRequest(newRequest(http.MethodPost, "/auth", creds, ""), mux)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		}
		rr := executeRequest(newRequest(http.MethodPost, "/auth", creds, ""), mux)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	})
}

func TestSignOutHandler(t *testing.T) {
	app, deps := newTestApplication(t)
	var events []session.Event
	app.sessions.Subscribe(func(e session.Event) { events = append(events, e) })

	token := accessToken(t, aliceID, "alice@example.com")
	rr := executeRequest(newRequest(http.MethodPost, "/auth/signout", nil, token), app.mount())
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	assert.Equal(t, []string{token}, deps.remote.signedOut)
	c := findCookie(rr, accessTokenCookie)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)

	require.Len(t, events, 1)
	assert.Equal(t, session.SignedOut, events[0].Type)
	assert.Equal(t, aliceID, events[0].User.ID)
}

func TestExpiredCookieIsCleared(t *testing.T) {
	app, _ := newTestApplication(t)

	rr := executeRequest(newRequest(http.MethodGet, "/about", nil, "not-a-jwt"), app.mount())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sign In")

	c := findCookie(rr, accessTokenCookie)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}
