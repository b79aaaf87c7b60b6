package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	anaID = "5a8f1c2e-3b4d-4e6f-8a9b-0c1d2e3f4a01"
	newID = "5a8f1c2e-3b4d-4e6f-8a9b-0c1d2e3f4a02"
)

func TestSignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body.Email)
		assert.Equal(t, "hunter22", body.Password)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","token_type":"bearer","expires_in":3600,"user":{"id":"` + anaID + `","email":"ana@example.com"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/auth/v1/", "anon-key")
	s, err := c.SignInWithPassword(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, 3600, s.ExpiresIn)
	assert.Equal(t, User{ID: anaID, Email: "ana@example.com"}, s.User)
}

func TestSignInWithPasswordSurfacesServiceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").SignInWithPassword(context.Background(), "a@b.c", "x")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_grant", apiErr.Code)
	assert.Equal(t, "Invalid login credentials", apiErr.Error())
}

func TestSignInHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected once the context is cancelled")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, "k").SignInWithPassword(ctx, "a@b.c", "x")
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "a transport failure is not a service answer")
}

func TestSignUpWithoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/signup"))
		_, _ = w.Write([]byte(`{"id":"` + newID + `","email":"new@example.com","confirmation_sent_at":"2024-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	s, err := New(srv.URL, "k").SignUp(context.Background(), "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken)
	assert.Equal(t, newID, s.User.ID)
	assert.Equal(t, "new@example.com", s.User.Email)
}

func TestSignOutSendsBearer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.True(t, strings.HasSuffix(r.URL.Path, "/logout"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "k").SignOut(context.Background(), "tok"))
	assert.True(t, called)
}

func TestFromAPIError(t *testing.T) {
	err := fromAPIError(errors.New(`response status code 422: {"code":422,"msg":"Password should be at least 6 characters"}`))
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.EqualError(t, err, "Password should be at least 6 characters")

	err = fromAPIError(errors.New("response status code 502"))
	assert.EqualError(t, err, "Bad Gateway")

	transport := errors.New("dial tcp: connection refused")
	assert.Same(t, transport, fromAPIError(transport))
}

func TestParseErrorShapes(t *testing.T) {
	err := parseError(400, []byte(`{"error_code":"email_exists","message":"User already registered"}`))
	assert.EqualError(t, err, "User already registered")

	err = parseError(502, []byte(`<html>bad gateway</html>`))
	assert.EqualError(t, err, "Bad Gateway")
}
