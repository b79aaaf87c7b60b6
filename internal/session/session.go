// Package session holds the identity of the signed-in user for one request and
// relays sign-in and sign-out through the hosted auth service.
package session

import (
	"context"
)

// User is the principal behind the current authenticated session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Context is what views read to gate actions on identity. A nil *Context
// behaves as signed out.
type Context struct {
	user  *User
	token string
}

func NewContext(user *User, token string) *Context {
	return &Context{user: user, token: token}
}

func (c *Context) User() *User {
	if c == nil {
		return nil
	}
	return c.user
}

func (c *Context) SignedIn() bool {
	return c.User() != nil
}

// Owns reports whether the signed-in user is userID. It is a display
// affordance only; the stores scope mutations by owner themselves.
func (c *Context) Owns(userID string) bool {
	u := c.User()
	return u != nil && u.ID == userID
}

// Token is the access token the session was resolved from.
func (c *Context) Token() string {
	if c == nil {
		return ""
	}
	return c.token
}

type ctxKey struct{}

func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the request's session, or an empty signed-out one.
func FromContext(ctx context.Context) *Context {
	if sc, ok := ctx.Value(ctxKey{}).(*Context); ok && sc != nil {
		return sc
	}
	return &Context{}
}
