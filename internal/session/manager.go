package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"reaheats/internal/auth"
	"reaheats/internal/gotrue"
)

type EventType int

const (
	SignedIn EventType = iota + 1
	SignedOut
)

func (t EventType) String() string {
	switch t {
	case SignedIn:
		return "SIGNED_IN"
	case SignedOut:
		return "SIGNED_OUT"
	default:
		return "UNKNOWN"
	}
}

type Event struct {
	Type EventType
	User User
}

// Remote is the hosted auth API surface the manager drives.
type Remote interface {
	SignInWithPassword(ctx context.Context, email, password string) (*gotrue.Session, error)
	SignUp(ctx context.Context, email, password string) (*gotrue.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Grant is a freshly issued session to be stored in the browser.
type Grant struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        User
}

var ErrConfirmationRequired = errors.New("check your email to confirm your account")

// Manager resolves sessions from access tokens and publishes auth state
// changes to its subscribers.
type Manager struct {
	remote   Remote
	verifier auth.Authenticator

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewManager(remote Remote, verifier auth.Authenticator) *Manager {
	return &Manager{
		remote:   remote,
		verifier: verifier,
		subs:     make(map[int]func(Event)),
	}
}

// Subscribe registers fn for auth state changes until the returned function is
// called. Calling it more than once is harmless.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) publish(e Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Resolve turns an access token into a session. Missing, expired or invalid
// tokens yield a signed-out session.
func (m *Manager) Resolve(token string) *Context {
	if token == "" {
		return &Context{}
	}
	claims, err := m.verifier.ValidateAccessToken(token)
	if err != nil {
		return &Context{}
	}
	return NewContext(&User{ID: claims.Subject, Email: claims.Email}, token)
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (*Grant, error) {
	s, err := m.remote.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	g := grantFrom(s)
	m.publish(Event{Type: SignedIn, User: g.User})
	return g, nil
}

// SignUp registers the user. If the service withholds tokens until the email is
// confirmed, ErrConfirmationRequired is returned and no event is published.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*Grant, error) {
	s, err := m.remote.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, ErrConfirmationRequired
	}
	g := grantFrom(s)
	m.publish(Event{Type: SignedIn, User: g.User})
	return g, nil
}

// SignOut ends the remote session. SignedOut is published even when the remote
// call fails, since the caller drops the local session regardless.
func (m *Manager) SignOut(ctx context.Context, sc *Context) error {
	u := sc.User()
	if u == nil {
		return nil
	}
	err := m.remote.SignOut(ctx, sc.Token())
	m.publish(Event{Type: SignedOut, User: *u})
	return err
}

func grantFrom(s *gotrue.Session) *Grant {
	return &Grant{
		AccessToken: s.AccessToken,
		ExpiresIn:   time.Duration(s.ExpiresIn) * time.Second,
		User:        User{ID: s.User.ID, Email: s.User.Email},
	}
}
