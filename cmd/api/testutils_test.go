package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"reaheats/internal/auth"
	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/domain/storage"
	"reaheats/internal/gotrue"
	"reaheats/internal/images"
	"reaheats/internal/ratelimiter"
	"reaheats/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "handler-test-secret-handler-test-secret"

	aliceID = "0f5e7c84-5d7a-4f4e-9d33-1c2b3a4d5e01"
	bobID   = "0f5e7c84-5d7a-4f4e-9d33-1c2b3a4d5e02"

	pizzeriaID = "6b0f3c1e-2a4d-4c8b-9f10-7e6d5c4b3a01"
	sushiID    = "6b0f3c1e-2a4d-4c8b-9f10-7e6d5c4b3a02"
	tacoID     = "6b0f3c1e-2a4d-4c8b-9f10-7e6d5c4b3a03"

	aliceReviewID = "a1b2c3d4-0000-4000-8000-000000000001"
	bobReviewID   = "a1b2c3d4-0000-4000-8000-000000000002"
)

type mockRestaurantStore struct {
	listFunc    func(ctx context.Context) ([]restaurants.Restaurant, error)
	getByIDFunc func(ctx context.Context, id string) (*restaurants.Restaurant, error)
}

func (m *mockRestaurantStore) List(ctx context.Context) ([]restaurants.Restaurant, error) {
	if m.listFunc == nil {
		return nil, nil
	}
	return m.listFunc(ctx)
}

func (m *mockRestaurantStore) GetByID(ctx context.Context, id string) (*restaurants.Restaurant, error) {
	if m.getByIDFunc == nil {
		return nil, restaurants.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

type mockReviewStore struct {
	listRatingsFunc      func(ctx context.Context) ([]reviews.Rating, error)
	listByRestaurantFunc func(ctx context.Context, restaurantID string) ([]reviews.Review, error)
	listByUserFunc       func(ctx context.Context, userID string) ([]reviews.Review, error)
	getByIDFunc          func(ctx context.Context, id string) (*reviews.Review, error)
	createFunc           func(ctx context.Context, review *reviews.Review) error
	updateFunc           func(ctx context.Context, review *reviews.Review) error
	deleteFunc           func(ctx context.Context, reviewID, userID string) error

	listByRestaurantCalls int
	created               []reviews.Review
	updated               []reviews.Review
	deleted               []string
}

func (m *mockReviewStore) ListRatings(ctx context.Context) ([]reviews.Rating, error) {
	if m.listRatingsFunc == nil {
		return nil, nil
	}
	return m.listRatingsFunc(ctx)
}

func (m *mockReviewStore) ListByRestaurant(ctx context.Context, restaurantID string) ([]reviews.Review, error) {
	m.listByRestaurantCalls++
	if m.listByRestaurantFunc == nil {
		return nil, nil
	}
	return m.listByRestaurantFunc(ctx, restaurantID)
}

func (m *mockReviewStore) ListByUser(ctx context.Context, userID string) ([]reviews.Review, error) {
	if m.listByUserFunc == nil {
		return nil, nil
	}
	return m.listByUserFunc(ctx, userID)
}

func (m *mockReviewStore) GetByID(ctx context.Context, id string) (*reviews.Review, error) {
	if m.getByIDFunc == nil {
		return nil, reviews.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockReviewStore) Create(ctx context.Context, review *reviews.Review) error {
	m.created = append(m.created, *review)
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, review)
}

func (m *mockReviewStore) Update(ctx context.Context, review *reviews.Review) error {
	m.updated = append(m.updated, *review)
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, review)
}

func (m *mockReviewStore) Delete(ctx context.Context, reviewID, userID string) error {
	m.deleted = append(m.deleted, reviewID)
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, reviewID, userID)
}

type mockUserStore struct {
	emails map[string]string
	err    error
	calls  int
}

func (m *mockUserStore) EmailsByID(ctx context.Context, ids []string) (map[string]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]string)
	for _, id := range ids {
		if email, ok := m.emails[id]; ok {
			out[id] = email
		}
	}
	return out, nil
}

type mockAuthRemote struct {
	signInFunc  func(ctx context.Context, email, password string) (*gotrue.Session, error)
	signUpFunc  func(ctx context.Context, email, password string) (*gotrue.Session, error)
	signedOut   []string
	signOutFunc func(ctx context.Context, token string) error
}

func (m *mockAuthRemote) SignInWithPassword(ctx context.Context, email, password string) (*gotrue.Session, error) {
	return m.signInFunc(ctx, email, password)
}

func (m *mockAuthRemote) SignUp(ctx context.Context, email, password string) (*gotrue.Session, error) {
	return m.signUpFunc(ctx, email, password)
}

func (m *mockAuthRemote) SignOut(ctx context.Context, token string) error {
	m.signedOut = append(m.signedOut, token)
	if m.signOutFunc == nil {
		return nil
	}
	return m.signOutFunc(ctx, token)
}

type testDeps struct {
	restaurants *mockRestaurantStore
	reviews     *mockReviewStore
	users       *mockUserStore
	remote      *mockAuthRemote
}

func newTestApplication(t *testing.T) (*application, *testDeps) {
	t.Helper()

	deps := &testDeps{
		restaurants: &mockRestaurantStore{},
		reviews:     &mockReviewStore{},
		users:       &mockUserStore{},
		remote:      &mockAuthRemote{},
	}

	imageResolver, err := images.New("")
	require.NoError(t, err)

	cfg := config{
		env: "test",
		auth: authConfig{
			basic: basicConfig{user: "admin", pass: "secret"},
			token: tokenConfig{secret: testSecret, aud: "authenticated", accessTokenExp: time.Hour},
		},
		rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true},
	}

	app := &application{
		config: cfg,
		store: &storage.Container{
			Restaurants: deps.restaurants,
			Reviews:     deps.reviews,
			Users:       deps.users,
		},
		logger:      zap.NewNop().Sugar(),
		sessions:    session.NewManager(deps.remote, auth.NewJWTAuthenticator(testSecret, "authenticated")),
		flashes:     sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")),
		images:      imageResolver,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}
	return app, deps
}

func accessToken(t *testing.T, userID, email string) string {
	t.Helper()
	claims := auth.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newRequest(method, target string, form url.Values, token string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	}
	return req
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sampleRestaurants() []restaurants.Restaurant {
	return []restaurants.Restaurant{
		{ID: pizzeriaID, Name: "Bella Pizzeria", Cuisine: "Italian", City: "Boston"},
		{ID: sushiID, Name: "Sakura Sushi", Cuisine: "Japanese", City: "Seattle"},
		{ID: tacoID, Name: "Taco Stand", Cuisine: "Mexican", City: "Austin"},
	}
}

func restaurantByID(id string) (*restaurants.Restaurant, error) {
	for _, r := range sampleRestaurants() {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, restaurants.ErrNotFound
}
