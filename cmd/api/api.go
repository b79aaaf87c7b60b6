package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reaheats/internal/domain/storage"
	"reaheats/internal/images"
	"reaheats/internal/ratelimiter"
	"reaheats/internal/session"
	"reaheats/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       *storage.Container
	logger      *zap.SugaredLogger
	sessions    *session.Manager
	flashes     sessions.Store
	images      *images.Resolver
	rateLimiter *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	auth        authConfig
	session     sessionConfig
	cloudinary  string
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic  basicConfig
	token  tokenConfig
	remote remoteAuthConfig
}

type tokenConfig struct {
	secret         string
	aud            string
	accessTokenExp time.Duration
}

type basicConfig struct {
	user string
	pass string
}

type remoteAuthConfig struct {
	url     string
	anonKey string
}

type sessionConfig struct {
	secret string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	r.Group(func(r chi.Router) {
		r.Use(app.sessionMiddleware)

		r.NotFound(app.notFoundPage)

		r.Get("/", app.listRestaurantsHandler)
		r.Get("/about", app.aboutHandler)
		r.Get("/restaurant/{restaurantID}", app.restaurantDetailHandler)

		r.Get("/auth", app.authPageHandler)
		r.With(app.RateLimiterMiddleware).Post("/auth", app.authSubmitHandler)
		r.Post("/auth/signout", app.signOutHandler)

		// Routes below need a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(app.RequireSession)

			r.Get("/restaurant/{restaurantID}/review", app.reviewFormHandler)
			r.Post("/restaurant/{restaurantID}/review", app.submitReviewHandler)
			r.Get("/restaurant/{restaurantID}/review/{reviewID}", app.reviewFormHandler)
			r.Post("/restaurant/{restaurantID}/review/{reviewID}", app.submitReviewHandler)
			r.Post("/restaurant/{restaurantID}/reviews/{reviewID}/delete", app.deleteRestaurantReviewHandler)

			r.Get("/my-reviews", app.myReviewsHandler)
			r.Post("/my-reviews/{reviewID}/delete", app.deleteMyReviewHandler)
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))

		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		r.With(app.BasicAuthMiddleware()).Get("/metrics", promhttp.Handler().ServeHTTP)

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", app.listRestaurantsJSONHandler)
			r.Get("/{restaurantID}", app.getRestaurantJSONHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
