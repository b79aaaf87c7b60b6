package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"reaheats/internal/gotrue"
	"reaheats/internal/session"
	"reaheats/internal/views"
)

// setAuthCookies stores the access token as an HttpOnly cookie that lives as
// long as the token does.
func (app *application) setAuthCookies(w http.ResponseWriter, accessToken string, expiresIn time.Duration) {
	if expiresIn <= 0 {
		expiresIn = app.config.auth.token.accessTokenExp
	}
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   app.config.env == "production", // must be true in production (HTTPS)
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(expiresIn.Seconds()),
	})
}

func (app *application) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

type credentialsPayload struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=72"`
}

func authMode(raw string) views.AuthMode {
	if views.AuthMode(raw) == views.ModeSignUp {
		return views.ModeSignUp
	}
	return views.ModeSignIn
}

func authTitle(mode views.AuthMode) string {
	if mode == views.ModeSignUp {
		return "Create account"
	}
	return "Sign in"
}

func (app *application) authPageHandler(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).SignedIn() {
		redirect(w, r, "/")
		return
	}

	mode := authMode(r.URL.Query().Get("mode"))
	app.render(w, r, http.StatusOK, authTitle(mode), views.Alert{}, views.AuthPage(views.AuthData{Mode: mode}))
}

// authSubmitHandler signs the user in or up depending on the form's mode.
func (app *application) authSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.renderStatus(w, r, http.StatusBadRequest, views.ErrorPage(http.StatusBadRequest, "The form could not be read."))
		return
	}

	mode := authMode(r.PostForm.Get("mode"))
	payload := credentialsPayload{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	data := views.AuthData{Mode: mode, Email: payload.Email}

	if err := Validate.Struct(payload); err != nil {
		data.Error = "Please enter a valid email and a password of at least 6 characters"
		app.render(w, r, http.StatusUnprocessableEntity, authTitle(mode), views.Alert{}, views.AuthPage(data))
		return
	}

	ctx := r.Context()

	var (
		grant *session.Grant
		err   error
	)
	if mode == views.ModeSignUp {
		grant, err = app.sessions.SignUp(ctx, payload.Email, payload.Password)
	} else {
		grant, err = app.sessions.SignIn(ctx, payload.Email, payload.Password)
	}

	switch {
	case errors.Is(err, session.ErrConfirmationRequired):
		data.Mode = views.ModeSignIn
		data.Notice = "Check your email to confirm your account, then sign in."
		app.render(w, r, http.StatusOK, authTitle(data.Mode), views.Alert{}, views.AuthPage(data))
		return
	case err != nil:
		status := http.StatusBadGateway
		data.Error = "Authentication failed. Please try again."

		var apiErr *gotrue.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			status = apiErr.StatusCode
			data.Error = apiErr.Message
		} else {
			app.logger.Errorw("auth service error", "mode", string(mode), "error", err.Error())
		}

		app.render(w, r, status, authTitle(mode), views.Alert{}, views.AuthPage(data))
		return
	}

	app.setAuthCookies(w, grant.AccessToken, grant.ExpiresIn)
	app.addFlash(w, r, views.Alert{Kind: views.AlertSuccess, Message: "Welcome, " + grant.User.Email})
	redirect(w, r, "/")
}

func (app *application) signOutHandler(w http.ResponseWriter, r *http.Request) {
	sc := session.FromContext(r.Context())
	if err := app.sessions.SignOut(r.Context(), sc); err != nil {
		app.logger.Warnw("remote sign out failed", "error", err.Error())
	}

	app.clearAuthCookies(w)
	redirect(w, r, "/")
}
