package main

import (
	"net/http"

	"reaheats/internal/views"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

// serverErrorPage renders the HTML error page for failures that leave a view
// with nothing to show.
func (app *application) serverErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.renderStatus(w, r, http.StatusInternalServerError,
		views.ErrorPage(http.StatusInternalServerError, "Something went wrong on our side. Please try again shortly."))
}

func (app *application) notFoundPage(w http.ResponseWriter, r *http.Request) {
	app.renderStatus(w, r, http.StatusNotFound,
		views.ErrorPage(http.StatusNotFound, "We couldn't find the page you were looking for."))
}

func (app *application) rateLimitExceededPage(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	app.renderStatus(w, r, http.StatusTooManyRequests,
		views.ErrorPage(http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again."))
}
