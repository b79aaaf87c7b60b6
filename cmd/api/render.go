package main

import (
	"net/http"

	"reaheats/internal/session"
	"reaheats/internal/views"

	"github.com/a-h/templ"
)

// render wraps body in the page layout. A pending flash message is shown when
// the handler has no alert of its own.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, title string, alert views.Alert, body templ.Component) {
	// the client is gone or the request timed out; a late result must not be written
	if err := r.Context().Err(); err != nil {
		app.logger.Debugw("dropping response", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		return
	}

	if alert.Message == "" {
		alert = app.popFlash(w, r)
	}

	page := views.Layout(views.Page{
		Title: title,
		User:  session.FromContext(r.Context()).User(),
		Alert: alert,
		Body:  body,
	})

	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (app *application) renderStatus(w http.ResponseWriter, r *http.Request, status int, body templ.Component) {
	app.render(w, r, status, views.StatusTitle(status), views.Alert{}, body)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
