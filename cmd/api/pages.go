package main

import (
	"net/http"

	"reaheats/internal/views"
)

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "About", views.Alert{}, views.AboutPage())
}
