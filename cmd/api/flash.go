package main

import (
	"net/http"
	"strings"

	"reaheats/internal/views"
)

const flashSessionName = "reaheats_flash"

// addFlash queues a one-shot alert for the next rendered page.
func (app *application) addFlash(w http.ResponseWriter, r *http.Request, alert views.Alert) {
	s, err := app.flashes.Get(r, flashSessionName)
	if err != nil {
		app.logger.Warnw("flash session could not be decoded", "error", err.Error())
	}
	s.AddFlash(string(alert.Kind) + "|" + alert.Message)
	if err := s.Save(r, w); err != nil {
		app.logger.Errorw("error saving flash", "error", err.Error())
	}
}

func (app *application) popFlash(w http.ResponseWriter, r *http.Request) views.Alert {
	if app.flashes == nil {
		return views.Alert{}
	}
	s, err := app.flashes.Get(r, flashSessionName)
	if err != nil {
		return views.Alert{}
	}
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return views.Alert{}
	}
	if err := s.Save(r, w); err != nil {
		app.logger.Errorw("error saving flash", "error", err.Error())
	}

	raw, _ := flashes[len(flashes)-1].(string)
	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return views.Alert{}
	}
	return views.Alert{Kind: views.AlertKind(kind), Message: message}
}
