package views

import (
	"context"
	"io"
	"strings"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/ratings"
	"reaheats/internal/session"

	"github.com/a-h/templ"
)

const AppName = "ReahEats"

type AlertKind string

const (
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
	AlertInfo    AlertKind = "info"
)

type Alert struct {
	Kind    AlertKind
	Message string
}

func (a Alert) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if a.Message == "" {
			return nil
		}
		kind := a.Kind
		if kind == "" {
			kind = AlertInfo
		}
		p := newPrinter(ctx, w)
		p.rawf(`<div class="alert alert-%s" role="alert">`, attr(string(kind)))
		p.text(a.Message)
		p.raw(`</div>`)
		return p.err
	})
}

// Navbar reflects the session: My Reviews and Sign Out only when signed in.
func Navbar(user *session.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<nav class="navbar"><div class="container navbar-container">`)
		p.raw(`<a href="/" class="navbar-brand"><span class="logo-icon">&#127869;</span><span class="logo-text">` + AppName + `</span></a>`)
		p.raw(`<div class="navbar-links">`)
		p.raw(`<a href="/" class="nav-link">Home</a>`)
		if user != nil {
			p.raw(`<a href="/my-reviews" class="nav-link">My Reviews</a>`)
		}
		p.raw(`<a href="/about" class="nav-link">About</a>`)
		if user != nil {
			p.raw(`<div class="navbar-user"><span class="user-email">`)
			p.text(user.Email)
			p.raw(`</span><form method="post" action="/auth/signout" class="inline-form">`)
			p.raw(`<button type="submit" class="btn btn-secondary btn-sm">Sign Out</button></form></div>`)
		} else {
			p.raw(`<a href="/auth" class="btn btn-primary btn-sm">Sign In</a>`)
		}
		p.raw(`</div></div></nav>`)
		return p.err
	})
}

// Page is the chrome shared by every view.
type Page struct {
	Title string
	User  *session.User
	Alert Alert
	Body  templ.Component
}

func Layout(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		title := AppName
		if page.Title != "" {
			title = page.Title + " | " + AppName
		}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body><div class="app">`)
		p.component(Navbar(page.User))
		p.raw(`<main>`)
		if page.Alert.Message != "" {
			p.raw(`<div class="container">`)
			p.component(page.Alert.Component())
			p.raw(`</div>`)
		}
		p.component(page.Body)
		p.raw(`</main></div><script src="/static/app.js" defer></script></body></html>`)
		return p.err
	})
}

// Card is one restaurant tile on the listing.
type Card struct {
	Restaurant restaurants.Restaurant
	Stats      ratings.Stats
	ImageURL   string
	// Hidden cards are rendered but filtered out by the current search term.
	Hidden bool
}

const descriptionPreview = 120

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// searchKey is what the inline listing filter matches keystrokes against.
func searchKey(r restaurants.Restaurant) string {
	return strings.ToLower(r.Name + "\n" + r.Cuisine + "\n" + r.City)
}

func RestaurantCard(c Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		r := c.Restaurant
		hidden := ""
		if c.Hidden {
			hidden = " hidden"
		}
		p.rawf(`<a href="%s" class="restaurant-card-link" data-search="%s"%s>`, href("/restaurant/"+r.ID), attr(searchKey(r)), hidden)
		p.raw(`<div class="card restaurant-card"><div class="restaurant-card-image-wrapper">`)
		p.rawf(`<img src="%s" alt="%s" class="card-img restaurant-card-image" loading="lazy">`, href(c.ImageURL), attr(r.Name))
		p.raw(`<div class="restaurant-cuisine-badge">`)
		p.text(r.Cuisine)
		p.raw(`</div></div><div class="card-body"><h3 class="card-title">`)
		p.text(r.Name)
		p.raw(`</h3><p class="restaurant-location"><span class="location-icon">&#128205;</span>`)
		p.text(r.City)
		p.raw(`</p>`)

		p.raw(`<div class="restaurant-rating-info">`)
		p.component(StarRating{Value: ratings.Stars(c.Stats.Average), ReadOnly: true, Size: StarsSmall}.Component())
		p.raw(`<span class="rating-text">`)
		p.text(c.Stats.Summary())
		p.raw(`</span></div>`)

		p.raw(`<p class="card-text restaurant-description">`)
		p.text(truncate(r.Description, descriptionPreview))
		p.raw(`</p></div></div></a>`)
		return p.err
	})
}
