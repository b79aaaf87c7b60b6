package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/ratings"
	"reaheats/internal/session"

	"github.com/a-h/templ"
)

const confirmDelete = `return confirm('Are you sure you want to delete this review?')`

type HomeData struct {
	Cards []Card
	Term  string
}

// Visible counts the cards the current term leaves shown.
func (d HomeData) Visible() int {
	n := 0
	for _, c := range d.Cards {
		if !c.Hidden {
			n++
		}
	}
	return n
}

func HomePage(d HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<div class="home-page"><section class="hero-section"><div class="container"><div class="hero-content">`)
		p.raw(`<h1 class="hero-title">Discover Your Next Favorite Restaurant</h1>`)
		p.raw(`<p class="hero-subtitle">Read reviews from food lovers and share your own dining experiences</p>`)
		p.raw(`<form class="search-box" method="get" action="/" role="search">`)
		p.rawf(`<input type="text" name="q" class="search-input" id="restaurant-search" autocomplete="off" placeholder="Search by restaurant name, cuisine, or city..." value="%s">`, attr(d.Term))
		p.raw(`<span class="search-icon">&#128269;</span></form></div></div></section>`)

		p.raw(`<section class="restaurants-section py-6"><div class="container"><h2 class="section-title" data-default="Top Rated Restaurants">`)
		if d.Term != "" {
			p.raw(`Search Results`)
		} else {
			p.raw(`Top Rated Restaurants`)
		}
		p.raw(`</h2>`)

		p.raw(`<div class="grid grid-cols-3" id="restaurant-grid">`)
		for _, c := range d.Cards {
			p.component(RestaurantCard(c))
		}
		p.raw(`</div>`)

		hidden := ""
		if d.Visible() > 0 {
			hidden = " hidden"
		}
		p.rawf(`<div class="empty-state" id="restaurant-empty"%s><p class="empty-state-text">No restaurants found matching your search.</p></div>`, hidden)
		p.raw(`</div></section></div>`)
		return p.err
	})
}

type DetailData struct {
	Restaurant restaurants.Restaurant
	ImageURL   string
	Reviews    []reviews.Review
	Stats      ratings.Stats
	Session    *session.Context
}

func DetailPage(d DetailData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		r := d.Restaurant

		p.raw(`<div class="restaurant-detail-page"><div class="restaurant-hero">`)
		p.rawf(`<img src="%s" alt="%s" class="restaurant-hero-image">`, href(d.ImageURL), attr(r.Name))
		p.raw(`<div class="restaurant-hero-overlay"><div class="container"><div class="restaurant-hero-content">`)
		p.raw(`<h1 class="restaurant-name">`)
		p.text(r.Name)
		p.raw(`</h1><div class="restaurant-meta"><span class="cuisine-tag">`)
		p.text(r.Cuisine)
		p.raw(`</span><span class="location-text">&#128205; `)
		p.text(r.City)
		p.raw(`</span></div>`)

		if len(d.Reviews) > 0 {
			p.raw(`<div class="restaurant-rating-summary">`)
			p.component(StarRating{Value: ratings.Stars(d.Stats.Average), ReadOnly: true, Size: StarsLarge}.Component())
			p.raw(`<span class="rating-summary-text">`)
			p.text(d.Stats.Summary())
			p.raw(`</span></div>`)
		}
		p.raw(`</div></div></div></div>`)

		p.raw(`<div class="container py-6"><div class="restaurant-info-section"><div class="info-card"><h2>About</h2>`)
		p.raw(`<p class="restaurant-description-full">`)
		p.text(r.Description)
		p.raw(`</p><p class="restaurant-address"><strong>Address:</strong> `)
		p.text(r.Address + ", " + r.City)
		p.raw(`</p></div>`)

		if d.Session.SignedIn() {
			p.rawf(`<a href="%s" class="btn btn-primary btn-add-review">Write a Review</a>`, href("/restaurant/"+r.ID+"/review"))
		} else {
			p.raw(`<div class="auth-prompt"><p><a href="/auth">Sign in</a> to write a review</p></div>`)
		}
		p.raw(`</div>`)

		p.raw(`<div class="reviews-section mt-6"><h2 class="reviews-title">Reviews</h2>`)
		if len(d.Reviews) == 0 {
			p.raw(`<div class="empty-reviews"><p>No reviews yet. Be the first to review this restaurant!</p></div>`)
		} else {
			p.raw(`<div class="reviews-list">`)
			for _, rv := range d.Reviews {
				p.component(reviewCard(r.ID, rv, d.Session.Owns(rv.UserID)))
			}
			p.raw(`</div>`)
		}
		p.raw(`</div></div></div>`)
		return p.err
	})
}

func initial(email string) string {
	r, _ := utf8.DecodeRuneInString(email)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func reviewCard(restaurantID string, rv reviews.Review, owner bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.rawf(`<div class="review-card" id="review-%s"><div class="review-header"><div class="review-author-info">`, attr(rv.ID))
		p.raw(`<div class="review-author-avatar">`)
		p.text(initial(rv.AuthorEmail))
		p.raw(`</div><div><p class="review-author">`)
		p.text(rv.AuthorEmail)
		p.raw(`</p><p class="review-date">`)
		p.text(rv.CreatedAt.Format("January 2, 2006"))
		p.raw(`</p></div></div>`)
		p.component(StarRating{Value: rv.Rating, ReadOnly: true, Size: StarsSmall}.Component())
		p.raw(`</div><h3 class="review-title">`)
		p.text(rv.Title)
		p.raw(`</h3><p class="review-comment">`)
		p.text(rv.Comment)
		p.raw(`</p>`)

		if owner {
			p.raw(`<div class="review-actions">`)
			p.rawf(`<a href="%s" class="btn btn-secondary btn-sm">Edit</a>`, href("/restaurant/"+restaurantID+"/review/"+rv.ID))
			p.rawf(`<form method="post" action="%s" class="inline-form" onsubmit="%s">`, href("/restaurant/"+restaurantID+"/reviews/"+rv.ID+"/delete"), attr(confirmDelete))
			p.raw(`<button type="submit" class="btn btn-outline btn-sm">Delete</button></form></div>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

type ReviewFormData struct {
	Restaurant restaurants.Restaurant
	// ReviewID is empty when creating.
	ReviewID string
	Rating   int
	Title    string
	Comment  string
	Error    string
}

func (d ReviewFormData) Editing() bool {
	return d.ReviewID != ""
}

func (d ReviewFormData) Action() string {
	if d.Editing() {
		return "/restaurant/" + d.Restaurant.ID + "/review/" + d.ReviewID
	}
	return "/restaurant/" + d.Restaurant.ID + "/review"
}

func ReviewFormPage(d ReviewFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		heading, submit := "Write a Review", "Submit Review"
		if d.Editing() {
			heading, submit = "Edit Your Review", "Update Review"
		}

		p.raw(`<div class="review-form-page"><div class="container py-6"><div class="review-form-container">`)
		p.raw(`<div class="review-form-header"><h1>`)
		p.text(heading)
		p.raw(`</h1><h2 class="restaurant-name-subtitle">`)
		p.text(d.Restaurant.Name)
		p.raw(`</h2></div>`)

		p.component(Alert{Kind: AlertError, Message: d.Error}.Component())

		p.rawf(`<form method="post" action="%s" class="review-form">`, href(d.Action()))
		p.raw(`<div class="form-group"><label class="form-label">Your Rating</label><div class="rating-selector">`)
		p.component(StarRating{Value: d.Rating, Size: StarsLarge, Name: "rating"}.Component())
		p.rawf(`<span class="rating-label">%d %s</span></div></div>`, d.Rating, plural(d.Rating, "star", "stars"))

		p.raw(`<div class="form-group"><label class="form-label" for="title">Review Title</label>`)
		p.rawf(`<input type="text" id="title" name="title" class="form-control" placeholder="Sum up your experience in a few words" value="%s" required></div>`, attr(d.Title))

		p.raw(`<div class="form-group"><label class="form-label" for="comment">Your Review</label>`)
		p.raw(`<textarea id="comment" name="comment" class="form-control" rows="8" required placeholder="Share your thoughts about the food, service, ambiance, and overall experience...">`)
		p.text(d.Comment)
		p.raw(`</textarea></div>`)

		p.raw(`<div class="form-actions">`)
		p.rawf(`<a href="%s" class="btn btn-secondary">Cancel</a>`, href("/restaurant/"+d.Restaurant.ID))
		p.rawf(`<button type="submit" class="btn btn-primary">%s</button>`, submit)
		p.raw(`</div></form></div></div></div>`)
		return p.err
	})
}

type MyReviewsData struct {
	Reviews []reviews.Review
	// Images maps restaurant id to its thumbnail URL.
	Images map[string]string
}

func MyReviewsPage(d MyReviewsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<div class="my-reviews-page"><div class="container py-6"><div class="page-header">`)
		p.raw(`<h1>My Reviews</h1><p class="page-subtitle">Manage all your restaurant reviews in one place</p></div>`)

		if len(d.Reviews) == 0 {
			p.raw(`<div class="empty-state-card"><div class="empty-state-icon">&#128221;</div><h2>No Reviews Yet</h2>`)
			p.raw(`<p>You haven't written any reviews yet. Start exploring restaurants and share your experiences!</p>`)
			p.raw(`<a href="/" class="btn btn-primary mt-3">Discover Restaurants</a></div></div></div>`)
			return p.err
		}

		p.raw(`<div class="my-reviews-grid">`)
		for _, rv := range d.Reviews {
			rest := restaurants.Restaurant{ID: rv.RestaurantID}
			if rv.Restaurant != nil {
				rest = *rv.Restaurant
			}
			p.rawf(`<div class="my-review-card" id="review-%s">`, attr(rv.ID))
			p.rawf(`<a href="%s" class="review-restaurant-link">`, href("/restaurant/"+rv.RestaurantID))
			p.rawf(`<img src="%s" alt="%s" class="review-restaurant-image">`, href(d.Images[rest.ID]), attr(rest.Name))
			p.raw(`<div class="review-restaurant-info"><h3 class="review-restaurant-name">`)
			p.text(rest.Name)
			p.raw(`</h3><p class="review-restaurant-cuisine">`)
			p.text(rest.Cuisine)
			p.raw(`</p></div></a>`)

			p.raw(`<div class="review-content"><div class="review-rating-date">`)
			p.component(StarRating{Value: rv.Rating, ReadOnly: true, Size: StarsSmall}.Component())
			p.raw(`<span class="review-date-text">`)
			p.text(rv.CreatedAt.Format("1/2/2006"))
			p.raw(`</span></div><h4 class="review-title-text">`)
			p.text(rv.Title)
			p.raw(`</h4><p class="review-comment-text">`)
			p.text(rv.Comment)
			p.raw(`</p><div class="review-card-actions">`)
			p.rawf(`<a href="%s" class="btn btn-secondary btn-sm">Edit Review</a>`, href("/restaurant/"+rv.RestaurantID+"/review/"+rv.ID))
			p.rawf(`<form method="post" action="%s" class="inline-form" onsubmit="%s">`, href("/my-reviews/"+rv.ID+"/delete"), attr(confirmDelete))
			p.raw(`<button type="submit" class="btn btn-outline btn-sm">Delete</button></form></div></div></div>`)
		}
		p.raw(`</div></div></div>`)
		return p.err
	})
}

type AuthMode string

const (
	ModeSignIn AuthMode = "signin"
	ModeSignUp AuthMode = "signup"
)

type AuthData struct {
	Mode  AuthMode
	Email string
	Error string
	// Notice is shown after a sign-up that awaits email confirmation.
	Notice string
}

func AuthPage(d AuthData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		mode := d.Mode
		if mode != ModeSignUp {
			mode = ModeSignIn
		}
		heading, submit, switchText, switchMode := "Welcome Back", "Sign In", "Don't have an account? Sign up", ModeSignUp
		if mode == ModeSignUp {
			heading, submit, switchText, switchMode = "Create Account", "Sign Up", "Already have an account? Sign in", ModeSignIn
		}

		p.raw(`<div class="auth-page"><div class="container py-6"><div class="auth-container">`)
		p.raw(`<h1 class="auth-title">`)
		p.text(heading)
		p.raw(`</h1>`)
		p.component(Alert{Kind: AlertError, Message: d.Error}.Component())
		p.component(Alert{Kind: AlertSuccess, Message: d.Notice}.Component())

		p.raw(`<form method="post" action="/auth" class="auth-form">`)
		p.rawf(`<input type="hidden" name="mode" value="%s">`, attr(string(mode)))
		p.raw(`<div class="form-group"><label class="form-label" for="email">Email</label>`)
		p.rawf(`<input type="email" id="email" name="email" class="form-control" value="%s" required autocomplete="email"></div>`, attr(d.Email))
		p.raw(`<div class="form-group"><label class="form-label" for="password">Password</label>`)
		p.raw(`<input type="password" id="password" name="password" class="form-control" required minlength="6" autocomplete="current-password"></div>`)
		p.rawf(`<button type="submit" class="btn btn-primary btn-block">%s</button></form>`, submit)
		p.rawf(`<p class="auth-switch"><a href="%s">%s</a></p>`, href("/auth?mode="+string(switchMode)), templ.EscapeString(switchText))
		p.raw(`</div></div></div>`)
		return p.err
	})
}

func AboutPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.raw(`<div class="about-page"><div class="container py-6"><div class="about-hero">`)
		p.rawf(`<h1>About %s</h1>`, AppName)
		p.raw(`<p class="about-tagline">Your trusted community for authentic restaurant reviews and culinary discoveries</p></div>`)
		p.raw(`<div class="about-content">`)
		for _, s := range aboutSections {
			p.rawf(`<section class="about-section"><div class="about-section-icon">%s</div><h2>`, s.icon)
			p.text(s.title)
			p.raw(`</h2><p>`)
			p.text(s.body)
			p.raw(`</p></section>`)
		}
		p.raw(`</div></div></div>`)
		return p.err
	})
}

var aboutSections = []struct {
	icon, title, body string
}{
	{"&#127869;", "Our Mission", AppName + " was created to help food lovers discover exceptional dining experiences and share their honest opinions about restaurants. We believe that authentic reviews from real diners are the best way to find your next favorite meal."},
	{"&#11088;", "What We Offer", "Browse restaurants, read detailed reviews from fellow food enthusiasts, and contribute your own experiences. Every rating you see is computed from the reviews our community writes."},
	{"&#128101;", "Our Community", "Reviews are written by signed-in members. You can edit or delete your own reviews at any time from the restaurant page or from My Reviews."},
}

// ErrorPage is shown for failures that leave nothing to render.
func ErrorPage(status int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		p.rawf(`<div class="container py-6 text-center"><h1>%d</h1><p>`, status)
		p.text(message)
		p.raw(`</p><a href="/" class="btn btn-primary mt-3">Back to restaurants</a></div>`)
		return p.err
	})
}

// StatusTitle is the page title for an error status.
func StatusTitle(status int) string {
	return fmt.Sprintf("Error %d", status)
}
