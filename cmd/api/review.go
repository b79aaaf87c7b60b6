package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/session"
	"reaheats/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultRating = 5

type reviewPayload struct {
	Rating  int    `validate:"min=1,max=5"`
	Title   string `validate:"notblank,max=200"`
	Comment string `validate:"notblank,max=5000"`
}

// reviewFormError maps validation failures to the message shown above the form.
// Blank fields take precedence over the rating.
func reviewFormError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Please check the form and try again"
	}
	for _, fe := range ve {
		if fe.Tag() == "notblank" {
			return "Please fill in all fields"
		}
	}
	for _, fe := range ve {
		if fe.Field() == "Rating" {
			return "Rating must be between 1 and 5"
		}
		if fe.Tag() == "max" {
			return fe.Field() + " is too long"
		}
	}
	return "Please check the form and try again"
}

// mutationError picks the status and inline message for a failed write.
// Database errors carry a message fit to show as-is.
func mutationError(err error, fallback string) (int, string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, reviews.ErrNotFound):
		return http.StatusNotFound, "This review no longer exists"
	case errors.As(err, &pgErr):
		return http.StatusUnprocessableEntity, pgErr.Message
	default:
		return http.StatusInternalServerError, fallback
	}
}

func formTitle(d views.ReviewFormData) string {
	if d.Editing() {
		return "Edit review"
	}
	return "Write a review"
}

// loadOwnedReview fetches the review named by the route and checks that it
// belongs to rest and to the signed-in user. Anything else redirects back to
// the restaurant.
func (app *application) loadOwnedReview(w http.ResponseWriter, r *http.Request, rest *restaurants.Restaurant) (*reviews.Review, bool) {
	back := "/restaurant/" + rest.ID
	reviewID := chi.URLParam(r, "reviewID")
	if !validID(reviewID) {
		redirect(w, r, back)
		return nil, false
	}

	ctx := r.Context()
	rv, err := app.store.Reviews.GetByID(ctx, reviewID)
	switch {
	case errors.Is(err, reviews.ErrNotFound):
		redirect(w, r, back)
	case err != nil:
		app.serverErrorPage(w, r, err)
	case rv.RestaurantID != rest.ID || !session.FromContext(ctx).Owns(rv.UserID):
		redirect(w, r, back)
	default:
		return rv, true
	}
	return nil, false
}

func (app *application) reviewFormHandler(w http.ResponseWriter, r *http.Request) {
	rest, ok := app.loadRestaurant(w, r)
	if !ok {
		return
	}

	data := views.ReviewFormData{Restaurant: *rest, Rating: defaultRating}
	if chi.URLParam(r, "reviewID") != "" {
		rv, ok := app.loadOwnedReview(w, r, rest)
		if !ok {
			return
		}
		data.ReviewID = rv.ID
		data.Rating = rv.Rating
		data.Title = rv.Title
		data.Comment = rv.Comment
	}

	app.render(w, r, http.StatusOK, formTitle(data), views.Alert{}, views.ReviewFormPage(data))
}

// submitReviewHandler creates a review, or updates one when the route names it.
func (app *application) submitReviewHandler(w http.ResponseWriter, r *http.Request) {
	rest, ok := app.loadRestaurant(w, r)
	if !ok {
		return
	}

	data := views.ReviewFormData{Restaurant: *rest}
	if chi.URLParam(r, "reviewID") != "" {
		rv, ok := app.loadOwnedReview(w, r, rest)
		if !ok {
			return
		}
		data.ReviewID = rv.ID
	}

	if err := r.ParseForm(); err != nil {
		app.renderStatus(w, r, http.StatusBadRequest, views.ErrorPage(http.StatusBadRequest, "The form could not be read."))
		return
	}

	// the picker commits only positions 1..5; anything else leaves it unset
	picker := views.StarRating{Name: "rating"}
	if pos, err := strconv.Atoi(r.PostForm.Get("rating")); err == nil {
		picker.Click(pos)
	}
	payload := reviewPayload{
		Rating:  picker.Value,
		Title:   r.PostForm.Get("title"),
		Comment: r.PostForm.Get("comment"),
	}
	data.Rating = payload.Rating
	data.Title = payload.Title
	data.Comment = payload.Comment

	if err := Validate.Struct(payload); err != nil {
		data.Error = reviewFormError(err)
		app.render(w, r, http.StatusUnprocessableEntity, formTitle(data), views.Alert{}, views.ReviewFormPage(data))
		return
	}

	ctx := r.Context()
	review := &reviews.Review{
		ID:           data.ReviewID,
		RestaurantID: rest.ID,
		UserID:       session.FromContext(ctx).User().ID,
		Rating:       payload.Rating,
		Title:        strings.TrimSpace(payload.Title),
		Comment:      strings.TrimSpace(payload.Comment),
	}

	var err error
	notice := "Your review has been published"
	if data.Editing() {
		err = app.store.Reviews.Update(ctx, review)
		notice = "Your review has been updated"
	} else {
		err = app.store.Reviews.Create(ctx, review)
	}
	if err != nil {
		app.logger.Errorw("error saving review", "restaurant_id", rest.ID, "review_id", review.ID, "error", err.Error())
		var status int
		status, data.Error = mutationError(err, "Failed to submit review")
		app.render(w, r, status, formTitle(data), views.Alert{}, views.ReviewFormPage(data))
		return
	}

	app.addFlash(w, r, views.Alert{Kind: views.AlertSuccess, Message: notice})
	redirect(w, r, "/restaurant/"+rest.ID)
}
