package main

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/domain/users"
	"reaheats/internal/images"
	"reaheats/internal/ratings"
	"reaheats/internal/session"
	"reaheats/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// rankedRestaurants fetches every restaurant with its rating stats, best rated first.
func (app *application) rankedRestaurants(ctx context.Context) ([]ratings.Ranked, error) {
	list, err := app.store.Restaurants.List(ctx)
	if err != nil {
		return nil, err
	}
	pairs, err := app.store.Reviews.ListRatings(ctx)
	if err != nil {
		return nil, err
	}
	return ratings.Rank(list, pairs), nil
}

func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	var alert views.Alert
	ranked, err := app.rankedRestaurants(r.Context())
	if err != nil {
		app.logger.Errorw("error fetching restaurants", "error", err.Error())
		alert = views.Alert{Kind: views.AlertError, Message: "We couldn't load restaurants right now. Please try again shortly."}
	}

	// every card is rendered so the inline filter can bring non-matches back
	needle := strings.ToLower(term)
	cards := make([]views.Card, 0, len(ranked))
	for _, rr := range ranked {
		cards = append(cards, views.Card{
			Restaurant: rr.Restaurant,
			Stats:      rr.Stats,
			ImageURL:   app.images.URL(rr.ImageURL, images.Card),
			Hidden:     !ratings.Matches(rr.Restaurant, needle),
		})
	}

	app.render(w, r, http.StatusOK, "", alert, views.HomePage(views.HomeData{Cards: cards, Term: term}))
}

func (app *application) restaurantDetailHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := app.loadDetail(w, r)
	if !ok {
		return
	}
	app.render(w, r, http.StatusOK, data.Restaurant.Name, views.Alert{}, views.DetailPage(*data))
}

// deleteRestaurantReviewHandler deletes one of the user's reviews from the
// detail page and re-renders it from the already loaded state.
func (app *application) deleteRestaurantReviewHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := app.loadDetail(w, r)
	if !ok {
		return
	}

	// only reviews listed on this restaurant's page can be deleted from it
	reviewID := chi.URLParam(r, "reviewID")
	if !slices.ContainsFunc(data.Reviews, func(rv reviews.Review) bool { return rv.ID == reviewID }) {
		redirect(w, r, "/restaurant/"+data.Restaurant.ID)
		return
	}

	status := http.StatusOK
	alert := views.Alert{Kind: views.AlertSuccess, Message: "Review deleted"}

	if err := app.store.Reviews.Delete(r.Context(), reviewID, data.Session.User().ID); err != nil {
		app.logger.Errorw("error deleting review", "review_id", reviewID, "error", err.Error())
		status, _ = mutationError(err, "")
		alert = views.Alert{Kind: views.AlertError, Message: "Failed to delete review"}
	} else {
		data.Reviews, data.Stats = ratings.Remove(data.Reviews, reviewID)
	}

	app.render(w, r, status, data.Restaurant.Name, alert, views.DetailPage(*data))
}

// loadRestaurant fetches the restaurant named by the route. When it returns
// false the response has already been written: a redirect to the listing for
// a missing restaurant, or an error page.
func (app *application) loadRestaurant(w http.ResponseWriter, r *http.Request) (*restaurants.Restaurant, bool) {
	id := chi.URLParam(r, "restaurantID")
	if !validID(id) {
		redirect(w, r, "/")
		return nil, false
	}

	rest, err := app.store.Restaurants.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, restaurants.ErrNotFound):
		redirect(w, r, "/")
	case err != nil:
		app.serverErrorPage(w, r, err)
	default:
		return rest, true
	}
	return nil, false
}

func (app *application) loadDetail(w http.ResponseWriter, r *http.Request) (*views.DetailData, bool) {
	rest, ok := app.loadRestaurant(w, r)
	if !ok {
		return nil, false
	}

	ctx := r.Context()
	list, err := app.store.Reviews.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		app.logger.Errorw("error fetching reviews", "restaurant_id", rest.ID, "error", err.Error())
		list = nil
	}
	app.attachAuthors(ctx, list)

	return &views.DetailData{
		Restaurant: *rest,
		ImageURL:   app.images.URL(rest.ImageURL, images.Hero),
		Reviews:    list,
		Stats:      ratings.Of(list),
		Session:    session.FromContext(ctx),
	}, true
}

// attachAuthors fills AuthorEmail with one lookup for all distinct authors.
func (app *application) attachAuthors(ctx context.Context, list []reviews.Review) {
	if len(list) == 0 {
		return
	}
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].UserID
	}

	emails, err := users.ResolveEmails(ctx, app.store.Users, ids)
	if err != nil {
		app.logger.Warnw("error resolving review authors", "error", err.Error())
	}
	for i := range list {
		list[i].AuthorEmail = emails[list[i].UserID]
	}
}
