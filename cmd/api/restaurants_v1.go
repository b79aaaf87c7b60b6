package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/params"
	"reaheats/internal/ratings"

	"github.com/go-chi/chi/v5"
)

type restaurantListResponse struct {
	Restaurants []ratings.Ranked  `json:"restaurants"`
	Pagination  params.Pagination `json:"pagination"`
}

type restaurantDetailResponse struct {
	Restaurant restaurants.Restaurant `json:"restaurant"`
	Stats      ratings.Stats          `json:"stats"`
	Reviews    []reviews.Review       `json:"reviews"`
}

// listRestaurantsJSONHandler serves the ranked listing, optionally filtered by q
// and paginated by page and limit.
func (app *application) listRestaurantsJSONHandler(w http.ResponseWriter, r *http.Request) {
	ranked, err := app.rankedRestaurants(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	filtered := ratings.Filter(ranked, strings.TrimSpace(r.URL.Query().Get("q")))

	p := params.ParsePagination(r.URL.Query())
	p.ComputeMeta(len(filtered))
	start, end := p.Window(len(filtered))

	resp := restaurantListResponse{
		Restaurants: filtered[start:end],
		Pagination:  p,
	}
	if resp.Restaurants == nil {
		resp.Restaurants = []ratings.Ranked{}
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantJSONHandler serves one restaurant with its reviews, newest first.
func (app *application) getRestaurantJSONHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")
	if !validID(id) {
		app.notFoundResponse(w, r, fmt.Errorf("invalid restaurant id %q", id))
		return
	}

	ctx := r.Context()
	rest, err := app.store.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, restaurants.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	list, err := app.store.Reviews.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.attachAuthors(ctx, list)
	if list == nil {
		list = []reviews.Review{}
	}

	resp := restaurantDetailResponse{
		Restaurant: *rest,
		Stats:      ratings.Of(list),
		Reviews:    list,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
