package main

import (
	"context"
	"net/http"

	"reaheats/internal/domain/reviews"
	"reaheats/internal/images"
	"reaheats/internal/ratings"
	"reaheats/internal/session"
	"reaheats/internal/views"

	"github.com/go-chi/chi/v5"
)

func (app *application) myReviews(ctx context.Context) []reviews.Review {
	userID := session.FromContext(ctx).User().ID
	list, err := app.store.Reviews.ListByUser(ctx, userID)
	if err != nil {
		app.logger.Errorw("error fetching user reviews", "user_id", userID, "error", err.Error())
		return nil
	}
	return list
}

func (app *application) myReviewsData(list []reviews.Review) views.MyReviewsData {
	thumbs := make(map[string]string, len(list))
	for _, rv := range list {
		if rv.Restaurant != nil {
			thumbs[rv.RestaurantID] = app.images.URL(rv.Restaurant.ImageURL, images.Thumb)
		}
	}
	return views.MyReviewsData{Reviews: list, Images: thumbs}
}

func (app *application) myReviewsHandler(w http.ResponseWriter, r *http.Request) {
	list := app.myReviews(r.Context())
	app.render(w, r, http.StatusOK, "My Reviews", views.Alert{}, views.MyReviewsPage(app.myReviewsData(list)))
}

func (app *application) deleteMyReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	if !validID(reviewID) {
		redirect(w, r, "/my-reviews")
		return
	}

	ctx := r.Context()
	list := app.myReviews(ctx)

	status := http.StatusOK
	alert := views.Alert{Kind: views.AlertSuccess, Message: "Review deleted"}

	if err := app.store.Reviews.Delete(ctx, reviewID, session.FromContext(ctx).User().ID); err != nil {
		app.logger.Errorw("error deleting review", "review_id", reviewID, "error", err.Error())
		status, _ = mutationError(err, "")
		alert = views.Alert{Kind: views.AlertError, Message: "Failed to delete review"}
	} else {
		list, _ = ratings.Remove(list, reviewID)
	}

	app.render(w, r, status, "My Reviews", alert, views.MyReviewsPage(app.myReviewsData(list)))
}
