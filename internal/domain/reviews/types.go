package reviews

import (
	"errors"
	"time"

	"reaheats/internal/domain/restaurants"
)

var (
	ErrNotFound          = errors.New("review not found")
	QueryTimeoutDuration = time.Second * 5
)

type Review struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	Rating       int       `json:"rating"` // 1-5
	Title        string    `json:"title"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined fields
	AuthorEmail string                  `json:"author_email,omitempty"`
	Restaurant  *restaurants.Restaurant `json:"restaurant,omitempty"`
}

// Rating is the (restaurant_id, rating) projection the listing aggregates over.
type Rating struct {
	RestaurantID string `json:"restaurant_id"`
	Rating       int    `json:"rating"`
}
