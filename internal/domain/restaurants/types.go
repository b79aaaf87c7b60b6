package restaurants

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("restaurant not found")
	QueryTimeoutDuration = time.Second * 5
)

// Restaurant is read-only from the application's side; no view writes it.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cuisine     string    `json:"cuisine"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
