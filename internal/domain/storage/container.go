package storage

import (
	"reaheats/internal/domain/restaurants"
	"reaheats/internal/domain/reviews"
	"reaheats/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Container groups the table-scoped stores every view reads through.
type Container struct {
	Restaurants restaurants.Store
	Reviews     reviews.Store
	Users       users.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Restaurants: restaurants.NewRepository(db),
		Reviews:     reviews.NewRepository(db),
		Users:       users.NewRepository(db),
	}
}
