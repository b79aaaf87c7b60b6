package restaurants

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context) ([]Restaurant, error)
	GetByID(ctx context.Context, id string) (*Restaurant, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const selectColumns = `
        id::text, name, cuisine, address, city,
        COALESCE(image_url, ''), COALESCE(description, ''), created_at
`

// List returns every restaurant ordered by name.
func (r *Repository) List(ctx context.Context) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM restaurants ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var list []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := scanRestaurant(rows, &rest); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, rest)
	}
	return list, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM restaurants WHERE id = $1`

	var rest Restaurant
	err := scanRestaurant(r.db.QueryRow(ctx, query, id), &rest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return &rest, nil
}

func scanRestaurant(row pgx.Row, rest *Restaurant) error {
	return row.Scan(
		&rest.ID,
		&rest.Name,
		&rest.Cuisine,
		&rest.Address,
		&rest.City,
		&rest.ImageURL,
		&rest.Description,
		&rest.CreatedAt,
	)
}
