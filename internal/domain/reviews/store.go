package reviews

import (
	"context"
	"errors"
	"fmt"

	"reaheats/internal/domain/restaurants"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	ListRatings(ctx context.Context) ([]Rating, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, reviewID, userID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const reviewColumns = `
        r.id::text, r.restaurant_id::text, r.user_id::text, r.rating,
        r.title, r.comment, r.created_at, r.updated_at
`

func (r *Repository) ListRatings(ctx context.Context) ([]Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT restaurant_id::text, rating FROM reviews`)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(&rt.RestaurantID, &rt.Rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// ListByRestaurant returns the restaurant's reviews, newest first.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews r
        WHERE r.restaurant_id = $1
        ORDER BY r.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for restaurant %s: %w", restaurantID, err)
	}
	defer rows.Close()

	var list []Review
	for rows.Next() {
		var review Review
		if err := scanReview(rows, &review); err != nil {
			return nil, err
		}
		list = append(list, review)
	}
	return list, rows.Err()
}

// ListByUser returns the user's reviews joined with their restaurant, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        SELECT ` + reviewColumns + `,
               rs.id::text, rs.name, rs.cuisine, rs.address, rs.city,
               COALESCE(rs.image_url, ''), COALESCE(rs.description, ''), rs.created_at
        FROM reviews r
        JOIN restaurants rs ON rs.id = r.restaurant_id
        WHERE r.user_id = $1
        ORDER BY r.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for user %s: %w", userID, err)
	}
	defer rows.Close()

	var list []Review
	for rows.Next() {
		var (
			review Review
			rest   restaurants.Restaurant
		)
		err := rows.Scan(
			&review.ID,
			&review.RestaurantID,
			&review.UserID,
			&review.Rating,
			&review.Title,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&rest.ID,
			&rest.Name,
			&rest.Cuisine,
			&rest.Address,
			&rest.City,
			&rest.ImageURL,
			&rest.Description,
			&rest.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		review.Restaurant = &rest
		list = append(list, review)
	}
	return list, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + reviewColumns + ` FROM reviews r WHERE r.id = $1`

	var review Review
	if err := scanReview(r.db.QueryRow(ctx, query, id), &review); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}
	return &review, nil
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        INSERT INTO reviews (restaurant_id, user_id, rating, title, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id::text, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		review.RestaurantID,
		review.UserID,
		review.Rating,
		review.Title,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

// Update rewrites rating, title and comment and refreshes updated_at. The row
// must belong to review.UserID.
func (r *Repository) Update(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        UPDATE reviews
        SET rating = $1, title = $2, comment = $3, updated_at = now()
        WHERE id = $4 AND user_id = $5
        RETURNING updated_at
    `
	err := r.db.QueryRow(ctx, query,
		review.Rating,
		review.Title,
		review.Comment,
		review.ID,
		review.UserID,
	).Scan(&review.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, reviewID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        DELETE FROM reviews
        WHERE id = $1 AND user_id = $2
    `
	result, err := r.db.Exec(ctx, query, reviewID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReview(row pgx.Row, review *Review) error {
	return row.Scan(
		&review.ID,
		&review.RestaurantID,
		&review.UserID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
}
