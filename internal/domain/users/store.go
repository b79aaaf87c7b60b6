package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads author identities from the hosted auth schema. Users are owned by
// the auth service; nothing here writes them.
type Store interface {
	EmailsByID(ctx context.Context, ids []string) (map[string]string, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// EmailsByID resolves every id in one round trip. Ids without a row are absent
// from the returned map.
func (r *Repository) EmailsByID(ctx context.Context, ids []string) (map[string]string, error) {
	emails := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return emails, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        SELECT id::text, COALESCE(email, '')
        FROM auth.users
        WHERE id = ANY($1::uuid[])
    `
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup user emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, err
		}
		if email != "" {
			emails[id] = email
		}
	}
	return emails, rows.Err()
}

// ResolveEmails returns the email for each id, falling back to AnonymousEmail
// for ids the lookup could not resolve or when the lookup itself failed.
func ResolveEmails(ctx context.Context, s Store, ids []string) (map[string]string, error) {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	found, err := s.EmailsByID(ctx, distinct)
	out := make(map[string]string, len(distinct))
	for _, id := range distinct {
		if email, ok := found[id]; ok && err == nil {
			out[id] = email
			continue
		}
		out[id] = AnonymousEmail
	}
	return out, err
}
