// AngelaMos | 2026
// repository.go

package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/estately/internal/core"
)

type Repository interface {
	Add(ctx context.Context, item *Item) error
	ListByUser(ctx context.Context, userEmail string) ([]Item, error)
	Remove(ctx context.Context, userEmail, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Add is a plain insert. The unique index on (user_email, property_id)
// carries the no-duplicates invariant, so concurrent adds of the same
// listing cannot both land; the loser surfaces as ErrDuplicateKey.
func (r *repository) Add(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO wishlist_items (id, user_email, property_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.UserEmail,
		item.PropertyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("add wishlist item: %w", core.ErrDuplicateKey)
			case "23503":
				return fmt.Errorf("add wishlist item: %w", core.ErrNotFound)
			}
		}
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userEmail string,
) ([]Item, error) {
	query := `
		SELECT id, user_email, property_id, created_at
		FROM wishlist_items
		WHERE user_email = $1
		ORDER BY created_at DESC`

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, userEmail); err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	return items, nil
}

// Remove succeeds whether or not the row exists.
func (r *repository) Remove(ctx context.Context, userEmail, id string) error {
	query := `
		DELETE FROM wishlist_items
		WHERE id = $1 AND user_email = $2`

	if _, err := r.db.ExecContext(ctx, query, id, userEmail); err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	return nil
}
