// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/estately/internal/core"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]Review, error)
	ListLatest(ctx context.Context, limit int) ([]Review, error)
	ListByReviewer(ctx context.Context, reviewerEmail string) ([]Review, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const reviewColumns = `
	id, property_id, reviewer_email, reviewer_name, comment, created_at`

func (r *repository) Create(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (id, property_id, reviewer_email, reviewer_name, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, rv, query,
		rv.ID,
		rv.PropertyID,
		rv.ReviewerEmail,
		rv.ReviewerName,
		rv.Comment,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("create review: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var rv Review
	err := r.db.GetContext(ctx, &rv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

func (r *repository) ListByProperty(
	ctx context.Context,
	propertyID string,
) ([]Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE property_id = $1
		ORDER BY created_at DESC`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, propertyID); err != nil {
		return nil, fmt.Errorf("list property reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) ListLatest(
	ctx context.Context,
	limit int,
) ([]Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, fmt.Errorf("list latest reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) ListByReviewer(
	ctx context.Context,
	reviewerEmail string,
) ([]Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE reviewer_email = $1
		ORDER BY created_at DESC`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, reviewerEmail); err != nil {
		return nil, fmt.Errorf("list reviewer reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}

	return nil
}
