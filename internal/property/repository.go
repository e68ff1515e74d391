// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/estately/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	ListVerified(ctx context.Context, params ListParams) ([]Property, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]Property, error)
	Update(ctx context.Context, p *Property) error
	SetVerification(ctx context.Context, id, status string, verified bool) error
	MarkSold(ctx context.Context, id string) error
	MarkBought(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	PurgeByAgent(
		ctx context.Context,
		tx *sqlx.Tx,
		agentEmail string,
	) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const propertyColumns = `
	id, agent_email, agent_name, title, location, image_url,
	price_min, price_max, status, verified, is_advertised,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, agent_email, agent_name, title, location, image_url,
			price_min, price_max, status, verified, is_advertised
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.AgentEmail,
		p.AgentName,
		p.Title,
		p.Location,
		p.ImageURL,
		p.PriceMin,
		p.PriceMax,
		p.Status,
		p.Verified,
		p.IsAdvertised,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id = $1`, propertyColumns)

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

// ListVerified returns only verified, unsold listings. Sorting on the price
// range uses price_min; see the sort semantics note in DESIGN.md.
func (r *repository) ListVerified(
	ctx context.Context,
	params ListParams,
) ([]Property, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "status = 'verified'", "verified = TRUE")

	if params.AdvertisedOnly {
		conditions = append(conditions, "is_advertised = TRUE")
	}

	if params.Location != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("location ILIKE $%d", argIdx),
		)
		args = append(args, "%"+escapeLike(params.Location)+"%")
		argIdx++
	}

	orderBy := "created_at DESC"
	switch params.Sort {
	case SortAsc:
		orderBy = "price_min ASC"
	case SortDesc:
		orderBy = "price_min DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY %s`,
		propertyColumns, strings.Join(conditions, " AND "), orderBy)

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("list verified properties: %w", err)
	}

	return properties, nil
}

func (r *repository) ListByAgent(
	ctx context.Context,
	agentEmail string,
) ([]Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE agent_email = $1
		ORDER BY created_at DESC`, propertyColumns)

	var properties []Property
	err := r.db.SelectContext(ctx, &properties, query, agentEmail)
	if err != nil {
		return nil, fmt.Errorf("list agent properties: %w", err)
	}

	return properties, nil
}

// Update edits listing fields while it is still pending review. Editing a
// reviewed listing would bypass admin verification.
func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET title = $2, location = $3, image_url = $4,
		    price_min = $5, price_max = $6, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Title,
		p.Location,
		p.ImageURL,
		p.PriceMin,
		p.PriceMax,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r.conditionalUpdateError(ctx, p.ID, "update property")
	}
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

// SetVerification moves a pending listing to verified or rejected. The
// pending-origin condition makes concurrent or repeated admin decisions lose
// cleanly instead of silently overwriting a later state.
func (r *repository) SetVerification(
	ctx context.Context,
	id, status string,
	verified bool,
) error {
	query := `
		UPDATE properties
		SET status = $2, verified = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id, status, verified)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "set verification")
	}

	return nil
}

// MarkSold cascades offer acceptance. Conditioned on the current status so
// two offers accepted concurrently cannot both sell the listing.
func (r *repository) MarkSold(ctx context.Context, id string) error {
	query := `
		UPDATE properties
		SET status = 'sold', updated_at = NOW()
		WHERE id = $1 AND status = 'verified'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "mark sold")
	}

	return nil
}

func (r *repository) MarkBought(ctx context.Context, id string) error {
	query := `
		UPDATE properties
		SET status = 'bought', updated_at = NOW()
		WHERE id = $1 AND status = 'sold'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark bought: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark bought: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "mark bought")
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	return nil
}

// PurgeByAgent deletes every listing owned by agentEmail inside the caller's
// transaction. Used by the fraud-containment operation.
func (r *repository) PurgeByAgent(
	ctx context.Context,
	tx *sqlx.Tx,
	agentEmail string,
) (int64, error) {
	query := `DELETE FROM properties WHERE agent_email = $1`

	result, err := tx.ExecContext(ctx, query, agentEmail)
	if err != nil {
		return 0, fmt.Errorf("purge agent properties: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge agent properties: %w", err)
	}

	return rows, nil
}

// conditionalUpdateError distinguishes a missing row from one in the wrong
// state after a zero-row conditional update.
func (r *repository) conditionalUpdateError(
	ctx context.Context,
	id, op string,
) error {
	var status string
	err := r.db.GetContext(
		ctx,
		&status,
		`SELECT status FROM properties WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: listing is %s: %w", op, status, core.ErrConflict)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
