// AngelaMos | 2026
// repository.go

package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/estately/internal/core"
)

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByID(ctx context.Context, id string) (*Offer, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]Offer, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]Offer, error)
	ListBoughtByAgent(ctx context.Context, agentEmail string) ([]Offer, error)
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	MarkBought(ctx context.Context, id, transactionID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const offerColumns = `
	id, property_id, property_title, property_location, agent_email,
	buyer_email, buyer_name, amount, status, transaction_id, paid_at,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, o *Offer) error {
	query := `
		INSERT INTO offers (
			id, property_id, property_title, property_location,
			agent_email, buyer_email, buyer_name, amount, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, o, query,
		o.ID,
		o.PropertyID,
		o.PropertyTitle,
		o.PropertyLocation,
		o.AgentEmail,
		o.BuyerEmail,
		o.BuyerName,
		o.Amount,
		o.Status,
	)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	var o Offer
	err := r.db.GetContext(ctx, &o, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get offer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}

	return &o, nil
}

func (r *repository) ListByBuyer(
	ctx context.Context,
	buyerEmail string,
) ([]Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE buyer_email = $1
		ORDER BY created_at DESC`

	offers := []Offer{}
	if err := r.db.SelectContext(ctx, &offers, query, buyerEmail); err != nil {
		return nil, fmt.Errorf("list buyer offers: %w", err)
	}

	return offers, nil
}

func (r *repository) ListByAgent(
	ctx context.Context,
	agentEmail string,
) ([]Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE agent_email = $1
		ORDER BY created_at DESC`

	offers := []Offer{}
	if err := r.db.SelectContext(ctx, &offers, query, agentEmail); err != nil {
		return nil, fmt.Errorf("list agent offers: %w", err)
	}

	return offers, nil
}

func (r *repository) ListBoughtByAgent(
	ctx context.Context,
	agentEmail string,
) ([]Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE agent_email = $1 AND status = 'bought'
		ORDER BY paid_at DESC`

	offers := []Offer{}
	if err := r.db.SelectContext(ctx, &offers, query, agentEmail); err != nil {
		return nil, fmt.Errorf("list sold offers: %w", err)
	}

	return offers, nil
}

// Accept is conditioned on the current status so two concurrent accepts
// cannot both succeed.
func (r *repository) Accept(ctx context.Context, id string) error {
	query := `
		UPDATE offers
		SET status = 'accepted', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("accept offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("accept offer: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "accept offer")
	}

	return nil
}

func (r *repository) Reject(ctx context.Context, id string) error {
	query := `
		UPDATE offers
		SET status = 'rejected', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reject offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject offer: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "reject offer")
	}

	return nil
}

func (r *repository) MarkBought(
	ctx context.Context,
	id, transactionID string,
) error {
	query := `
		UPDATE offers
		SET status = 'bought',
		    transaction_id = $2,
		    paid_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'accepted'`

	result, err := r.db.ExecContext(ctx, query, id, transactionID)
	if err != nil {
		return fmt.Errorf("mark offer bought: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark offer bought: %w", err)
	}

	if rows == 0 {
		return r.conditionalUpdateError(ctx, id, "mark offer bought")
	}

	return nil
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
		`SELECT status FROM offers WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: offer is %s: %w", op, status, core.ErrConflict)
}
