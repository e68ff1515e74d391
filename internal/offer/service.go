// AngelaMos | 2026
// service.go

package offer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/middleware"
	"github.com/carterperez-dev/estately/internal/payment"
	"github.com/carterperez-dev/estately/internal/property"
)

// ListingProvider is the slice of the property service the offer lifecycle
// needs: reading a listing to derive offer bounds, and running the status
// cascades inside a transaction this package owns.
type ListingProvider interface {
	GetByID(ctx context.Context, id string) (*property.Property, error)
	MarkSoldTx(ctx context.Context, tx *sqlx.Tx, id string) error
	MarkBoughtTx(ctx context.Context, tx *sqlx.Tx, id string) error
}

type Service struct {
	repo     Repository
	listings ListingProvider
	payments payment.Provider
	currency string
	db       *sqlx.DB
}

func NewService(
	repo Repository,
	listings ListingProvider,
	payments payment.Provider,
	currency string,
	db *sqlx.DB,
) *Service {
	return &Service{
		repo:     repo,
		listings: listings,
		payments: payments,
		currency: currency,
		db:       db,
	}
}

// Create validates the bid against the listing as stored, never against
// bounds supplied by the caller.
func (s *Service) Create(
	ctx context.Context,
	buyerEmail, buyerRole string,
	req CreateOfferRequest,
) (*Offer, error) {
	if buyerRole != middleware.RoleUser {
		return nil, fmt.Errorf(
			"create offer: only buyer accounts can make offers: %w",
			core.ErrForbidden,
		)
	}

	p, err := s.listings.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if !p.IsOpenForOffers() {
		return nil, fmt.Errorf(
			"create offer: listing is %s: %w",
			p.Status,
			core.ErrConflict,
		)
	}

	if req.Amount < p.PriceMin || req.Amount > p.PriceMax {
		return nil, fmt.Errorf(
			"create offer: amount %d is outside the listing price range [%d, %d]: %w",
			req.Amount,
			p.PriceMin,
			p.PriceMax,
			core.ErrInvalidInput,
		)
	}

	o := &Offer{
		ID:               uuid.New().String(),
		PropertyID:       p.ID,
		PropertyTitle:    p.Title,
		PropertyLocation: p.Location,
		AgentEmail:       p.AgentEmail,
		BuyerEmail:       strings.ToLower(buyerEmail),
		BuyerName:        req.BuyerName,
		Amount:           req.Amount,
		Status:           StatusPending,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Offer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForBuyer(
	ctx context.Context,
	buyerEmail string,
) ([]Offer, error) {
	return s.repo.ListByBuyer(ctx, strings.ToLower(buyerEmail))
}

func (s *Service) ListForAgent(
	ctx context.Context,
	agentEmail string,
) ([]Offer, error) {
	return s.repo.ListByAgent(ctx, strings.ToLower(agentEmail))
}

func (s *Service) ListSold(
	ctx context.Context,
	agentEmail string,
) ([]Offer, error) {
	return s.repo.ListBoughtByAgent(ctx, strings.ToLower(agentEmail))
}

// Accept transitions the offer to accepted and marks the listing sold in
// the same transaction. If the listing is no longer open (already sold, or
// purged by fraud containment) the whole operation rolls back and the offer
// stays pending.
func (s *Service) Accept(
	ctx context.Context,
	agentEmail, offerID string,
) (*Offer, error) {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if o.AgentEmail != strings.ToLower(agentEmail) {
		return nil, fmt.Errorf(
			"accept offer: not the listing agent: %w",
			core.ErrForbidden,
		)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.Accept(ctx, o.ID); err != nil {
			return err
		}
		return s.listings.MarkSoldTx(ctx, tx, o.PropertyID)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, o.ID)
}

func (s *Service) Reject(
	ctx context.Context,
	agentEmail, offerID string,
) (*Offer, error) {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if o.AgentEmail != strings.ToLower(agentEmail) {
		return nil, fmt.Errorf(
			"reject offer: not the listing agent: %w",
			core.ErrForbidden,
		)
	}

	if err := s.repo.Reject(ctx, o.ID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, o.ID)
}

// CreatePaymentIntent hands the buyer a payment handle for an accepted
// offer. The handle is created at the provider for the offer amount; the
// amount is never taken from the request.
func (s *Service) CreatePaymentIntent(
	ctx context.Context,
	buyerEmail, offerID string,
) (*payment.Intent, int64, string, error) {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, 0, "", err
	}

	if o.BuyerEmail != strings.ToLower(buyerEmail) {
		return nil, 0, "", fmt.Errorf(
			"payment intent: not the offer owner: %w",
			core.ErrForbidden,
		)
	}

	if !o.IsAccepted() {
		return nil, 0, "", fmt.Errorf(
			"payment intent: offer is %s: %w",
			o.Status,
			core.ErrConflict,
		)
	}

	intent, err := s.payments.CreateIntent(ctx, o.Amount, s.currency)
	if err != nil {
		return nil, 0, "", fmt.Errorf("payment intent: %w", err)
	}

	return intent, o.Amount, s.currency, nil
}

// ConfirmPayment moves the offer to bought and the listing from sold to
// bought together; neither write is visible unless both succeed.
func (s *Service) ConfirmPayment(
	ctx context.Context,
	buyerEmail, offerID, transactionID string,
) (*Offer, error) {
	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if o.BuyerEmail != strings.ToLower(buyerEmail) {
		return nil, fmt.Errorf(
			"confirm payment: not the offer owner: %w",
			core.ErrForbidden,
		)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.MarkBought(ctx, o.ID, transactionID); err != nil {
			return err
		}
		return s.listings.MarkBoughtTx(ctx, tx, o.PropertyID)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, o.ID)
}
