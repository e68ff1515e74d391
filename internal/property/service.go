// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/estately/internal/core"
)

// FraudChecker reports whether an account is fraud-flagged. Implemented by
// the user service; fraud-flagged agents are blocked from listing before
// anything is written.
type FraudChecker interface {
	IsFraud(ctx context.Context, email string) (bool, error)
}

type Service struct {
	repo  Repository
	fraud FraudChecker
}

func NewService(repo Repository, fraud FraudChecker) *Service {
	return &Service{repo: repo, fraud: fraud}
}

func (s *Service) Create(
	ctx context.Context,
	agentEmail string,
	req CreatePropertyRequest,
) (*Property, error) {
	min, max := *req.Price.Min, *req.Price.Max
	if min > max {
		return nil, fmt.Errorf(
			"create property: price min exceeds max: %w",
			core.ErrInvalidInput,
		)
	}

	fraud, err := s.fraud.IsFraud(ctx, agentEmail)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	if fraud {
		return nil, fmt.Errorf(
			"create property: account is flagged for fraud: %w",
			core.ErrInvalidInput,
		)
	}

	p := &Property{
		ID:         uuid.New().String(),
		AgentEmail: strings.ToLower(agentEmail),
		AgentName:  req.AgentName,
		Title:      req.Title,
		Location:   req.Location,
		ImageURL:   req.ImageURL,
		PriceMin:   min,
		PriceMax:   max,
		Status:     StatusPending,
		Verified:   false,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListVerified(
	ctx context.Context,
	params ListParams,
) ([]Property, error) {
	return s.repo.ListVerified(ctx, params)
}

func (s *Service) ListMine(
	ctx context.Context,
	agentEmail string,
) ([]Property, error) {
	return s.repo.ListByAgent(ctx, strings.ToLower(agentEmail))
}

func (s *Service) Update(
	ctx context.Context,
	callerEmail, id string,
	req UpdatePropertyRequest,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.AgentEmail != strings.ToLower(callerEmail) {
		return nil, fmt.Errorf(
			"update property: not the listing agent: %w",
			core.ErrForbidden,
		)
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		if req.Price.Min == nil || req.Price.Max == nil {
			return nil, fmt.Errorf(
				"update property: price requires both min and max: %w",
				core.ErrInvalidInput,
			)
		}
		if *req.Price.Min > *req.Price.Max {
			return nil, fmt.Errorf(
				"update property: price min exceeds max: %w",
				core.ErrInvalidInput,
			)
		}
		p.PriceMin = *req.Price.Min
		p.PriceMax = *req.Price.Max
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, callerEmail, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if p.AgentEmail != strings.ToLower(callerEmail) {
		return fmt.Errorf(
			"delete property: not the listing agent: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) Verify(ctx context.Context, id string) (*Property, error) {
	if err := s.repo.SetVerification(ctx, id, StatusVerified, true); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id string) (*Property, error) {
	if err := s.repo.SetVerification(ctx, id, StatusRejected, false); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// MarkSoldTx and MarkBoughtTx run the cascade updates on a caller-owned
// transaction so offer and listing state move together.

func (s *Service) MarkSoldTx(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
) error {
	return NewRepository(tx).MarkSold(ctx, id)
}

func (s *Service) MarkBoughtTx(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
) error {
	return NewRepository(tx).MarkBought(ctx, id)
}
