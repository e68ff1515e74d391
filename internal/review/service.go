// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/middleware"
)

const defaultLatestLimit = 3

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	reviewerEmail string,
	req CreateReviewRequest,
) (*Review, error) {
	rv := &Review{
		ID:            uuid.New().String(),
		PropertyID:    req.PropertyID,
		ReviewerEmail: strings.ToLower(reviewerEmail),
		ReviewerName:  req.ReviewerName,
		Comment:       strings.TrimSpace(req.Comment),
	}

	if rv.Comment == "" {
		return nil, fmt.Errorf(
			"create review: comment must not be blank: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	return rv, nil
}

func (s *Service) ListByProperty(
	ctx context.Context,
	propertyID string,
) ([]Review, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *Service) ListLatest(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultLatestLimit
	}
	return s.repo.ListLatest(ctx, limit)
}

func (s *Service) ListMine(
	ctx context.Context,
	reviewerEmail string,
) ([]Review, error) {
	return s.repo.ListByReviewer(ctx, strings.ToLower(reviewerEmail))
}

// Delete is allowed for the review's author and for admins.
func (s *Service) Delete(
	ctx context.Context,
	callerEmail, callerRole, id string,
) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if callerRole != middleware.RoleAdmin &&
		rv.ReviewerEmail != strings.ToLower(callerEmail) {
		return fmt.Errorf(
			"delete review: not the review author: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, id)
}
