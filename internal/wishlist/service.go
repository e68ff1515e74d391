// AngelaMos | 2026
// service.go

package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/estately/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(
	ctx context.Context,
	userEmail string,
	req AddItemRequest,
) (*Item, error) {
	item := &Item{
		ID:         uuid.New().String(),
		UserEmail:  strings.ToLower(userEmail),
		PropertyID: req.PropertyID,
	}

	if err := s.repo.Add(ctx, item); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf(
				"listing is already in the wishlist: %w",
				core.ErrConflict,
			)
		}
		return nil, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context, userEmail string) ([]Item, error) {
	return s.repo.ListByUser(ctx, strings.ToLower(userEmail))
}

// Remove scopes the delete to the caller's own items and treats a missing
// row as success.
func (s *Service) Remove(ctx context.Context, userEmail, id string) error {
	return s.repo.Remove(ctx, strings.ToLower(userEmail), id)
}
