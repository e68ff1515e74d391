// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/estately/internal/auth"
	"github.com/carterperez-dev/estately/internal/core"
)

// ListingPurger removes every listing owned by an agent inside the caller's
// transaction. Implemented by the property repository.
type ListingPurger interface {
	PurgeByAgent(
		ctx context.Context,
		tx *sqlx.Tx,
		agentEmail string,
	) (int64, error)
}

type Service struct {
	repo   Repository
	purger ListingPurger
	db     *sqlx.DB
}

func NewService(repo Repository, purger ListingPurger, db *sqlx.DB) *Service {
	return &Service{repo: repo, purger: purger, db: db}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers a new account. Registration always yields the buyer role;
// only an admin can promote to agent or admin afterwards.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// IsFraud reports whether the account behind email carries the fraud flag.
// Used as the pre-emptive gate on listing creation.
func (s *Service) IsFraud(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return false, err
	}
	return user.Fraud, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Fraud && role != RoleUser {
		return nil, fmt.Errorf(
			"update role: fraud-flagged user cannot be promoted: %w",
			core.ErrConflict,
		)
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// MarkFraud flags the user and purges every listing they own in a single
// transaction. Either both effects commit or neither does: a concurrent
// reader can never see a fraud-flagged agent with live listings, nor deleted
// listings without the flag.
func (s *Service) MarkFraud(
	ctx context.Context,
	id string,
) (*User, int64, error) {
	var flagged *User
	var removed int64

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		user, err := txRepo.MarkFraud(ctx, id)
		if err != nil {
			return err
		}

		count, err := s.purger.PurgeByAgent(ctx, tx, user.Email)
		if err != nil {
			return fmt.Errorf("purge listings: %w", err)
		}

		flagged = user
		removed = count
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return flagged, removed, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return fmt.Errorf(
			"admins cannot delete themselves: %w",
			core.ErrForbidden,
		)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Fraud:        u.Fraud,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
