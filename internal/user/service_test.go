// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/core"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(seed ...*User) *fakeRepo {
	r := &fakeRepo{users: map[string]*User{}}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	if u.TokenVersion == 0 {
		u.TokenVersion = 1
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeRepo) IncrementTokenVersion(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.TokenVersion++
	return nil
}

func (r *fakeRepo) MarkFraud(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Fraud = true
	u.Role = RoleUser
	u.TokenVersion++
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	out := []User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

type noopPurger struct{}

func (noopPurger) PurgeByAgent(
	_ context.Context,
	_ *sqlx.Tx,
	_ string,
) (int64, error) {
	return 0, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, noopPurger{}, nil)
}

func TestCreateForcesBuyerRole(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	info, err := svc.Create(
		context.Background(),
		"New@Example.COM",
		"hash",
		"New User",
	)
	require.NoError(t, err)

	assert.Equal(t, RoleUser, info.Role)
	assert.Equal(t, "new@example.com", info.Email)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Role: RoleUser})
	svc := newTestService(repo)

	_, err := svc.UpdateUserRole(context.Background(), "u1", "superuser")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUserRolePromotesToAgent(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Role: RoleUser})
	svc := newTestService(repo)

	u, err := svc.UpdateUserRole(context.Background(), "u1", RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, u.Role)
}

func TestUpdateUserRoleBlocksFraudPromotion(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Role: RoleUser, Fraud: true})
	svc := newTestService(repo)

	_, err := svc.UpdateUserRole(context.Background(), "u1", RoleAgent)
	require.ErrorIs(t, err, core.ErrConflict)

	// Keeping a flagged account at the buyer role is still allowed.
	u, err := svc.UpdateUserRole(context.Background(), "u1", RoleUser)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
}

func TestIsFraud(t *testing.T) {
	repo := newFakeRepo(
		&User{ID: "u1", Email: "clean@example.com"},
		&User{ID: "u2", Email: "flagged@example.com", Fraud: true},
	)
	svc := newTestService(repo)

	fraud, err := svc.IsFraud(context.Background(), "Clean@Example.com")
	require.NoError(t, err)
	assert.False(t, fraud)

	fraud, err = svc.IsFraud(context.Background(), "flagged@example.com")
	require.NoError(t, err)
	assert.True(t, fraud)
}

func TestCanDeleteUserBlocksSelfDeletion(t *testing.T) {
	repo := newFakeRepo(&User{ID: "a1", Role: RoleAdmin})
	svc := newTestService(repo)

	err := svc.CanDeleteUser(context.Background(), "a1", "a1")
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestCanDeleteUserBlocksAdminTargets(t *testing.T) {
	repo := newFakeRepo(
		&User{ID: "a1", Role: RoleAdmin},
		&User{ID: "a2", Role: RoleAdmin},
		&User{ID: "u1", Role: RoleUser},
	)
	svc := newTestService(repo)

	err := svc.CanDeleteUser(context.Background(), "a1", "a2")
	require.ErrorIs(t, err, core.ErrForbidden)

	err = svc.CanDeleteUser(context.Background(), "a1", "u1")
	require.NoError(t, err)
}

func TestGetMeRequiresIdentity(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetMe(context.Background(), "")
	require.ErrorIs(t, err, core.ErrUnauthorized)
}
