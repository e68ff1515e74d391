// AngelaMos | 2026
// service_test.go

package property

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/core"
)

type fakeRepo struct {
	properties map[string]*Property
	created    []*Property
	deleted    []string
}

func newFakeRepo(seed ...*Property) *fakeRepo {
	r := &fakeRepo{properties: map[string]*Property{}}
	for _, p := range seed {
		r.properties[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, p *Property) error {
	r.created = append(r.created, p)
	r.properties[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListVerified(
	_ context.Context,
	_ ListParams,
) ([]Property, error) {
	out := []Property{}
	for _, p := range r.properties {
		if p.Status == StatusVerified {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByAgent(
	_ context.Context,
	agentEmail string,
) ([]Property, error) {
	out := []Property{}
	for _, p := range r.properties {
		if p.AgentEmail == agentEmail {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, p *Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *fakeRepo) SetVerification(
	_ context.Context,
	id, status string,
	verified bool,
) error {
	p, ok := r.properties[id]
	if !ok {
		return core.ErrNotFound
	}
	if p.Status != StatusPending {
		return core.ErrConflict
	}
	p.Status = status
	p.Verified = verified
	return nil
}

func (r *fakeRepo) MarkSold(_ context.Context, id string) error {
	p, ok := r.properties[id]
	if !ok {
		return core.ErrNotFound
	}
	if p.Status != StatusVerified {
		return core.ErrConflict
	}
	p.Status = StatusSold
	return nil
}

func (r *fakeRepo) MarkBought(_ context.Context, id string) error {
	p, ok := r.properties[id]
	if !ok {
		return core.ErrNotFound
	}
	if p.Status != StatusSold {
		return core.ErrConflict
	}
	p.Status = StatusBought
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.properties[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.properties, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepo) PurgeByAgent(
	_ context.Context,
	_ *sqlx.Tx,
	agentEmail string,
) (int64, error) {
	var count int64
	for id, p := range r.properties {
		if p.AgentEmail == agentEmail {
			delete(r.properties, id)
			count++
		}
	}
	return count, nil
}

type fakeFraudChecker struct {
	fraud bool
}

func (f *fakeFraudChecker) IsFraud(_ context.Context, _ string) (bool, error) {
	return f.fraud, nil
}

func ptr(v int64) *int64 { return &v }

func validCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:     "Sunny Loft",
		AgentName: "Dana",
		Location:  "Lisbon",
		ImageURL:  "https://img.example.com/loft.jpg",
		Price:     PriceRange{Min: ptr(100000), Max: ptr(150000)},
	}
}

func TestCreateStartsPendingAndUnverified(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFraudChecker{})

	p, err := svc.Create(context.Background(), "Agent@Example.COM", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, p.Status)
	assert.False(t, p.Verified)
	assert.Equal(t, "agent@example.com", p.AgentEmail)
	assert.Equal(t, int64(100000), p.PriceMin)
	assert.Equal(t, int64(150000), p.PriceMax)
	assert.NotEmpty(t, p.ID)
	require.Len(t, repo.created, 1)
}

func TestCreateRejectsInvertedPriceRange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFraudChecker{})

	req := validCreateRequest()
	req.Price = PriceRange{Min: ptr(150000), Max: ptr(100000)}

	_, err := svc.Create(context.Background(), "agent@example.com", req)
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.created)
}

func TestCreateRejectsFraudFlaggedAgent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFraudChecker{fraud: true})

	_, err := svc.Create(context.Background(), "agent@example.com", validCreateRequest())
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.created, "nothing should be written for a flagged agent")
}

func TestUpdateRequiresOwnership(t *testing.T) {
	repo := newFakeRepo(&Property{
		ID:         "p1",
		AgentEmail: "owner@example.com",
		Status:     StatusPending,
	})
	svc := NewService(repo, &fakeFraudChecker{})

	title := "New Title"
	_, err := svc.Update(
		context.Background(),
		"intruder@example.com",
		"p1",
		UpdatePropertyRequest{Title: &title},
	)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	repo := newFakeRepo(&Property{
		ID:         "p1",
		AgentEmail: "owner@example.com",
		Title:      "Old",
		Location:   "Porto",
		PriceMin:   1,
		PriceMax:   2,
		Status:     StatusPending,
	})
	svc := NewService(repo, &fakeFraudChecker{})

	title := "New Title"
	p, err := svc.Update(
		context.Background(),
		"Owner@Example.com",
		"p1",
		UpdatePropertyRequest{Title: &title},
	)
	require.NoError(t, err)

	assert.Equal(t, "New Title", p.Title)
	assert.Equal(t, "Porto", p.Location)
	assert.Equal(t, int64(1), p.PriceMin)
}

func TestUpdateRejectsPartialPriceRange(t *testing.T) {
	repo := newFakeRepo(&Property{
		ID:         "p1",
		AgentEmail: "owner@example.com",
		Status:     StatusPending,
	})
	svc := NewService(repo, &fakeFraudChecker{})

	_, err := svc.Update(
		context.Background(),
		"owner@example.com",
		"p1",
		UpdatePropertyRequest{Price: &PriceRange{Min: ptr(5)}},
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newFakeRepo(&Property{
		ID:         "p1",
		AgentEmail: "owner@example.com",
		Status:     StatusPending,
	})
	svc := NewService(repo, &fakeFraudChecker{})

	err := svc.Delete(context.Background(), "intruder@example.com", "p1")
	require.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(context.Background(), "owner@example.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, repo.deleted)
}

func TestVerifyTransitionsPendingOnly(t *testing.T) {
	repo := newFakeRepo(&Property{ID: "p1", Status: StatusPending})
	svc := NewService(repo, &fakeFraudChecker{})

	p, err := svc.Verify(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, p.Status)
	assert.True(t, p.Verified)

	// A second verify must fail: the listing is no longer pending.
	_, err = svc.Verify(context.Background(), "p1")
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestRejectTransitionsPendingOnly(t *testing.T) {
	repo := newFakeRepo(
		&Property{ID: "p1", Status: StatusPending},
		&Property{ID: "p2", Status: StatusSold},
	)
	svc := NewService(repo, &fakeFraudChecker{})

	p, err := svc.Reject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, p.Status)
	assert.False(t, p.Verified)

	_, err = svc.Reject(context.Background(), "p2")
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestVerifyMissingListing(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFraudChecker{})

	_, err := svc.Verify(context.Background(), "nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}
