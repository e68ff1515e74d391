// AngelaMos | 2026
// service_test.go

package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/middleware"
)

type fakeRepo struct {
	reviews map[string]*Review
}

func newFakeRepo(seed ...*Review) *fakeRepo {
	r := &fakeRepo{reviews: map[string]*Review{}}
	for _, rv := range seed {
		r.reviews[rv.ID] = rv
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, rv *Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeRepo) ListByProperty(
	_ context.Context,
	propertyID string,
) ([]Review, error) {
	out := []Review{}
	for _, rv := range r.reviews {
		if rv.PropertyID == propertyID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListLatest(_ context.Context, limit int) ([]Review, error) {
	out := []Review{}
	for _, rv := range r.reviews {
		if len(out) == limit {
			break
		}
		out = append(out, *rv)
	}
	return out, nil
}

func (r *fakeRepo) ListByReviewer(
	_ context.Context,
	reviewerEmail string,
) ([]Review, error) {
	out := []Review{}
	for _, rv := range r.reviews {
		if rv.ReviewerEmail == reviewerEmail {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func TestCreateTakesReviewerFromCaller(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	rv, err := svc.Create(
		context.Background(),
		"Buyer@Example.com",
		CreateReviewRequest{
			PropertyID:   "p1",
			Comment:      "  great place  ",
			ReviewerName: "Sam",
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", rv.ReviewerEmail)
	assert.Equal(t, "great place", rv.Comment)
	assert.NotEmpty(t, rv.ID)
}

func TestCreateRejectsBlankComment(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(
		context.Background(),
		"buyer@example.com",
		CreateReviewRequest{PropertyID: "p1", Comment: "   "},
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.reviews)
}

func TestDeleteAllowsAuthor(t *testing.T) {
	repo := newFakeRepo(&Review{
		ID:            "r1",
		ReviewerEmail: "author@example.com",
	})
	svc := NewService(repo)

	err := svc.Delete(
		context.Background(),
		"Author@Example.com",
		middleware.RoleUser,
		"r1",
	)
	require.NoError(t, err)
	assert.Empty(t, repo.reviews)
}

func TestDeleteAllowsAdmin(t *testing.T) {
	repo := newFakeRepo(&Review{
		ID:            "r1",
		ReviewerEmail: "author@example.com",
	})
	svc := NewService(repo)

	err := svc.Delete(
		context.Background(),
		"admin@example.com",
		middleware.RoleAdmin,
		"r1",
	)
	require.NoError(t, err)
}

func TestDeleteForbidsOtherUsers(t *testing.T) {
	repo := newFakeRepo(&Review{
		ID:            "r1",
		ReviewerEmail: "author@example.com",
	})
	svc := NewService(repo)

	err := svc.Delete(
		context.Background(),
		"other@example.com",
		middleware.RoleUser,
		"r1",
	)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Len(t, repo.reviews, 1)
}

func TestListLatestClampsLimit(t *testing.T) {
	repo := newFakeRepo(
		&Review{ID: "r1"},
		&Review{ID: "r2"},
		&Review{ID: "r3"},
		&Review{ID: "r4"},
	)
	svc := NewService(repo)

	reviews, err := svc.ListLatest(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 3, "zero limit falls back to the default of 3")

	reviews, err = svc.ListLatest(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
