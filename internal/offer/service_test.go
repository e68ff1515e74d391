// AngelaMos | 2026
// service_test.go

package offer

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/middleware"
	"github.com/carterperez-dev/estately/internal/payment"
	"github.com/carterperez-dev/estately/internal/property"
)

type fakeRepo struct {
	offers  map[string]*Offer
	created []*Offer
}

func newFakeRepo(seed ...*Offer) *fakeRepo {
	r := &fakeRepo{offers: map[string]*Offer{}}
	for _, o := range seed {
		r.offers[o.ID] = o
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, o *Offer) error {
	r.created = append(r.created, o)
	r.offers[o.ID] = o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Offer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) ListByBuyer(
	_ context.Context,
	buyerEmail string,
) ([]Offer, error) {
	out := []Offer{}
	for _, o := range r.offers {
		if o.BuyerEmail == buyerEmail {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByAgent(
	_ context.Context,
	agentEmail string,
) ([]Offer, error) {
	out := []Offer{}
	for _, o := range r.offers {
		if o.AgentEmail == agentEmail {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBoughtByAgent(
	_ context.Context,
	agentEmail string,
) ([]Offer, error) {
	out := []Offer{}
	for _, o := range r.offers {
		if o.AgentEmail == agentEmail && o.Status == StatusBought {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeRepo) Accept(_ context.Context, id string) error {
	o, ok := r.offers[id]
	if !ok {
		return core.ErrNotFound
	}
	if o.Status != StatusPending {
		return core.ErrConflict
	}
	o.Status = StatusAccepted
	return nil
}

func (r *fakeRepo) Reject(_ context.Context, id string) error {
	o, ok := r.offers[id]
	if !ok {
		return core.ErrNotFound
	}
	if o.Status != StatusPending {
		return core.ErrConflict
	}
	o.Status = StatusRejected
	return nil
}

func (r *fakeRepo) MarkBought(
	_ context.Context,
	id, transactionID string,
) error {
	o, ok := r.offers[id]
	if !ok {
		return core.ErrNotFound
	}
	if o.Status != StatusAccepted {
		return core.ErrConflict
	}
	o.Status = StatusBought
	o.TransactionID = &transactionID
	return nil
}

type fakeListings struct {
	listing *property.Property
}

func (f *fakeListings) GetByID(
	_ context.Context,
	id string,
) (*property.Property, error) {
	if f.listing == nil || f.listing.ID != id {
		return nil, core.ErrNotFound
	}
	cp := *f.listing
	return &cp, nil
}

func (f *fakeListings) MarkSoldTx(
	_ context.Context,
	_ *sqlx.Tx,
	_ string,
) error {
	f.listing.Status = property.StatusSold
	return nil
}

func (f *fakeListings) MarkBoughtTx(
	_ context.Context,
	_ *sqlx.Tx,
	_ string,
) error {
	f.listing.Status = property.StatusBought
	return nil
}

type fakePayments struct {
	lastAmount   int64
	lastCurrency string
}

func (f *fakePayments) CreateIntent(
	_ context.Context,
	amount int64,
	currency string,
) (*payment.Intent, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func openListing() *property.Property {
	return &property.Property{
		ID:         "p1",
		AgentEmail: "agent@example.com",
		AgentName:  "Dana",
		Title:      "Sunny Loft",
		Location:   "Lisbon",
		PriceMin:   100000,
		PriceMax:   150000,
		Status:     property.StatusVerified,
		Verified:   true,
	}
}

func newTestService(
	repo Repository,
	listings ListingProvider,
	payments payment.Provider,
) *Service {
	return NewService(repo, listings, payments, "usd", nil)
}

func TestCreateAcceptsAmountWithinStoredBounds(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeListings{listing: openListing()}, &fakePayments{})

	o, err := svc.Create(
		context.Background(),
		"Buyer@Example.com",
		middleware.RoleUser,
		CreateOfferRequest{PropertyID: "p1", Amount: 120000, BuyerName: "Sam"},
	)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "buyer@example.com", o.BuyerEmail)
	assert.Equal(t, int64(120000), o.Amount)
	// Listing details are snapshotted so the offer survives a purge.
	assert.Equal(t, "agent@example.com", o.AgentEmail)
	assert.Equal(t, "Sunny Loft", o.PropertyTitle)
	assert.Equal(t, "Lisbon", o.PropertyLocation)
}

func TestCreateRejectsAmountOutsideStoredBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
	}{
		{"below minimum", 90000},
		{"above maximum", 160000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, &fakeListings{listing: openListing()}, &fakePayments{})

			_, err := svc.Create(
				context.Background(),
				"buyer@example.com",
				middleware.RoleUser,
				CreateOfferRequest{PropertyID: "p1", Amount: tt.amount},
			)
			require.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Empty(t, repo.created)
		})
	}
}

func TestCreateRequiresBuyerRole(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeListings{listing: openListing()}, &fakePayments{})

	for _, role := range []string{middleware.RoleAgent, middleware.RoleAdmin, ""} {
		_, err := svc.Create(
			context.Background(),
			"buyer@example.com",
			role,
			CreateOfferRequest{PropertyID: "p1", Amount: 120000},
		)
		require.ErrorIs(t, err, core.ErrForbidden, "role %q", role)
	}
}

func TestCreateRequiresOpenListing(t *testing.T) {
	listing := openListing()
	listing.Status = property.StatusPending
	svc := newTestService(newFakeRepo(), &fakeListings{listing: listing}, &fakePayments{})

	_, err := svc.Create(
		context.Background(),
		"buyer@example.com",
		middleware.RoleUser,
		CreateOfferRequest{PropertyID: "p1", Amount: 120000},
	)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateMissingListing(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeListings{}, &fakePayments{})

	_, err := svc.Create(
		context.Background(),
		"buyer@example.com",
		middleware.RoleUser,
		CreateOfferRequest{PropertyID: "ghost", Amount: 120000},
	)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestAcceptRequiresListingAgent(t *testing.T) {
	repo := newFakeRepo(&Offer{
		ID:         "o1",
		PropertyID: "p1",
		AgentEmail: "agent@example.com",
		Status:     StatusPending,
	})
	svc := newTestService(repo, &fakeListings{listing: openListing()}, &fakePayments{})

	_, err := svc.Accept(context.Background(), "other@example.com", "o1")
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, StatusPending, repo.offers["o1"].Status)
}

func TestRejectTransitionsPendingOnly(t *testing.T) {
	repo := newFakeRepo(
		&Offer{ID: "o1", AgentEmail: "agent@example.com", Status: StatusPending},
		&Offer{ID: "o2", AgentEmail: "agent@example.com", Status: StatusAccepted},
	)
	svc := newTestService(repo, &fakeListings{listing: openListing()}, &fakePayments{})

	o, err := svc.Reject(context.Background(), "Agent@Example.com", "o1")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, o.Status)

	_, err = svc.Reject(context.Background(), "agent@example.com", "o2")
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestPaymentIntentRequiresAcceptedOffer(t *testing.T) {
	repo := newFakeRepo(&Offer{
		ID:         "o1",
		BuyerEmail: "buyer@example.com",
		Amount:     120000,
		Status:     StatusPending,
	})
	svc := newTestService(repo, &fakeListings{}, &fakePayments{})

	_, _, _, err := svc.CreatePaymentIntent(
		context.Background(),
		"buyer@example.com",
		"o1",
	)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestPaymentIntentUsesStoredAmount(t *testing.T) {
	repo := newFakeRepo(&Offer{
		ID:         "o1",
		BuyerEmail: "buyer@example.com",
		Amount:     120000,
		Status:     StatusAccepted,
	})
	payments := &fakePayments{}
	svc := newTestService(repo, &fakeListings{}, payments)

	intent, amount, currency, err := svc.CreatePaymentIntent(
		context.Background(),
		"buyer@example.com",
		"o1",
	)
	require.NoError(t, err)

	assert.Equal(t, "pi_test", intent.ID)
	assert.Equal(t, int64(120000), amount)
	assert.Equal(t, "usd", currency)
	assert.Equal(t, int64(120000), payments.lastAmount)
}

func TestPaymentIntentRequiresOfferOwner(t *testing.T) {
	repo := newFakeRepo(&Offer{
		ID:         "o1",
		BuyerEmail: "buyer@example.com",
		Status:     StatusAccepted,
	})
	svc := newTestService(repo, &fakeListings{}, &fakePayments{})

	_, _, _, err := svc.CreatePaymentIntent(
		context.Background(),
		"someone-else@example.com",
		"o1",
	)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestConfirmPaymentRequiresOfferOwner(t *testing.T) {
	repo := newFakeRepo(&Offer{
		ID:         "o1",
		BuyerEmail: "buyer@example.com",
		Status:     StatusAccepted,
	})
	svc := newTestService(repo, &fakeListings{listing: openListing()}, &fakePayments{})

	_, err := svc.ConfirmPayment(
		context.Background(),
		"someone-else@example.com",
		"o1",
		"txn_1",
	)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, StatusAccepted, repo.offers["o1"].Status)
}

func TestListSoldFiltersByStatus(t *testing.T) {
	repo := newFakeRepo(
		&Offer{ID: "o1", AgentEmail: "agent@example.com", Status: StatusBought},
		&Offer{ID: "o2", AgentEmail: "agent@example.com", Status: StatusPending},
		&Offer{ID: "o3", AgentEmail: "other@example.com", Status: StatusBought},
	)
	svc := newTestService(repo, &fakeListings{}, &fakePayments{})

	offers, err := svc.ListSold(context.Background(), "agent@example.com")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "o1", offers[0].ID)
}
