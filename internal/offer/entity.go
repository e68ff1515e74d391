// AngelaMos | 2026
// entity.go

package offer

import "time"

// Offer lifecycle: pending -> accepted (agent) -> bought (payment), or
// pending -> rejected (agent). Offers are never deleted; they form the
// audit trail even after the listing they reference is gone, which is why
// the listing fields below are snapshotted at creation time instead of
// joined through a foreign key.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusBought   = "bought"
)

type Offer struct {
	ID               string     `db:"id"`
	PropertyID       string     `db:"property_id"`
	PropertyTitle    string     `db:"property_title"`
	PropertyLocation string     `db:"property_location"`
	AgentEmail       string     `db:"agent_email"`
	BuyerEmail       string     `db:"buyer_email"`
	BuyerName        string     `db:"buyer_name"`
	Amount           int64      `db:"amount"`
	Status           string     `db:"status"`
	TransactionID    *string    `db:"transaction_id"`
	PaidAt           *time.Time `db:"paid_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (o *Offer) IsPending() bool {
	return o.Status == StatusPending
}

func (o *Offer) IsAccepted() bool {
	return o.Status == StatusAccepted
}
