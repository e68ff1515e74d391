// AngelaMos | 2026
// entity.go

package property

import (
	"time"
)

// Status lifecycle: pending -> verified | rejected; verified -> sold (offer
// accepted); sold -> bought (payment confirmed). rejected and bought are
// terminal.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusSold     = "sold"
	StatusBought   = "bought"
)

type Property struct {
	ID           string    `db:"id"`
	AgentEmail   string    `db:"agent_email"`
	AgentName    string    `db:"agent_name"`
	Title        string    `db:"title"`
	Location     string    `db:"location"`
	ImageURL     string    `db:"image_url"`
	PriceMin     int64     `db:"price_min"`
	PriceMax     int64     `db:"price_max"`
	Status       string    `db:"status"`
	Verified     bool      `db:"verified"`
	IsAdvertised bool      `db:"is_advertised"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (p *Property) IsPending() bool {
	return p.Status == StatusPending
}

func (p *Property) IsOpenForOffers() bool {
	return p.Status == StatusVerified
}
