// AngelaMos | 2026
// dto.go

package offer

import "time"

type CreateOfferRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid4"`
	Amount     int64  `json:"offer_amount" validate:"required,gt=0"`
	BuyerName  string `json:"buyer_name"  validate:"omitempty,max=100"`
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=255"`
}

type OfferResponse struct {
	ID               string     `json:"id"`
	PropertyID       string     `json:"property_id"`
	PropertyTitle    string     `json:"property_title"`
	PropertyLocation string     `json:"property_location"`
	AgentEmail       string     `json:"agent_email"`
	BuyerEmail       string     `json:"buyer_email"`
	BuyerName        string     `json:"buyer_name,omitempty"`
	Amount           int64      `json:"offer_amount"`
	Status           string     `json:"status"`
	TransactionID    *string    `json:"transaction_id,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Count  int             `json:"count"`
}

type PaymentIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func ToOfferResponse(o *Offer) OfferResponse {
	return OfferResponse{
		ID:               o.ID,
		PropertyID:       o.PropertyID,
		PropertyTitle:    o.PropertyTitle,
		PropertyLocation: o.PropertyLocation,
		AgentEmail:       o.AgentEmail,
		BuyerEmail:       o.BuyerEmail,
		BuyerName:        o.BuyerName,
		Amount:           o.Amount,
		Status:           o.Status,
		TransactionID:    o.TransactionID,
		PaidAt:           o.PaidAt,
		CreatedAt:        o.CreatedAt,
	}
}

func ToOfferListResponse(offers []Offer) OfferListResponse {
	out := make([]OfferResponse, len(offers))
	for i := range offers {
		out[i] = ToOfferResponse(&offers[i])
	}
	return OfferListResponse{Offers: out, Count: len(out)}
}
