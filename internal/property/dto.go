// AngelaMos | 2026
// dto.go

package property

import (
	"time"
)

// PriceRange uses pointers so a missing min or max is distinguishable from
// zero and rejected by validation.
type PriceRange struct {
	Min *int64 `json:"min" validate:"required,gte=0"`
	Max *int64 `json:"max" validate:"required,gte=0"`
}

type CreatePropertyRequest struct {
	Title     string     `json:"title"      validate:"required,min=1,max=200"`
	AgentName string     `json:"agent_name" validate:"omitempty,max=100"`
	Location  string     `json:"location"   validate:"required,min=1,max=200"`
	ImageURL  string     `json:"image_url"  validate:"required,url,max=2048"`
	Price     PriceRange `json:"price"      validate:"required"`
}

type UpdatePropertyRequest struct {
	Title    *string     `json:"title,omitempty"     validate:"omitempty,min=1,max=200"`
	Location *string     `json:"location,omitempty"  validate:"omitempty,min=1,max=200"`
	ImageURL *string     `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	Price    *PriceRange `json:"price,omitempty"`
}

type PropertyResponse struct {
	ID           string     `json:"id"`
	AgentEmail   string     `json:"agent_email"`
	AgentName    string     `json:"agent_name"`
	Title        string     `json:"title"`
	Location     string     `json:"location"`
	ImageURL     string     `json:"image_url"`
	Price        PriceBody  `json:"price"`
	Status       string     `json:"status"`
	Verified     bool       `json:"verified"`
	IsAdvertised bool       `json:"is_advertised"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PriceBody struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

const (
	SortNone = ""
	SortAsc  = "asc"
	SortDesc = "desc"
)

type ListParams struct {
	Location       string
	Sort           string
	AdvertisedOnly bool
}

func ToPropertyResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		AgentEmail:   p.AgentEmail,
		AgentName:    p.AgentName,
		Title:        p.Title,
		Location:     p.Location,
		ImageURL:     p.ImageURL,
		Price:        PriceBody{Min: p.PriceMin, Max: p.PriceMax},
		Status:       p.Status,
		Verified:     p.Verified,
		IsAdvertised: p.IsAdvertised,
		CreatedAt:    p.CreatedAt,
	}
}

func ToPropertyResponseList(properties []Property) []PropertyResponse {
	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, ToPropertyResponse(&properties[i]))
	}
	return responses
}
