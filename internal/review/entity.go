// AngelaMos | 2026
// entity.go

package review

import "time"

type Review struct {
	ID            string    `db:"id"`
	PropertyID    string    `db:"property_id"`
	ReviewerEmail string    `db:"reviewer_email"`
	ReviewerName  string    `db:"reviewer_name"`
	Comment       string    `db:"comment"`
	CreatedAt     time.Time `db:"created_at"`
}

type CreateReviewRequest struct {
	PropertyID   string `json:"property_id"   validate:"required,uuid4"`
	Comment      string `json:"comment"       validate:"required,max=2000"`
	ReviewerName string `json:"reviewer_name" validate:"omitempty,max=100"`
}

type ReviewResponse struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	ReviewerEmail string    `json:"reviewer_email"`
	ReviewerName  string    `json:"reviewer_name,omitempty"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Count   int              `json:"count"`
}

func ToReviewResponse(rv *Review) ReviewResponse {
	return ReviewResponse{
		ID:            rv.ID,
		PropertyID:    rv.PropertyID,
		ReviewerEmail: rv.ReviewerEmail,
		ReviewerName:  rv.ReviewerName,
		Comment:       rv.Comment,
		CreatedAt:     rv.CreatedAt,
	}
}

func ToReviewListResponse(reviews []Review) ReviewListResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return ReviewListResponse{Reviews: out, Count: len(out)}
}
