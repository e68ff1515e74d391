// AngelaMos | 2026
// entity.go

package wishlist

import "time"

type Item struct {
	ID         string    `db:"id"`
	UserEmail  string    `db:"user_email"`
	PropertyID string    `db:"property_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type AddItemRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid4"`
}

type ItemResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

func ToItemResponse(i *Item) ItemResponse {
	return ItemResponse{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		CreatedAt:  i.CreatedAt,
	}
}

func ToItemListResponse(items []Item) ItemListResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return ItemListResponse{Items: out, Count: len(out)}
}
