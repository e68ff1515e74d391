// AngelaMos | 2026
// handler.go

package wishlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/estately/internal/core"
	"github.com/carterperez-dev/estately/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/wishlist", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Add)
		r.Get("/", h.List)
		r.Delete("/{itemID}", h.Remove)
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())

	item, err := h.service.Add(r.Context(), email, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrConflict):
			core.Conflict(w, err.Error())
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "property")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToItemResponse(item))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	items, err := h.service.List(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemListResponse(items))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	if err := h.service.Remove(r.Context(), email, chi.URLParam(r, "itemID")); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
