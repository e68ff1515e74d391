// AngelaMos | 2026
// handler.go

package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListByProperty)
		r.Get("/latest", h.ListLatest)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Delete("/{reviewID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())

	rv, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "property")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToReviewResponse(rv))
}

func (h *Handler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		core.BadRequest(w, "property_id is required")
		return
	}

	reviews, err := h.service.ListByProperty(r.Context(), propertyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToReviewListResponse(reviews))
}

func (h *Handler) ListLatest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, err := h.service.ListLatest(r.Context(), limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToReviewListResponse(reviews))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	reviews, err := h.service.ListMine(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToReviewListResponse(reviews))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())
	role := middleware.GetUserRole(r.Context())

	err := h.service.Delete(r.Context(), email, role, chi.URLParam(r, "reviewID"))
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "review")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.NoContent(w)
}
