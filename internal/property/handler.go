// AngelaMos | 2026
// handler.go

package property

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
	authenticator, agentOnly, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.ListVerified)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(agentOnly)

			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Put("/{propertyID}", h.Update)
			r.Delete("/{propertyID}", h.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Patch("/verify/{propertyID}", h.Verify)
			r.Patch("/reject/{propertyID}", h.Reject)
		})

		r.Get("/{propertyID}", h.Get)
	})
}

// ListVerified is the public catalog: verified listings only, optional
// case-insensitive location filter and price sort.
func (h *Handler) ListVerified(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := q.Get("sort")
	if sort != SortNone && sort != SortAsc && sort != SortDesc {
		core.BadRequest(w, "sort must be asc or desc")
		return
	}

	params := ListParams{
		Location:       q.Get("location"),
		Sort:           sort,
		AdvertisedOnly: q.Get("advertised") == "true",
	}

	properties, err := h.service.ListVerified(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, PropertyListResponse{
		Properties: ToPropertyResponseList(properties),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "property")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())

	p, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "agent")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPropertyResponse(p))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	properties, err := h.service.ListMine(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, PropertyListResponse{
		Properties: ToPropertyResponseList(properties),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())

	p, err := h.service.Update(r.Context(), email, id, req)
	if err != nil {
		h.writeError(w, err, "property")
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	email := middleware.GetUserEmail(r.Context())

	if err := h.service.Delete(r.Context(), email, id); err != nil {
		h.writeError(w, err, "property")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")

	p, err := h.service.Verify(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "property")
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")

	p, err := h.service.Reject(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "property")
		return
	}

	core.OK(w, ToPropertyResponse(p))
}

func (h *Handler) writeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, err.Error())
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
