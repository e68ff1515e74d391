// AngelaMos | 2026
// handler.go

package offer

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
	authenticator, agentOnly func(http.Handler) http.Handler,
) {
	r.Route("/offers", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Post("/{offerID}/payment-intent", h.PaymentIntent)
		r.Put("/{offerID}/confirm-payment", h.ConfirmPayment)

		r.Group(func(r chi.Router) {
			r.Use(agentOnly)

			r.Get("/agent", h.ListForAgent)
			r.Get("/sold", h.ListSold)
			r.Patch("/accept/{offerID}", h.Accept)
			r.Patch("/reject/{offerID}", h.Reject)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())
	role := middleware.GetUserRole(r.Context())

	o, err := h.service.Create(r.Context(), email, role, req)
	if err != nil {
		h.writeError(w, err, "property")
		return
	}

	core.Created(w, ToOfferResponse(o))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	offers, err := h.service.ListForBuyer(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOfferListResponse(offers))
}

func (h *Handler) ListForAgent(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	offers, err := h.service.ListForAgent(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOfferListResponse(offers))
}

func (h *Handler) ListSold(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	offers, err := h.service.ListSold(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOfferListResponse(offers))
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	o, err := h.service.Accept(r.Context(), email, chi.URLParam(r, "offerID"))
	if err != nil {
		h.writeError(w, err, "offer")
		return
	}

	core.OK(w, ToOfferResponse(o))
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	o, err := h.service.Reject(r.Context(), email, chi.URLParam(r, "offerID"))
	if err != nil {
		h.writeError(w, err, "offer")
		return
	}

	core.OK(w, ToOfferResponse(o))
}

func (h *Handler) PaymentIntent(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	intent, amount, currency, err := h.service.CreatePaymentIntent(
		r.Context(),
		email,
		chi.URLParam(r, "offerID"),
	)
	if err != nil {
		h.writeError(w, err, "offer")
		return
	}

	core.Created(w, PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	})
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	email := middleware.GetUserEmail(r.Context())

	o, err := h.service.ConfirmPayment(
		r.Context(),
		email,
		chi.URLParam(r, "offerID"),
		req.TransactionID,
	)
	if err != nil {
		h.writeError(w, err, "offer")
		return
	}

	core.OK(w, ToOfferResponse(o))
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
