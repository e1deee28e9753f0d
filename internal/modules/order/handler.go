package order

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercadito/mercadito-backend/internal/apperr"
	"github.com/mercadito/mercadito-backend/internal/modules/auth"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	auth    auth.Service
}

func NewHandler(service Service, authService auth.Service) *Handler {
	return &Handler{service: service, auth: authService}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listAll)
		r.Get("/available", h.listAvailable)
		r.Get("/consumer/{consumer_id}", h.listByConsumer)
		r.Get("/store/{store_id}", h.listByStore)
		r.Get("/driver/{driver_id}", h.listByDriver)
		r.Post("/", h.placeOrder)
		r.Get("/{id}", h.getOrder)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireDriver(h.auth))
			r.Post("/{id}/accept", h.accept)
			r.Post("/{id}/pickup", h.pickup)
			r.Post("/{id}/deliver", h.deliver)
		})
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	o, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	respondList(w, orders, err)
}

func (h *Handler) listAvailable(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAvailable(r.Context())
	respondList(w, orders, err)
}

func (h *Handler) listByConsumer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListByConsumer(r.Context(), chi.URLParam(r, "consumer_id"))
	respondList(w, orders, err)
}

func (h *Handler) listByStore(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListByStore(r.Context(), chi.URLParam(r, "store_id"))
	respondList(w, orders, err)
}

func (h *Handler) listByDriver(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListByDriver(r.Context(), chi.URLParam(r, "driver_id"))
	respondList(w, orders, err)
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept)
}

func (h *Handler) pickup(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Pickup)
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Deliver)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id, driverID string) (*Order, error)) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"message": "Missing auth token"})
		return
	}
	o, err := fn(r.Context(), chi.URLParam(r, "id"), identity.DriverID())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func respondList(w http.ResponseWriter, orders []*Order, err error) {
	if err != nil {
		respondErr(w, err)
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, apperr.Status(err), map[string]string{"message": err.Error()})
}
