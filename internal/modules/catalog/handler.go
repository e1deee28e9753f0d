package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mercadito/mercadito-backend/internal/apperr"
	"github.com/mercadito/mercadito-backend/internal/modules/auth"
)

// Handler exposes store and product HTTP endpoints.
type Handler struct {
	service Service
	auth    auth.Service
}

func NewHandler(service Service, authService auth.Service) *Handler {
	return &Handler{service: service, auth: authService}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/stores", func(r chi.Router) {
		r.Get("/", h.listStores)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getStore)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireStore(h.auth))
				r.Patch("/toggle", h.toggleOpen)
				r.Post("/products", h.createProduct)
				r.Patch("/products/{product_id}/stock", h.setStock)
			})
		})
	})
	router.Get("/products/{id}/availability", h.availability)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Username    string `json:"username"`
		Password    string `json:"password"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Username == "" || req.Password == "" {
		respond(w, http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
		return
	}

	// Credential first: a duplicate username must not leave an orphan store.
	storeID := uuid.NewString()
	if err := h.auth.Register(r.Context(), auth.ScopeStore, storeID, req.Username, req.Password); err != nil {
		respondErr(w, err)
		return
	}
	store, err := h.service.CreateStore(r.Context(), CreateStoreRequest{
		ID:          storeID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"store":   store,
		"account": map[string]string{"username": req.Username},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	token, identity, err := h.auth.Login(r.Context(), auth.ScopeStore, req.Username, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	store, err := h.service.GetStore(r.Context(), identity.SubjectID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"store":   store.Store,
		"account": map[string]string{"username": req.Username},
		"token":   token,
	})
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	if stores == nil {
		stores = []*Store{}
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, store)
}

func (h *Handler) toggleOpen(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.ToggleOpen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, store)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Stock *int `json:"stock"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	if req.Stock == nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "Stock value is required"})
		return
	}
	p, err := h.service.SetStock(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "product_id"), *req.Stock)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, a)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, apperr.Status(err), map[string]string{"message": err.Error()})
}
