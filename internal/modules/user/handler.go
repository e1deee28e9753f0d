package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercadito/mercadito-backend/internal/apperr"
)

// Handler exposes consumer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/users", h.list)
	router.Post("/users/register", h.register)
	router.Post("/users/login", h.login)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	consumers, err := h.service.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	if consumers == nil {
		consumers = []*Consumer{}
	}
	respond(w, http.StatusOK, consumers)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	c, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"user":    c,
		"account": map[string]string{"username": c.Username},
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
	c, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"user":    c,
		"account": map[string]string{"username": c.Username},
		"token":   token,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondErr(w http.ResponseWriter, err error) {
	respond(w, apperr.Status(err), map[string]string{"message": err.Error()})
}
