package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/faturado/billing-engine/internal/domain"
	"github.com/faturado/billing-engine/internal/service"
	apperrors "github.com/faturado/billing-engine/pkg/errors"
	"github.com/faturado/billing-engine/pkg/response"
)

type ClientHandler struct {
	service   *service.BillingService
	validator *validator.Validate
}

func NewClientHandler(service *service.BillingService) *ClientHandler {
	return &ClientHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	client, err := h.service.GetClient(r.Context(), clientID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	client, err := h.service.AddClient(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	client, err := h.service.UpdateClient(r.Context(), clientID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	if err := h.service.DeleteClient(r.Context(), clientID); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}

func (h *ClientHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]
	documentURL := r.URL.Query().Get("url")
	if documentURL == "" {
		response.BadRequest(w, "Missing url query parameter", nil)
		return
	}

	if err := h.service.DeleteClientDocument(r.Context(), clientID, documentURL); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}
