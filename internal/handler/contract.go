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

type ContractHandler struct {
	service   *service.BillingService
	validator *validator.Validate
}

func NewContractHandler(service *service.BillingService) *ContractHandler {
	return &ContractHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.service.ListContracts(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contracts)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	contract, err := h.service.GetContract(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contract)
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	contract, err := h.service.AddContract(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, contract)
}

func (h *ContractHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	contract, err := h.service.UpdateContractStatus(r.Context(), contractID, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contract)
}

func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	if err := h.service.DeleteContract(r.Context(), contractID); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}

func (h *ContractHandler) GenerateInvoices(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	invoices, err := h.service.GenerateInvoices(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, invoices)
}

func (h *ContractHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	generated, err := h.service.GenerateInvoicesForAllContracts(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]int{"generated": generated})
}

func (h *ContractHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	invoices, err := h.service.ListInvoicesByContract(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, invoices)
}

func (h *ContractHandler) Interest(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	interest, err := h.service.ContractOverdueInterest(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, interest)
}
