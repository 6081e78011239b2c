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

type InvoiceHandler struct {
	service   *service.BillingService
	validator *validator.Validate
}

func NewInvoiceHandler(service *service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoiceId"]

	invoice, err := h.service.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, invoice)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	invoice, err := h.service.AddInvoice(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, invoice)
}

func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoiceId"]

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.FromError(w, apperrors.WrapValidation(err.Error()))
		return
	}

	invoice, err := h.service.UpdateInvoiceStatus(r.Context(), invoiceID, req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoiceId"]

	if err := h.service.DeleteInvoice(r.Context(), invoiceID); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}

func (h *InvoiceHandler) Interest(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoiceId"]

	interest, err := h.service.InvoiceOverdueInterest(r.Context(), invoiceID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, interest)
}
