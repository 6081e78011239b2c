package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturado/billing-engine/internal/config"
	"github.com/faturado/billing-engine/internal/domain"
	"github.com/faturado/billing-engine/internal/handler"
	"github.com/faturado/billing-engine/internal/repository"
	"github.com/faturado/billing-engine/internal/service"
	"github.com/faturado/billing-engine/internal/storage"
)

// newTestRouter stands up the API against an in-memory store with the clock
// pinned to 2024-05-01.
func newTestRouter() *mux.Router {
	store := repository.NewMemoryStore()
	cfg := &config.Config{
		Business: config.BusinessConfig{DefaultMonthlyRate: "1.0", SummaryCacheTTL: time.Minute},
	}
	svc := service.NewBillingService(
		store.Clients(), store.Contracts(), store.Invoices(),
		nil, storage.NewLocalStorage(), cfg,
	).WithNow(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	})

	clientHandler := handler.NewClientHandler(svc)
	contractHandler := handler.NewContractHandler(svc)
	invoiceHandler := handler.NewInvoiceHandler(svc)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{clientId}", clientHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{clientId}", clientHandler.Delete).Methods("DELETE")
	api.HandleFunc("/clients/{clientId}/documents", clientHandler.DeleteDocument).Methods("DELETE")

	api.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	api.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Get).Methods("GET")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Delete).Methods("DELETE")
	api.HandleFunc("/contracts/{contractId}/status", contractHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/contracts/{contractId}/invoices", contractHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/contracts/{contractId}/invoices", contractHandler.GenerateInvoices).Methods("POST")
	api.HandleFunc("/contracts/{contractId}/interest", contractHandler.Interest).Methods("GET")

	api.HandleFunc("/invoices", invoiceHandler.List).Methods("GET")
	api.HandleFunc("/invoices", invoiceHandler.Create).Methods("POST")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Get).Methods("GET")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Delete).Methods("DELETE")
	api.HandleFunc("/invoices/{invoiceId}/status", invoiceHandler.UpdateStatus).Methods("PATCH")

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func createClient(t *testing.T, router *mux.Router) *domain.Client {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name":  "Innovate Inc.",
		"email": "contact@innovate.com",
		"rate":  "1.5",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var client domain.Client
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &client))
	return &client
}

func TestClientLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()

	client := createClient(t, router)
	assert.Equal(t, "1", client.ClientID)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/clients/"+client.ClientID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/clients/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CLIENT_NOT_FOUND", decodeEnvelope(t, rec).Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/clients/"+client.ClientID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/clients/"+client.ClientID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClient_ValidationOverHTTP(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name": "Missing Email",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString("{not json"))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestContractGenerationFlowOverHTTP(t *testing.T) {
	router := newTestRouter()
	client := createClient(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id":    client.ClientID,
		"amount":       "1200",
		"due_date":     "2024-06-01",
		"type":         "installment",
		"installments": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var contract domain.Contract
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &contract))
	assert.Equal(t, "CON001", contract.ContractID)
	assert.Equal(t, domain.StatusPending, contract.Status)

	generatePath := fmt.Sprintf("/api/v1/contracts/%s/invoices", contract.ContractID)

	rec = doJSON(t, router, http.MethodPost, generatePath, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var invoices []domain.Invoice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &invoices))
	require.Len(t, invoices, 3)
	assert.Equal(t, "2024-06-01", invoices[0].DueDate.String())
	assert.Equal(t, "2024-08-01", invoices[2].DueDate.String())

	// Second generation conflicts and creates nothing.
	rec = doJSON(t, router, http.MethodPost, generatePath, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_GENERATED", decodeEnvelope(t, rec).Code)

	rec = doJSON(t, router, http.MethodGet, generatePath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	invoices = nil
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &invoices))
	assert.Len(t, invoices, 3)
}

func TestContractStatusOverHTTP(t *testing.T) {
	router := newTestRouter()
	client := createClient(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": client.ClientID,
		"amount":    "2500",
		"due_date":  "2024-06-01",
		"type":      "single",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var contract domain.Contract
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &contract))

	statusPath := fmt.Sprintf("/api/v1/contracts/%s/status", contract.ContractID)

	rec = doJSON(t, router, http.MethodPatch, statusPath, map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.Contract
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Equal(t, domain.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaymentDate)
	assert.Equal(t, "2024-05-01", updated.PaymentDate.String())

	// Statuses outside the enum are rejected before reaching the service.
	rec = doJSON(t, router, http.MethodPatch, statusPath, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteClientCascadesOverHTTP(t *testing.T) {
	router := newTestRouter()
	client := createClient(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": client.ClientID,
		"amount":    "2500",
		"due_date":  "2024-06-01",
		"type":      "single",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var contract domain.Contract
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &contract))

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/contracts/%s/invoices", contract.ContractID), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/clients/"+client.ClientID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contracts/"+contract.ContractID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var invoices []domain.Invoice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &invoices))
	assert.Empty(t, invoices)
}

func TestInvoiceStatusOverHTTP(t *testing.T) {
	router := newTestRouter()
	client := createClient(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"client_id": client.ClientID,
		"amount":    "750",
		"due_date":  "2024-06-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var invoice domain.Invoice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &invoice))
	assert.Equal(t, "INV001", invoice.InvoiceID)

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/invoices/%s/status", invoice.InvoiceID),
		map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Invoice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &updated))
	assert.Equal(t, domain.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaymentDate)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/invoices/"+invoice.InvoiceID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/invoices/"+invoice.InvoiceID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
