package handler

import (
	"net/http"

	"github.com/faturado/billing-engine/internal/service"
	"github.com/faturado/billing-engine/pkg/response"
)

type DashboardHandler struct {
	billing *service.BillingService
	reports *service.ReportService
}

func NewDashboardHandler(billing *service.BillingService, reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{
		billing: billing,
		reports: reports,
	}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.billing.DashboardSummary(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *DashboardHandler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.RevenueProjection(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"report": report})
}
