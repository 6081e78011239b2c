package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a single receivable, either the whole of a single-payment
// contract or one installment of an installment contract. Client fields are a
// snapshot taken at generation time.
type Invoice struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	InvoiceID         string          `json:"invoice_id" db:"invoice_id"`
	ContractID        string          `json:"contract_id" db:"contract_id"`
	ClientID          string          `json:"client_id" db:"client_id"`
	ClientName        string          `json:"client_name" db:"client_name"`
	ClientEmail       string          `json:"client_email" db:"client_email"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	IssueDate         Date            `json:"issue_date" db:"issue_date"`
	DueDate           Date            `json:"due_date" db:"due_date"`
	Status            Status          `json:"status" db:"status"`
	PaymentDate       *Date           `json:"payment_date" db:"payment_date"`
	InstallmentNumber int             `json:"installment_number,omitempty" db:"installment_number"`
	TotalInstallments int             `json:"total_installments,omitempty" db:"total_installments"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

type CreateInvoiceRequest struct {
	ClientID   string          `json:"client_id" validate:"required"`
	ContractID string          `json:"contract_id,omitempty"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	DueDate    Date            `json:"due_date" validate:"required"`
}

// RevenueEntry is one tuple handed to the revenue projection report.
type RevenueEntry struct {
	InvoiceID   string          `json:"invoice_id"`
	ClientID    string          `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"due_date"`
	PaymentDate *Date           `json:"payment_date"`
}

// DashboardSummary aggregates receivables for the dashboard view.
type DashboardSummary struct {
	TotalReceived    decimal.Decimal   `json:"total_received"`
	TotalOutstanding decimal.Decimal   `json:"total_outstanding"`
	TotalOverdue     decimal.Decimal   `json:"total_overdue"`
	Invoices         int               `json:"invoices"`
	MonthlyRevenue   []MonthlyRevenue  `json:"monthly_revenue"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// MonthlyRevenue is one bucket of paid revenue keyed by payment month.
type MonthlyRevenue struct {
	Month  string          `json:"month"` // "2006-01"
	Amount decimal.Decimal `json:"amount"`
}
