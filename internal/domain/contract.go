package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ContractTypeSingle      = "single"
	ContractTypeInstallment = "installment"
)

// Contract represents a billing agreement with a client. For single-payment
// contracts DueDate is the only due date; for installment contracts it is the
// first of the series.
type Contract struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	ContractID   string          `json:"contract_id" db:"contract_id"`
	ClientID     string          `json:"client_id" db:"client_id"`
	ClientName   string          `json:"client_name" db:"client_name"`
	ClientEmail  string          `json:"client_email" db:"client_email"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	IssueDate    Date            `json:"issue_date" db:"issue_date"`
	DueDate      Date            `json:"due_date" db:"due_date"`
	Status       Status          `json:"status" db:"status"`
	PaymentDate  *Date           `json:"payment_date" db:"payment_date"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"` // monthly %
	Type         string          `json:"type" db:"type"`
	Installments int             `json:"installments,omitempty" db:"installments"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateContractRequest struct {
	ClientID     string          `json:"client_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	DueDate      Date            `json:"due_date" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Type         string          `json:"type" validate:"required,oneof=single installment"`
	Installments int             `json:"installments,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=pending paid overdue written-off"`
}

// OverdueInterest is the display-only interest breakdown for an overdue
// record. The stored amount is never mutated by accrual.
type OverdueInterest struct {
	DaysOverdue int             `json:"days_overdue"`
	Interest    decimal.Decimal `json:"interest"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
