package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/faturado/billing-engine/internal/domain"
)

func demoDate(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(y, m, d)
}

// SeedDemoData loads the demo fixture into an in-memory store. Counters are
// advanced past the seeded ids so new records never collide with fixture ones.
func SeedDemoData(s *MemoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	s.clients = []*domain.Client{
		{
			ID: uuid.New(), ClientID: "1", Name: "Innovate Inc.", Email: "contact@innovate.com",
			Phone: "123-456-7890", Rate: decimal.NewFromFloat(1.5),
			Address:   &domain.ClientAddress{CEP: "12345", Logradouro: "123 Innovation Dr", Cidade: "Techville", Estado: "CA"},
			AvatarURL: "https://placehold.co/40x40/E2E8F0/475569?text=II",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New(), ClientID: "2", Name: "Solutions Co.", Email: "hello@solutions.co",
			Phone: "234-567-8901", Rate: decimal.NewFromFloat(2.0),
			Address:   &domain.ClientAddress{CEP: "67890", Logradouro: "456 Solutions Ave", Cidade: "Business City", Estado: "NY"},
			AvatarURL: "https://placehold.co/40x40/E2E8F0/475569?text=SC",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New(), ClientID: "3", Name: "Apex Enterprises", Email: "support@apex.com",
			Phone: "345-678-9012", Rate: decimal.NewFromFloat(1.2),
			Address:   &domain.ClientAddress{CEP: "24680", Logradouro: "789 Apex St", Cidade: "Summit Peak", Estado: "CO"},
			AvatarURL: "https://placehold.co/40x40/E2E8F0/475569?text=AE",
			CreatedAt: now, UpdatedAt: now,
		},
	}
	s.clientSeq = int64(len(s.clients))

	s.contracts = []*domain.Contract{
		{
			ID: uuid.New(), ContractID: "CON001", ClientID: "1",
			ClientName: "Innovate Inc.", ClientEmail: "contact@innovate.com",
			Amount:    decimal.NewFromInt(2500),
			IssueDate: demoDate(2024, time.May, 1), DueDate: demoDate(2024, time.June, 1),
			Status: domain.StatusPending, InterestRate: decimal.NewFromFloat(1.5),
			Type:      domain.ContractTypeSingle,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New(), ContractID: "CON002", ClientID: "2",
			ClientName: "Solutions Co.", ClientEmail: "hello@solutions.co",
			Amount:    decimal.NewFromInt(1500),
			IssueDate: demoDate(2024, time.May, 5), DueDate: demoDate(2024, time.June, 5),
			Status: domain.StatusPending, InterestRate: decimal.NewFromFloat(2.0),
			Type: domain.ContractTypeInstallment, Installments: 3,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New(), ContractID: "CON003", ClientID: "3",
			ClientName: "Apex Enterprises", ClientEmail: "support@apex.com",
			Amount:    decimal.NewFromInt(3500),
			IssueDate: demoDate(2024, time.April, 10), DueDate: demoDate(2024, time.May, 10),
			Status: domain.StatusPending, InterestRate: decimal.NewFromFloat(1.2),
			Type:      domain.ContractTypeSingle,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	s.contractSeq = int64(len(s.contracts))

	paid := demoDate(2024, time.May, 28)
	s.invoices = []*domain.Invoice{
		{
			ID: uuid.New(), InvoiceID: "INV001", ContractID: "CON001", ClientID: "1",
			ClientName: "Innovate Inc.", ClientEmail: "contact@innovate.com",
			Amount:    decimal.NewFromInt(2500),
			IssueDate: demoDate(2024, time.May, 1), DueDate: demoDate(2024, time.June, 1),
			Status: domain.StatusPaid, PaymentDate: &paid,
			CreatedAt: now,
		},
		{
			ID: uuid.New(), InvoiceID: "INV002", ContractID: "CON003", ClientID: "3",
			ClientName: "Apex Enterprises", ClientEmail: "support@apex.com",
			Amount:    decimal.NewFromInt(3500),
			IssueDate: demoDate(2024, time.April, 10), DueDate: demoDate(2024, time.May, 10),
			Status: domain.StatusOverdue,
			CreatedAt: now,
		},
	}
	s.invoiceSeq = int64(len(s.invoices))
}
