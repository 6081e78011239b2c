package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/faturado/billing-engine/internal/config"
	"github.com/faturado/billing-engine/internal/domain"
	"github.com/faturado/billing-engine/internal/logger"
	"github.com/faturado/billing-engine/internal/repository"
	"github.com/faturado/billing-engine/internal/storage"
	apperrors "github.com/faturado/billing-engine/pkg/errors"
	"github.com/faturado/billing-engine/pkg/utils"
)

const summaryCacheKey = "billing:summary"

// BillingService is the lifecycle API: every create/update/delete/transition
// the presentation layer performs goes through here. Existence and validation
// checks always run before any store mutation, so a failed call leaves the
// store untouched.
type BillingService struct {
	clients   repository.ClientRepository
	contracts repository.ContractRepository
	invoices  repository.InvoiceRepository
	redis     *redis.Client
	docs      storage.DocumentStorage
	cfg       *config.Config
	log       zerolog.Logger

	// now is swappable so tests can pin "today"
	now func() time.Time
}

func NewBillingService(
	clients repository.ClientRepository,
	contracts repository.ContractRepository,
	invoices repository.InvoiceRepository,
	redisClient *redis.Client,
	docs storage.DocumentStorage,
	cfg *config.Config,
) *BillingService {
	return &BillingService{
		clients:   clients,
		contracts: contracts,
		invoices:  invoices,
		redis:     redisClient,
		docs:      docs,
		cfg:       cfg,
		log:       logger.WithComponent("billing"),
		now:       time.Now,
	}
}

// WithNow pins the service clock. Test hook.
func (s *BillingService) WithNow(now func() time.Time) *BillingService {
	s.now = now
	return s
}

func (s *BillingService) today() domain.Date {
	return domain.DateOf(s.now())
}

// --- Clients ---

func (s *BillingService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	return clients, nil
}

func (s *BillingService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clients.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapClientNotFound(clientID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}
	return client, nil
}

func (s *BillingService) AddClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.WrapValidation("client name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.WrapValidation("client email is required")
	}
	if req.Rate.IsNegative() {
		return nil, apperrors.WrapValidation("client rate cannot be negative")
	}

	clientID, err := s.clients.NextClientID(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	documents := make(domain.DocumentList, 0, len(req.Documents))
	for _, doc := range req.Documents {
		url, err := s.docs.Store(ctx, clientID, doc.Name, doc.Data)
		if err != nil {
			return nil, apperrors.WrapExternalService("document storage", err)
		}
		documents = append(documents, domain.ClientDocument{Name: doc.Name, URL: url})
	}

	now := s.now()
	client := &domain.Client{
		ID:        uuid.New(),
		ClientID:  clientID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Rate:      req.Rate,
		Address:   req.Address,
		Documents: documents,
		AvatarURL: initialsAvatarURL(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clients.Insert(ctx, client); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.log.Info().Str("client_id", clientID).Str("name", client.Name).Msg("client added")
	return client, nil
}

func (s *BillingService) UpdateClient(ctx context.Context, clientID string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.WrapValidation("client name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.WrapValidation("client email is required")
	}
	if req.Rate.IsNegative() {
		return nil, apperrors.WrapValidation("client rate cannot be negative")
	}

	for _, doc := range req.NewDocuments {
		url, err := s.docs.Store(ctx, clientID, doc.Name, doc.Data)
		if err != nil {
			return nil, apperrors.WrapExternalService("document storage", err)
		}
		client.Documents = append(client.Documents, domain.ClientDocument{Name: doc.Name, URL: url})
	}

	switch {
	case req.RemovePhoto:
		client.AvatarURL = initialsAvatarURL(req.Name)
	case req.Photo != nil:
		// Inlined so the caller sees the new photo without a storage
		// round trip
		client.AvatarURL = storage.DataURI(req.Photo.Type, req.Photo.Data)
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Rate = req.Rate
	client.Address = req.Address
	client.UpdatedAt = s.now()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return client, nil
}

// DeleteClient removes a client and cascades: every contract of the client
// goes, and every invoice referencing those contracts goes with them.
func (s *BillingService) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return err
	}

	if err := s.clients.Delete(ctx, clientID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}
	if err := s.contracts.DeleteByClientID(ctx, clientID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}
	if err := s.invoices.DeleteByClientID(ctx, clientID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	s.log.Info().Str("client_id", clientID).Msg("client deleted with cascade")
	return nil
}

func (s *BillingService) DeleteClientDocument(ctx context.Context, clientID, documentURL string) error {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	idx := -1
	for i, doc := range client.Documents {
		if doc.URL == documentURL {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperrors.WrapDocumentNotFound(clientID, documentURL)
	}

	if err := s.docs.Remove(ctx, documentURL); err != nil {
		return apperrors.WrapExternalService("document storage", err)
	}

	client.Documents = append(client.Documents[:idx], client.Documents[idx+1:]...)
	client.UpdatedAt = s.now()

	if err := s.clients.Update(ctx, client); err != nil {
		return apperrors.WrapDatabaseError(err)
	}
	return nil
}

// --- Contracts ---

// ListContracts returns all contracts with their status derived against
// today: anything pending whose due date has passed reads as overdue.
func (s *BillingService) ListContracts(ctx context.Context) ([]*domain.Contract, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	for _, c := range contracts {
		c.Status = c.Status.Derive(c.DueDate, today)
	}
	return contracts, nil
}

func (s *BillingService) GetContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapContractNotFound(contractID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	contract.Status = contract.Status.Derive(contract.DueDate, s.today())
	return contract, nil
}

func (s *BillingService) AddContract(ctx context.Context, req *domain.CreateContractRequest) (*domain.Contract, error) {
	client, err := s.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.WrapValidation("contract amount must be greater than zero")
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.WrapValidation("contract due date is required")
	}
	switch req.Type {
	case domain.ContractTypeSingle:
		if req.Installments != 0 {
			return nil, apperrors.WrapValidation("single-payment contracts cannot have installments")
		}
	case domain.ContractTypeInstallment:
		if req.Installments <= 1 {
			return nil, apperrors.WrapValidation("installment contracts require more than one installment")
		}
	default:
		return nil, apperrors.WrapValidation(fmt.Sprintf("unknown contract type %q", req.Type))
	}

	contractID, err := s.contracts.NextContractID(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	rate := req.InterestRate
	if rate.IsZero() {
		rate = client.Rate
	}
	if rate.IsZero() {
		rate = s.cfg.GetDefaultMonthlyRate()
	}

	today := s.today()
	now := s.now()
	contract := &domain.Contract{
		ID:           uuid.New(),
		ContractID:   contractID,
		ClientID:     client.ClientID,
		ClientName:   client.Name,
		ClientEmail:  client.Email,
		Amount:       req.Amount,
		IssueDate:    today,
		DueDate:      req.DueDate,
		Status:       domain.StatusPending.Derive(req.DueDate, today),
		InterestRate: rate,
		Type:         req.Type,
		Installments: req.Installments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.contracts.Insert(ctx, contract); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	s.log.Info().
		Str("contract_id", contractID).
		Str("client_id", client.ClientID).
		Str("type", contract.Type).
		Msg("contract added")
	return contract, nil
}

// UpdateContractStatus applies an explicit status transition. Entering paid
// stamps today's date as paymentDate; leaving paid clears it. The derivation
// pass runs once more afterwards, so setting pending on a past-due contract
// snaps straight back to overdue.
func (s *BillingService) UpdateContractStatus(ctx context.Context, contractID string, status domain.Status) (*domain.Contract, error) {
	if !status.Valid() {
		return nil, apperrors.WrapValidation(fmt.Sprintf("unknown status %q", status))
	}

	contract, err := s.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapContractNotFound(contractID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	contract.Status = status
	if status == domain.StatusPaid {
		contract.PaymentDate = &today
	} else {
		contract.PaymentDate = nil
	}
	contract.Status = contract.Status.Derive(contract.DueDate, today)
	contract.UpdatedAt = s.now()

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	return contract, nil
}

// DeleteContract removes a contract and every invoice generated from it.
func (s *BillingService) DeleteContract(ctx context.Context, contractID string) error {
	if _, err := s.contracts.GetByContractID(ctx, contractID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapContractNotFound(contractID)
		}
		return apperrors.WrapDatabaseError(err)
	}

	if err := s.contracts.Delete(ctx, contractID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}
	if err := s.invoices.DeleteByContractID(ctx, contractID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	s.log.Info().Str("contract_id", contractID).Msg("contract deleted with cascade")
	return nil
}

// --- Invoice generation ---

// GenerateInvoices expands a contract into its invoice set. Generation is
// single-shot per contract: a second call fails with AlreadyGenerated and
// produces nothing.
func (s *BillingService) GenerateInvoices(ctx context.Context, contractID string) ([]*domain.Invoice, error) {
	contract, err := s.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapContractNotFound(contractID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	exists, err := s.invoices.ExistsByContractID(ctx, contractID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if exists {
		return nil, apperrors.WrapAlreadyGenerated(contractID)
	}

	issueDate := s.today()
	now := s.now()

	count := 1
	if contract.Type == domain.ContractTypeInstallment {
		count = contract.Installments
	}
	amounts := utils.SplitInstallments(contract.Amount, count)

	generated := make([]*domain.Invoice, 0, count)
	for i := 0; i < count; i++ {
		invoiceID, err := s.invoices.NextInvoiceID(ctx)
		if err != nil {
			return nil, apperrors.WrapDatabaseError(err)
		}

		dueDate := contract.DueDate.AddMonths(i)
		invoice := &domain.Invoice{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			ContractID:  contract.ContractID,
			ClientID:    contract.ClientID,
			ClientName:  contract.ClientName,
			ClientEmail: contract.ClientEmail,
			Amount:      amounts[i],
			IssueDate:   issueDate,
			DueDate:     dueDate,
			Status:      domain.StatusPending.Derive(dueDate, issueDate),
			PaymentDate: nil,
			CreatedAt:   now,
		}
		if contract.Type == domain.ContractTypeInstallment {
			invoice.InstallmentNumber = i + 1
			invoice.TotalInstallments = count
		}

		if err := s.invoices.Insert(ctx, invoice); err != nil {
			return nil, apperrors.WrapDatabaseError(err)
		}
		generated = append(generated, invoice)
	}

	s.invalidateSummary(ctx)
	s.log.Info().
		Str("contract_id", contractID).
		Int("invoices", len(generated)).
		Msg("invoices generated")
	return generated, nil
}

// GenerateInvoicesForAllContracts runs generation over every contract that has
// no invoices yet. Contracts already generated are skipped, not errors.
func (s *BillingService) GenerateInvoicesForAllContracts(ctx context.Context) (int, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return 0, apperrors.WrapDatabaseError(err)
	}

	total := 0
	for _, contract := range contracts {
		generated, err := s.GenerateInvoices(ctx, contract.ContractID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlreadyGenerated) {
				continue
			}
			return total, err
		}
		total += len(generated)
	}
	return total, nil
}

// --- Invoices ---

func (s *BillingService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	for _, inv := range invoices {
		inv.Status = inv.Status.Derive(inv.DueDate, today)
	}
	return invoices, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapInvoiceNotFound(invoiceID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	invoice.Status = invoice.Status.Derive(invoice.DueDate, s.today())
	return invoice, nil
}

func (s *BillingService) ListInvoicesByContract(ctx context.Context, contractID string) ([]*domain.Invoice, error) {
	if _, err := s.contracts.GetByContractID(ctx, contractID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapContractNotFound(contractID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	invoices, err := s.invoices.ListByContractID(ctx, contractID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	for _, inv := range invoices {
		inv.Status = inv.Status.Derive(inv.DueDate, today)
	}
	return invoices, nil
}

// AddInvoice creates a standalone invoice outside contract generation.
func (s *BillingService) AddInvoice(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	client, err := s.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.WrapValidation("invoice amount must be greater than zero")
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.WrapValidation("invoice due date is required")
	}
	if req.ContractID != "" {
		if _, err := s.contracts.GetByContractID(ctx, req.ContractID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.WrapContractNotFound(req.ContractID)
			}
			return nil, apperrors.WrapDatabaseError(err)
		}
	}

	invoiceID, err := s.invoices.NextInvoiceID(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	invoice := &domain.Invoice{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ContractID:  req.ContractID,
		ClientID:    client.ClientID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		Amount:      req.Amount,
		IssueDate:   today,
		DueDate:     req.DueDate,
		Status:      domain.StatusPending.Derive(req.DueDate, today),
		PaymentDate: nil,
		CreatedAt:   s.now(),
	}

	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	return invoice, nil
}

// UpdateInvoiceStatus mirrors UpdateContractStatus: paymentDate side effects
// plus a final derivation pass.
func (s *BillingService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.Status) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, apperrors.WrapValidation(fmt.Sprintf("unknown status %q", status))
	}

	invoice, err := s.invoices.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapInvoiceNotFound(invoiceID)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	today := s.today()
	invoice.Status = status
	if status == domain.StatusPaid {
		invoice.PaymentDate = &today
	} else {
		invoice.PaymentDate = nil
	}
	invoice.Status = invoice.Status.Derive(invoice.DueDate, today)

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	return invoice, nil
}

func (s *BillingService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, err := s.invoices.GetByInvoiceID(ctx, invoiceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.WrapInvoiceNotFound(invoiceID)
		}
		return apperrors.WrapDatabaseError(err)
	}

	if err := s.invoices.Delete(ctx, invoiceID); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx)
	return nil
}

// --- Interest ---

// ContractOverdueInterest computes the display-only interest breakdown for an
// overdue contract using its own monthly rate. Returns nil when the contract
// is not overdue or nothing has accrued.
func (s *BillingService) ContractOverdueInterest(ctx context.Context, contractID string) (*domain.OverdueInterest, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	if contract.Status != domain.StatusOverdue {
		return nil, nil
	}
	return utils.CalculateOverdueInterest(contract.Amount, contract.InterestRate, contract.DueDate, s.today()), nil
}

// InvoiceOverdueInterest computes interest for an overdue invoice. The rate
// comes from the client's default monthly rate, falling back to the owning
// contract's rate, then the configured default.
func (s *BillingService) InvoiceOverdueInterest(ctx context.Context, invoiceID string) (*domain.OverdueInterest, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != domain.StatusOverdue {
		return nil, nil
	}

	rate := decimal.Zero
	if client, err := s.clients.GetByClientID(ctx, invoice.ClientID); err == nil {
		rate = client.Rate
	}
	if rate.IsZero() && invoice.ContractID != "" {
		if contract, err := s.contracts.GetByContractID(ctx, invoice.ContractID); err == nil {
			rate = contract.InterestRate
		}
	}
	if rate.IsZero() {
		rate = s.cfg.GetDefaultMonthlyRate()
	}

	return utils.CalculateOverdueInterest(invoice.Amount, rate, invoice.DueDate, s.today()), nil
}

// --- Maintenance ---

// RefreshOverdueStatuses persists the pending-to-overdue transition for every
// record the derivation pass would reclassify. Run daily by the scheduler so
// the stored state converges even if nobody lists anything.
func (s *BillingService) RefreshOverdueStatuses(ctx context.Context) (int, error) {
	today := s.today()
	updated := 0

	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return 0, apperrors.WrapDatabaseError(err)
	}
	for _, c := range contracts {
		derived := c.Status.Derive(c.DueDate, today)
		if derived == c.Status {
			continue
		}
		c.Status = derived
		c.UpdatedAt = s.now()
		if err := s.contracts.Update(ctx, c); err != nil {
			return updated, apperrors.WrapDatabaseError(err)
		}
		updated++
	}

	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return updated, apperrors.WrapDatabaseError(err)
	}
	for _, inv := range invoices {
		derived := inv.Status.Derive(inv.DueDate, today)
		if derived == inv.Status {
			continue
		}
		inv.Status = derived
		if err := s.invoices.Update(ctx, inv); err != nil {
			return updated, apperrors.WrapDatabaseError(err)
		}
		updated++
	}

	if updated > 0 {
		s.invalidateSummary(ctx)
	}
	s.log.Info().Int("updated", updated).Msg("overdue sweep finished")
	return updated, nil
}

// DueSoonInvoices returns pending invoices due within the next windowDays
// days, for payment reminders.
func (s *BillingService) DueSoonInvoices(ctx context.Context, windowDays int) ([]*domain.Invoice, error) {
	invoices, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	horizon := today.AddDays(windowDays)

	var due []*domain.Invoice
	for _, inv := range invoices {
		if inv.Status != domain.StatusPending {
			continue
		}
		if !inv.DueDate.Before(today) && !inv.DueDate.After(horizon) {
			due = append(due, inv)
		}
	}
	return due, nil
}

// --- Dashboard ---

// DashboardSummary aggregates receivables. The result is cached in Redis when
// a cache is configured and invalidated by every mutation.
func (s *BillingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var summary domain.DashboardSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	invoices, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{
		TotalReceived:    decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalOverdue:     decimal.Zero,
		Invoices:         len(invoices),
		GeneratedAt:      s.now(),
	}

	monthly := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		switch inv.Status {
		case domain.StatusPaid:
			summary.TotalReceived = summary.TotalReceived.Add(inv.Amount)
			if inv.PaymentDate != nil {
				month := fmt.Sprintf("%04d-%02d", inv.PaymentDate.Year(), inv.PaymentDate.Month())
				monthly[month] = monthly[month].Add(inv.Amount)
			}
		case domain.StatusPending:
			summary.TotalOutstanding = summary.TotalOutstanding.Add(inv.Amount)
		case domain.StatusOverdue:
			summary.TotalOutstanding = summary.TotalOutstanding.Add(inv.Amount)
			summary.TotalOverdue = summary.TotalOverdue.Add(inv.Amount)
		}
	}

	months := make([]string, 0, len(monthly))
	for month := range monthly {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		summary.MonthlyRevenue = append(summary.MonthlyRevenue, domain.MonthlyRevenue{
			Month:  month,
			Amount: monthly[month],
		})
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := s.redis.Set(ctx, summaryCacheKey, encoded, s.cfg.Business.SummaryCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("summary cache write failed")
			}
		}
	}

	return summary, nil
}

func (s *BillingService) invalidateSummary(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, summaryCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("summary cache invalidation failed")
	}
}

// initialsAvatarURL builds the placeholder avatar from the first two name
// initials.
func initialsAvatarURL(name string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		runes := []rune(part)
		if len(runes) == 0 {
			continue
		}
		initials = append(initials, unicode.ToUpper(runes[0]))
		if len(initials) == 2 {
			break
		}
	}
	return fmt.Sprintf("https://placehold.co/40x40/E2E8F0/475569?text=%s", string(initials))
}
