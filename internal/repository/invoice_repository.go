package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/faturado/billing-engine/internal/domain"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_id, contract_id, client_id, client_name, client_email, amount, issue_date, due_date, status, payment_date, installment_number, total_installments, created_at`

func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		ORDER BY created_at DESC, installment_number DESC
	`

	var invoices []*domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, query)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1
	`

	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, query, invoiceID)
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) ListByContractID(ctx context.Context, contractID string) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE contract_id = $1
		ORDER BY installment_number
	`

	var invoices []*domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, query, contractID)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) ExistsByContractID(ctx context.Context, contractID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE contract_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, contractID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *invoiceRepository) Insert(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID,
		invoice.InvoiceID,
		invoice.ContractID,
		invoice.ClientID,
		invoice.ClientName,
		invoice.ClientEmail,
		invoice.Amount,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.PaymentDate,
		invoice.InstallmentNumber,
		invoice.TotalInstallments,
		invoice.CreatedAt,
	)

	return err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $2, payment_date = $3
		WHERE invoice_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceID,
		invoice.Status,
		invoice.PaymentDate,
	)

	return err
}

func (r *invoiceRepository) Delete(ctx context.Context, invoiceID string) error {
	query := `DELETE FROM invoices WHERE invoice_id = $1`

	_, err := r.db.ExecContext(ctx, query, invoiceID)
	return err
}

func (r *invoiceRepository) DeleteByContractID(ctx context.Context, contractID string) error {
	query := `DELETE FROM invoices WHERE contract_id = $1`

	_, err := r.db.ExecContext(ctx, query, contractID)
	return err
}

func (r *invoiceRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	query := `DELETE FROM invoices WHERE client_id = $1`

	_, err := r.db.ExecContext(ctx, query, clientID)
	return err
}

func (r *invoiceRepository) NextInvoiceID(ctx context.Context) (string, error) {
	var next int64
	if err := r.db.GetContext(ctx, &next, `SELECT nextval('invoice_id_seq')`); err != nil {
		return "", err
	}
	return FormatInvoiceID(next), nil
}
