package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/faturado/billing-engine/internal/domain"
)

// Repositories return database/sql's ErrNoRows when an id does not resolve,
// regardless of backing store; the service layer maps that onto the domain
// error taxonomy.

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)

	GetByClientID(ctx context.Context, clientID string) (*domain.Client, error)

	Insert(ctx context.Context, client *domain.Client) error

	Update(ctx context.Context, client *domain.Client) error

	Delete(ctx context.Context, clientID string) error

	// NextClientID reserves the next sequential public client id. Ids are
	// never reused, even after deletions.
	NextClientID(ctx context.Context) (string, error)
}

// ContractRepository defines the interface for contract data operations
type ContractRepository interface {
	// List returns contracts most-recent-first.
	List(ctx context.Context) ([]*domain.Contract, error)

	GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error)

	ListByClientID(ctx context.Context, clientID string) ([]*domain.Contract, error)

	Insert(ctx context.Context, contract *domain.Contract) error

	Update(ctx context.Context, contract *domain.Contract) error

	Delete(ctx context.Context, contractID string) error

	DeleteByClientID(ctx context.Context, clientID string) error

	// NextContractID reserves the next CONnnn id.
	NextContractID(ctx context.Context) (string, error)
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// List returns invoices most-recent-first.
	List(ctx context.Context) ([]*domain.Invoice, error)

	GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	ListByContractID(ctx context.Context, contractID string) ([]*domain.Invoice, error)

	// ExistsByContractID reports whether any invoice references the contract.
	ExistsByContractID(ctx context.Context, contractID string) (bool, error)

	Insert(ctx context.Context, invoice *domain.Invoice) error

	Update(ctx context.Context, invoice *domain.Invoice) error

	Delete(ctx context.Context, invoiceID string) error

	DeleteByContractID(ctx context.Context, contractID string) error

	DeleteByClientID(ctx context.Context, clientID string) error

	// NextInvoiceID reserves the next INVnnn id. The counter is scoped to the
	// whole collection, not per contract.
	NextInvoiceID(ctx context.Context) (string, error)
}

// FormatClientID renders a client sequence number as its public id.
func FormatClientID(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatContractID renders a contract sequence number as CONnnn.
func FormatContractID(n int64) string {
	return fmt.Sprintf("CON%03d", n)
}

// FormatInvoiceID renders an invoice sequence number as INVnnn.
func FormatInvoiceID(n int64) string {
	return fmt.Sprintf("INV%03d", n)
}
