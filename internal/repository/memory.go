package repository

import (
	"context"
	"database/sql"
	"sync"

	"github.com/faturado/billing-engine/internal/domain"
)

// MemoryStore is the in-memory entity store: ground truth for clients,
// contracts and invoices held as process state. The three repository
// interfaces are served as views over the same store, so cascades observe a
// single consistent collection set. The engine assumes one logical writer;
// the mutex only guards against the HTTP server's per-request goroutines
// interleaving.
type MemoryStore struct {
	mu sync.RWMutex

	clients   []*domain.Client
	contracts []*domain.Contract
	invoices  []*domain.Invoice

	clientSeq   int64
	contractSeq int64
	invoiceSeq  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Clients returns the ClientRepository view of the store.
func (s *MemoryStore) Clients() ClientRepository {
	return &memoryClientRepository{s: s}
}

// Contracts returns the ContractRepository view of the store.
func (s *MemoryStore) Contracts() ContractRepository {
	return &memoryContractRepository{s: s}
}

// Invoices returns the InvoiceRepository view of the store.
func (s *MemoryStore) Invoices() InvoiceRepository {
	return &memoryInvoiceRepository{s: s}
}

// Records are cloned on the way in and out so callers never hold aliases into
// store state.

func cloneClient(c *domain.Client) *domain.Client {
	cp := *c
	if c.Address != nil {
		addr := *c.Address
		cp.Address = &addr
	}
	cp.Documents = append(domain.DocumentList(nil), c.Documents...)
	return &cp
}

func cloneContract(c *domain.Contract) *domain.Contract {
	cp := *c
	if c.PaymentDate != nil {
		d := *c.PaymentDate
		cp.PaymentDate = &d
	}
	return &cp
}

func cloneInvoice(i *domain.Invoice) *domain.Invoice {
	cp := *i
	if i.PaymentDate != nil {
		d := *i.PaymentDate
		cp.PaymentDate = &d
	}
	return &cp
}

type memoryClientRepository struct {
	s *MemoryStore
}

func (r *memoryClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, cloneClient(c))
	}
	return out, nil
}

func (r *memoryClientRepository) GetByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if c.ClientID == clientID {
			return cloneClient(c), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryClientRepository) Insert(ctx context.Context, client *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clients = append(r.s.clients, cloneClient(client))
	return nil
}

func (r *memoryClientRepository) Update(ctx context.Context, client *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.clients {
		if c.ClientID == client.ClientID {
			r.s.clients[i] = cloneClient(client)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryClientRepository) Delete(ctx context.Context, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.clients {
		if c.ClientID == clientID {
			r.s.clients = append(r.s.clients[:i], r.s.clients[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryClientRepository) NextClientID(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clientSeq++
	return FormatClientID(r.s.clientSeq), nil
}

type memoryContractRepository struct {
	s *MemoryStore
}

func (r *memoryContractRepository) List(ctx context.Context) ([]*domain.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Contract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		out = append(out, cloneContract(c))
	}
	return out, nil
}

func (r *memoryContractRepository) GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.contracts {
		if c.ContractID == contractID {
			return cloneContract(c), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryContractRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Contract
	for _, c := range r.s.contracts {
		if c.ClientID == clientID {
			out = append(out, cloneContract(c))
		}
	}
	return out, nil
}

func (r *memoryContractRepository) Insert(ctx context.Context, contract *domain.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Most-recent-first, matching list order
	r.s.contracts = append([]*domain.Contract{cloneContract(contract)}, r.s.contracts...)
	return nil
}

func (r *memoryContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.contracts {
		if c.ContractID == contract.ContractID {
			r.s.contracts[i] = cloneContract(contract)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryContractRepository) Delete(ctx context.Context, contractID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.contracts {
		if c.ContractID == contractID {
			r.s.contracts = append(r.s.contracts[:i], r.s.contracts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryContractRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.contracts[:0]
	for _, c := range r.s.contracts {
		if c.ClientID != clientID {
			kept = append(kept, c)
		}
	}
	// Clear the tail so dropped records do not linger in the backing array
	for i := len(kept); i < len(r.s.contracts); i++ {
		r.s.contracts[i] = nil
	}
	r.s.contracts = kept
	return nil
}

func (r *memoryContractRepository) NextContractID(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.contractSeq++
	return FormatContractID(r.s.contractSeq), nil
}

type memoryInvoiceRepository struct {
	s *MemoryStore
}

func (r *memoryInvoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		out = append(out, cloneInvoice(inv))
	}
	return out, nil
}

func (r *memoryInvoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, inv := range r.s.invoices {
		if inv.InvoiceID == invoiceID {
			return cloneInvoice(inv), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryInvoiceRepository) ListByContractID(ctx context.Context, contractID string) ([]*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Invoice
	for _, inv := range r.s.invoices {
		if inv.ContractID == contractID {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

func (r *memoryInvoiceRepository) ExistsByContractID(ctx context.Context, contractID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, inv := range r.s.invoices {
		if inv.ContractID == contractID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryInvoiceRepository) Insert(ctx context.Context, invoice *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.invoices = append([]*domain.Invoice{cloneInvoice(invoice)}, r.s.invoices...)
	return nil
}

func (r *memoryInvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, inv := range r.s.invoices {
		if inv.InvoiceID == invoice.InvoiceID {
			r.s.invoices[i] = cloneInvoice(invoice)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryInvoiceRepository) Delete(ctx context.Context, invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, inv := range r.s.invoices {
		if inv.InvoiceID == invoiceID {
			r.s.invoices = append(r.s.invoices[:i], r.s.invoices[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryInvoiceRepository) DeleteByContractID(ctx context.Context, contractID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.invoices[:0]
	for _, inv := range r.s.invoices {
		if inv.ContractID != contractID {
			kept = append(kept, inv)
		}
	}
	for i := len(kept); i < len(r.s.invoices); i++ {
		r.s.invoices[i] = nil
	}
	r.s.invoices = kept
	return nil
}

func (r *memoryInvoiceRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.invoices[:0]
	for _, inv := range r.s.invoices {
		if inv.ClientID != clientID {
			kept = append(kept, inv)
		}
	}
	for i := len(kept); i < len(r.s.invoices); i++ {
		r.s.invoices[i] = nil
	}
	r.s.invoices = kept
	return nil
}

func (r *memoryInvoiceRepository) NextInvoiceID(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.invoiceSeq++
	return FormatInvoiceID(r.s.invoiceSeq), nil
}
