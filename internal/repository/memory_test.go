package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturado/billing-engine/internal/domain"
)

func testClient(clientID, name string) *domain.Client {
	return &domain.Client{
		ID:       uuid.New(),
		ClientID: clientID,
		Name:     name,
		Email:    name + "@example.com",
		Rate:     decimal.NewFromFloat(1.5),
	}
}

func testContract(contractID, clientID string) *domain.Contract {
	return &domain.Contract{
		ID:         uuid.New(),
		ContractID: contractID,
		ClientID:   clientID,
		Amount:     decimal.NewFromInt(1000),
		IssueDate:  domain.NewDate(2024, 5, 1),
		DueDate:    domain.NewDate(2024, 6, 1),
		Status:     domain.StatusPending,
		Type:       domain.ContractTypeSingle,
	}
}

func testInvoice(invoiceID, contractID, clientID string) *domain.Invoice {
	return &domain.Invoice{
		ID:         uuid.New(),
		InvoiceID:  invoiceID,
		ContractID: contractID,
		ClientID:   clientID,
		Amount:     decimal.NewFromInt(1000),
		IssueDate:  domain.NewDate(2024, 5, 1),
		DueDate:    domain.NewDate(2024, 6, 1),
		Status:     domain.StatusPending,
	}
}

func TestMemoryStore_NotFoundIsErrNoRows(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Clients().GetByClientID(ctx, "1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.Contracts().GetByContractID(ctx, "CON001")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.Invoices().GetByInvoiceID(ctx, "INV001")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, store.Clients().Delete(ctx, "1"), sql.ErrNoRows)
	assert.ErrorIs(t, store.Contracts().Update(ctx, testContract("CON001", "1")), sql.ErrNoRows)
}

func TestMemoryStore_CountersNeverReused(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	clients := store.Clients()

	id1, err := clients.NextClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", id1)

	require.NoError(t, clients.Insert(ctx, testClient(id1, "first")))
	require.NoError(t, clients.Delete(ctx, id1))

	id2, err := clients.NextClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", id2)

	contracts := store.Contracts()
	conID, err := contracts.NextContractID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CON001", conID)

	invID, err := store.Invoices().NextInvoiceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV001", invID)
}

func TestMemoryStore_ListOrderMostRecentFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	contracts := store.Contracts()

	require.NoError(t, contracts.Insert(ctx, testContract("CON001", "1")))
	require.NoError(t, contracts.Insert(ctx, testContract("CON002", "1")))
	require.NoError(t, contracts.Insert(ctx, testContract("CON003", "2")))

	list, err := contracts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "CON003", list[0].ContractID)
	assert.Equal(t, "CON002", list[1].ContractID)
	assert.Equal(t, "CON001", list[2].ContractID)

	byClient, err := contracts.ListByClientID(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}

func TestMemoryStore_RecordsAreCloned(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	contracts := store.Contracts()

	original := testContract("CON001", "1")
	require.NoError(t, contracts.Insert(ctx, original))

	// Mutating what the caller holds must not leak into the store.
	original.Status = domain.StatusPaid

	got, err := contracts.GetByContractID(ctx, "CON001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	// And mutating what a read returned must not either.
	got.Status = domain.StatusWrittenOff
	again, err := contracts.GetByContractID(ctx, "CON001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)
}

func TestMemoryStore_InvoiceScopedDeletes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	invoices := store.Invoices()

	require.NoError(t, invoices.Insert(ctx, testInvoice("INV001", "CON001", "1")))
	require.NoError(t, invoices.Insert(ctx, testInvoice("INV002", "CON001", "1")))
	require.NoError(t, invoices.Insert(ctx, testInvoice("INV003", "CON002", "2")))

	exists, err := invoices.ExistsByContractID(ctx, "CON001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, invoices.DeleteByContractID(ctx, "CON001"))

	exists, err = invoices.ExistsByContractID(ctx, "CON001")
	require.NoError(t, err)
	assert.False(t, exists)

	remaining, err := invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "INV003", remaining[0].InvoiceID)

	require.NoError(t, invoices.DeleteByClientID(ctx, "2"))
	remaining, err = invoices.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestMemoryStore_BulkDeleteClearsDroppedSlots(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Contracts().Insert(ctx, testContract("CON001", "1")))
	require.NoError(t, store.Contracts().Insert(ctx, testContract("CON002", "1")))
	require.NoError(t, store.Contracts().Insert(ctx, testContract("CON003", "2")))

	backing := store.contracts
	require.NoError(t, store.Contracts().DeleteByClientID(ctx, "1"))

	// The in-place filter must not leave dropped records alive in the old
	// backing array.
	require.Len(t, store.contracts, 1)
	for i := 1; i < len(backing); i++ {
		assert.Nil(t, backing[i], "slot %d still holds a deleted contract", i)
	}

	require.NoError(t, store.Invoices().Insert(ctx, testInvoice("INV001", "CON003", "2")))
	require.NoError(t, store.Invoices().Insert(ctx, testInvoice("INV002", "CON003", "2")))

	invoiceBacking := store.invoices
	require.NoError(t, store.Invoices().DeleteByContractID(ctx, "CON003"))

	assert.Empty(t, store.invoices)
	for i := range invoiceBacking {
		assert.Nil(t, invoiceBacking[i], "slot %d still holds a deleted invoice", i)
	}
}

func TestSeedDemoData(t *testing.T) {
	store := NewMemoryStore()
	SeedDemoData(store)
	ctx := context.Background()

	clients, err := store.Clients().List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	contracts, err := store.Contracts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 3)

	invoices, err := store.Invoices().List(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	paid, err := store.Invoices().GetByInvoiceID(ctx, "INV001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2024-05-28", paid.PaymentDate.String())

	// Counters continue past the fixture ids.
	nextClient, err := store.Clients().NextClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4", nextClient)

	nextContract, err := store.Contracts().NextContractID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CON004", nextContract)

	nextInvoice, err := store.Invoices().NextInvoiceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV003", nextInvoice)
}
