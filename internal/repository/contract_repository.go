package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/faturado/billing-engine/internal/domain"
)

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, contract_id, client_id, client_name, client_email, amount, issue_date, due_date, status, payment_date, interest_rate, type, installments, created_at, updated_at`

func (r *contractRepository) List(ctx context.Context) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		ORDER BY created_at DESC
	`

	var contracts []*domain.Contract
	err := r.db.SelectContext(ctx, &contracts, query)
	if err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE contract_id = $1
	`

	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract, query, contractID)
	if err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) ListByClientID(ctx context.Context, clientID string) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	var contracts []*domain.Contract
	err := r.db.SelectContext(ctx, &contracts, query, clientID)
	if err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) Insert(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		contract.ID,
		contract.ContractID,
		contract.ClientID,
		contract.ClientName,
		contract.ClientEmail,
		contract.Amount,
		contract.IssueDate,
		contract.DueDate,
		contract.Status,
		contract.PaymentDate,
		contract.InterestRate,
		contract.Type,
		contract.Installments,
		contract.CreatedAt,
		contract.UpdatedAt,
	)

	return err
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET amount = $2, due_date = $3, status = $4, payment_date = $5, interest_rate = $6, installments = $7, updated_at = $8
		WHERE contract_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		contract.ContractID,
		contract.Amount,
		contract.DueDate,
		contract.Status,
		contract.PaymentDate,
		contract.InterestRate,
		contract.Installments,
		time.Now(),
	)

	return err
}

func (r *contractRepository) Delete(ctx context.Context, contractID string) error {
	query := `DELETE FROM contracts WHERE contract_id = $1`

	_, err := r.db.ExecContext(ctx, query, contractID)
	return err
}

func (r *contractRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	query := `DELETE FROM contracts WHERE client_id = $1`

	_, err := r.db.ExecContext(ctx, query, clientID)
	return err
}

func (r *contractRepository) NextContractID(ctx context.Context) (string, error) {
	var next int64
	if err := r.db.GetContext(ctx, &next, `SELECT nextval('contract_id_seq')`); err != nil {
		return "", err
	}
	return FormatContractID(next), nil
}
