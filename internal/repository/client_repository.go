package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/faturado/billing-engine/internal/domain"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, client_id, name, email, phone, rate, address, documents, avatar_url, created_at, updated_at
		FROM clients
		ORDER BY created_at
	`

	var clients []*domain.Client
	err := r.db.SelectContext(ctx, &clients, query)
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) GetByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT id, client_id, name, email, phone, rate, address, documents, avatar_url, created_at, updated_at
		FROM clients
		WHERE client_id = $1
	`

	var client domain.Client
	err := r.db.GetContext(ctx, &client, query, clientID)
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) Insert(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, client_id, name, email, phone, rate, address, documents, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.Rate,
		client.Address,
		client.Documents,
		client.AvatarURL,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, rate = $5, address = $6, documents = $7, avatar_url = $8, updated_at = $9
		WHERE client_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.Rate,
		client.Address,
		client.Documents,
		client.AvatarURL,
		time.Now(),
	)

	return err
}

func (r *clientRepository) Delete(ctx context.Context, clientID string) error {
	query := `DELETE FROM clients WHERE client_id = $1`

	_, err := r.db.ExecContext(ctx, query, clientID)
	return err
}

func (r *clientRepository) NextClientID(ctx context.Context) (string, error) {
	var next int64
	if err := r.db.GetContext(ctx, &next, `SELECT nextval('client_id_seq')`); err != nil {
		return "", err
	}
	return FormatClientID(next), nil
}
