package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientDocument is a stored attachment reference. The bytes live in an
// external document store; only the name/url pair is kept here.
type ClientDocument struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DocumentList persists as JSONB.
type DocumentList []ClientDocument

func (l DocumentList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *DocumentList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into DocumentList", src)
	}
}

// ClientAddress is the structured billing address. Field names follow the
// Brazilian postal convention used by the CEP lookup service.
type ClientAddress struct {
	CEP        string `json:"cep,omitempty"`
	Logradouro string `json:"logradouro,omitempty"`
	Numero     string `json:"numero,omitempty"`
	Bairro     string `json:"bairro,omitempty"`
	Referencia string `json:"referencia,omitempty"`
	Cidade     string `json:"cidade,omitempty"`
	Estado     string `json:"estado,omitempty"`
}

func (a ClientAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ClientAddress) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = ClientAddress{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into ClientAddress", src)
	}
}

// Client represents a billed client.
type Client struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ClientID  string          `json:"client_id" db:"client_id"`
	Name      string          `json:"name" db:"name"`
	Email     string          `json:"email" db:"email"`
	Phone     string          `json:"phone,omitempty" db:"phone"`
	Rate      decimal.Decimal `json:"rate" db:"rate"` // default monthly interest %, zero when unset
	Address   *ClientAddress  `json:"address,omitempty" db:"address"`
	Documents DocumentList    `json:"documents" db:"documents"`
	AvatarURL string          `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// DocumentUpload carries raw attachment bytes into the lifecycle API. Data is
// base64 on the wire.
type DocumentUpload struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type,omitempty"`
	Data []byte `json:"data"`
}

type CreateClientRequest struct {
	Name      string           `json:"name" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	Phone     string           `json:"phone,omitempty"`
	Rate      decimal.Decimal  `json:"rate"`
	Address   *ClientAddress   `json:"address,omitempty"`
	Documents []DocumentUpload `json:"documents,omitempty" validate:"dive"`
}

type UpdateClientRequest struct {
	Name         string           `json:"name" validate:"required"`
	Email        string           `json:"email" validate:"required,email"`
	Phone        string           `json:"phone,omitempty"`
	Rate         decimal.Decimal  `json:"rate"`
	Address      *ClientAddress   `json:"address,omitempty"`
	NewDocuments []DocumentUpload `json:"new_documents,omitempty" validate:"dive"`
	Photo        *DocumentUpload  `json:"photo,omitempty"`
	RemovePhoto  bool             `json:"remove_photo,omitempty"`
}
