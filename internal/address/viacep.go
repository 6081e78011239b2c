// Package address looks up Brazilian postal codes (CEP) against the ViaCEP
// service. The lookup is a plain remote collaborator: a failed or missing CEP
// surfaces as a typed error, never a crash.
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/faturado/billing-engine/internal/logger"
	apperrors "github.com/faturado/billing-engine/pkg/errors"
)

// Address is a successful lookup result. Unlike the upstream payload there is
// no "maybe error" field: callers get either an Address or an error.
type Address struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	Estado     string `json:"estado"`
}

// Lookuper resolves an 8-digit CEP to a street address.
type Lookuper interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.WithComponent("viacep"),
	}
}

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// viacepResponse mirrors the upstream payload, which signals a miss with an
// "erro" field on an otherwise 200 response.
type viacepResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	if !cepPattern.MatchString(cep) {
		return nil, apperrors.WrapValidation(fmt.Sprintf("CEP must be exactly 8 digits, got %q", cep))
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.WrapExternalService("viacep", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("cep", cep).Msg("lookup failed")
		return nil, apperrors.WrapExternalService("viacep", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("cep", cep).Msg("lookup failed")
		return nil, apperrors.WrapExternalService("viacep", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload viacepResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.WrapExternalService("viacep", err)
	}

	if payload.Erro {
		return nil, apperrors.NewBusinessError(
			apperrors.ErrCodeAddressNotFound,
			fmt.Sprintf("CEP %s not found", cep),
			apperrors.ErrAddressNotFound,
		)
	}

	return &Address{
		Logradouro: payload.Logradouro,
		Bairro:     payload.Bairro,
		Cidade:     payload.Localidade,
		Estado:     payload.UF,
	}, nil
}
