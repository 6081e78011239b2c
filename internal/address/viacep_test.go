package address

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/faturado/billing-engine/pkg/errors"
)

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01001000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01001-000",
			"logradouro": "Praça da Sé",
			"bairro": "Sé",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	addr, err := client.Lookup(context.Background(), "01001000")
	require.NoError(t, err)
	assert.Equal(t, "Praça da Sé", addr.Logradouro)
	assert.Equal(t, "Sé", addr.Bairro)
	assert.Equal(t, "São Paulo", addr.Cidade)
	assert.Equal(t, "SP", addr.Estado)
}

func TestLookup_NotFound(t *testing.T) {
	// ViaCEP answers 200 with an "erro" flag for unknown CEPs.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, apperrors.ErrAddressNotFound)
}

func TestLookup_InvalidCEP(t *testing.T) {
	client := NewClient("http://unused", time.Second)

	for _, cep := range []string{"", "1234", "123456789", "01001-00", "abcdefgh"} {
		_, err := client.Lookup(context.Background(), cep)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "cep %q", cep)
	}
}

func TestLookup_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Lookup(context.Background(), "01001000")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)

	server.Close()
	_, err = client.Lookup(context.Background(), "01001000")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
