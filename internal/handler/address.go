package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/faturado/billing-engine/internal/address"
	"github.com/faturado/billing-engine/pkg/response"
)

type AddressHandler struct {
	lookup address.Lookuper
}

func NewAddressHandler(lookup address.Lookuper) *AddressHandler {
	return &AddressHandler{lookup: lookup}
}

// Lookup resolves a CEP for client forms. Upstream failures surface as
// recoverable errors, never a crash.
func (h *AddressHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	cep := mux.Vars(r)["cep"]

	addr, err := h.lookup.Lookup(r.Context(), cep)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, addr)
}
