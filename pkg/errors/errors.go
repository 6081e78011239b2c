package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrAlreadyGenerated = errors.New("invoices already generated for contract")
	ErrValidation       = errors.New("validation failed")
	ErrExternalService  = errors.New("external service failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeClientNotFound   = "CLIENT_NOT_FOUND"
	ErrCodeContractNotFound = "CONTRACT_NOT_FOUND"
	ErrCodeInvoiceNotFound  = "INVOICE_NOT_FOUND"
	ErrCodeDocumentNotFound = "DOCUMENT_NOT_FOUND"
	ErrCodeAddressNotFound  = "ADDRESS_NOT_FOUND"
	ErrCodeAlreadyGenerated = "ALREADY_GENERATED"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapClientNotFound(clientID string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %s not found", clientID),
		ErrClientNotFound,
	)
}

func WrapContractNotFound(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractNotFound,
		fmt.Sprintf("Contract with ID %s not found", contractID),
		ErrContractNotFound,
	)
}

func WrapInvoiceNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Invoice with ID %s not found", invoiceID),
		ErrInvoiceNotFound,
	)
}

func WrapDocumentNotFound(clientID, url string) *BusinessError {
	return NewBusinessError(
		ErrCodeDocumentNotFound,
		fmt.Sprintf("Client %s has no document %s", clientID, url),
		ErrDocumentNotFound,
	)
}

func WrapAlreadyGenerated(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyGenerated,
		fmt.Sprintf("Invoices for contract %s were already generated", contractID),
		ErrAlreadyGenerated,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		message,
		ErrValidation,
	)
}

func WrapExternalService(service string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeExternalService,
		fmt.Sprintf("%s request failed", service),
		fmt.Errorf("%w: %v", ErrExternalService, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
