package service

import (
	"errors"
	"fmt"
)

// Business errors surfaced to the HTTP layer. Handlers map NotFound-style
// errors to 404, the rest to 400; anything else is a 500.
var (
	ErrEmptyCart           = errors.New("walang items sa cart")
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrDebtNotFound        = errors.New("debt not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDebtAlreadyPaid     = errors.New("bayad na itong utang")
	ErrInvalidCredential   = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
)

// ValidationError reports the first failed field of a request payload
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// InsufficientStockError rejects a whole cart when a non-tingi line exceeds
// the available stock.
type InsufficientStockError struct {
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("kulang ang stock ng %s. Available: %g", e.ProductName, e.Available)
}

// CreditLimitError carries the detail the counter UI shows when a manual
// utang entry would push a customer past their limit.
type CreditLimitError struct {
	CustomerName string
	Limit        float64
	Outstanding  float64
}

func (e *CreditLimitError) Error() string {
	return fmt.Sprintf("lagpas na sa credit limit ni %s. Limit: ₱%.2f, Current: ₱%.2f",
		e.CustomerName, e.Limit, e.Outstanding)
}

// IsNotFound reports whether err should surface as a 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrDebtNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
