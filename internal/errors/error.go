// Package errors provides the failures reported by the beer inventory.
package errors

import (
	"errors"
	"fmt"
)

var ErrBeerNotFound = errors.New("beer not found")
var ErrBeerAlreadyRegistered = errors.New("beer already registered")

var ErrStockExceeded = errors.New("stock would exceed max capacity")
var ErrInsufficientStock = errors.New("insufficient stock")
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// NotFoundError reports a lookup by name or by id that matched nothing.
// Exactly one of Name and ID is set.
type NotFoundError struct {
	Name string
	ID   int64
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("beer with name %s not found", e.Name)
	}
	return fmt.Sprintf("beer with id %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrBeerNotFound
}

// DuplicateNameError reports a create for a name that is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("beer with name %s already registered", e.Name)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrBeerAlreadyRegistered
}

// StockError reports a quantity change that would leave the stock outside [0, Max].
// Cause is ErrStockExceeded or ErrInsufficientStock.
type StockError struct {
	ID        int64
	Requested int
	Quantity  int
	Max       int
	Cause     error
}

func (e *StockError) Error() string {
	if errors.Is(e.Cause, ErrStockExceeded) {
		return fmt.Sprintf("beer with id %d: adding %d to %d exceeds max capacity %d", e.ID, e.Requested, e.Quantity, e.Max)
	}
	return fmt.Sprintf("beer with id %d: cannot remove %d, only %d in stock", e.ID, e.Requested, e.Quantity)
}

func (e *StockError) Unwrap() error {
	return e.Cause
}
