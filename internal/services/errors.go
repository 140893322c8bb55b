package services

import "errors"

var (
	// ErrValidation rejects malformed input before anything is persisted.
	ErrValidation = errors.New("invalid input")
	// ErrInsufficientHoldings rejects a sell larger than the held quantity.
	ErrInsufficientHoldings = errors.New("sell exceeds held quantity")
	// ErrInsufficientFunds rejects a withdrawal larger than the cash balance.
	ErrInsufficientFunds = errors.New("withdrawal exceeds balance")
	// ErrPersistence wraps a durable store write failure; the operation is
	// not committed and no partial state is retained.
	ErrPersistence = errors.New("durable store write failed")
	// ErrNotFound means the referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")
)
