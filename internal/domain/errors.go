package domain

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTerminalStatus      = errors.New("transaction is in a terminal status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrReasonRequired      = errors.New("cancellation reason is required")
	ErrStoreUnavailable    = errors.New("authoritative store unavailable")
)
