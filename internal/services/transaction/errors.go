package transaction

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("transaction amount must be positive")
	ErrSelfTransfer        = errors.New("sender and receiver cannot be the same")
	ErrSenderNotFound      = errors.New("sender not found")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrStorageUnavailable  = errors.New("transaction storage unavailable")
)
