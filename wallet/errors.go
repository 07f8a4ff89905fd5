package wallet

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("wallet: required parameter is nil")

	// ErrNoPayments indicates a transaction was requested with no payments.
	ErrNoPayments = errors.New("wallet: at least one payment required")

	// ErrWrongNetwork indicates a payment address carries another
	// network's prefix.
	ErrWrongNetwork = errors.New("wallet: address prefix does not match network")
)
