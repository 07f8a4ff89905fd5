package spend

import "errors"

var (
	// ErrInsufficientFunds indicates the discovered coins cannot cover
	// the requested outputs plus fee.
	ErrInsufficientFunds = errors.New("spend: insufficient funds")

	// ErrDuplicateCoin indicates the same coin identity was selected
	// twice. This is an internal invariant violation, not a user error.
	ErrDuplicateCoin = errors.New("spend: duplicate coin selected")

	// ErrCostExceeded indicates the bundle's total cost is above the
	// configured fraction of the network cost ceiling.
	ErrCostExceeded = errors.New("spend: cost exceeds policy ceiling")

	// ErrFeeMismatch indicates the realized fee differs from the
	// requested fee. This is an internal invariant violation.
	ErrFeeMismatch = errors.New("spend: realized fee does not match requested fee")

	// ErrNoInputs indicates a build was attempted with no selected coins.
	ErrNoInputs = errors.New("spend: no coins selected")

	// ErrMissingPublicKey indicates no public key is known for a selected
	// coin's puzzle hash.
	ErrMissingPublicKey = errors.New("spend: no public key for puzzle hash")

	// ErrPuzzleMismatch indicates a supplied public key does not hash to
	// the coin's puzzle hash.
	ErrPuzzleMismatch = errors.New("spend: public key does not match puzzle hash")

	// ErrUnderfunded indicates selected coins total below outputs plus
	// fee. Unreachable through Select; an invariant violation when seen.
	ErrUnderfunded = errors.New("spend: selected total below outputs plus fee")

	// ErrInvalidBundle indicates a malformed spend-bundle document.
	ErrInvalidBundle = errors.New("spend: invalid spend bundle")
)
