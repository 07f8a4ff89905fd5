package signer

import "errors"

var (
	// ErrUnknownSigningKey indicates an input's owning puzzle hash has no
	// derived key in the scanned index range. Fatal for the session.
	ErrUnknownSigningKey = errors.New("signer: no signing key for puzzle hash")

	// ErrConditionParse indicates puzzle execution did not yield exactly
	// one signable condition.
	ErrConditionParse = errors.New("signer: cannot extract signable condition")

	// ErrKeyMismatch indicates the condition's public key is not the
	// synthetic key derived for the input.
	ErrKeyMismatch = errors.New("signer: condition key does not match derived key")

	// ErrSigningFailed indicates a produced signature failed verification.
	ErrSigningFailed = errors.New("signer: signature verification failed")

	// ErrNilParam indicates a required parameter is nil or empty.
	ErrNilParam = errors.New("signer: required parameter is nil")
)
