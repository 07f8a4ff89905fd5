package keys

import "errors"

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("keys: invalid BIP39 mnemonic")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = errors.New("keys: entropy bits must be 128 or 256")

	// ErrInvalidSeed indicates the seed is empty or invalid.
	ErrInvalidSeed = errors.New("keys: invalid seed")

	// ErrSeedTooShort indicates the seed is below the EIP-2333 minimum.
	ErrSeedTooShort = errors.New("keys: seed must be at least 32 bytes")

	// ErrDerivationFailed indicates key derivation failed.
	ErrDerivationFailed = errors.New("keys: key derivation failed")

	// ErrNilKey indicates a required key parameter is nil.
	ErrNilKey = errors.New("keys: key must not be nil")

	// ErrZeroKey indicates derivation produced the zero scalar.
	ErrZeroKey = errors.New("keys: derived key is zero")

	// ErrInvalidKeyBytes indicates serialized key bytes are malformed.
	ErrInvalidKeyBytes = errors.New("keys: invalid key bytes")

	// ErrDecryptionFailed indicates wrong password or corrupted seed data.
	ErrDecryptionFailed = errors.New("keys: seed decryption failed")

	// ErrChecksumMismatch indicates the decrypted seed failed its checksum.
	ErrChecksumMismatch = errors.New("keys: seed checksum mismatch")

	// ErrSecretInvalidated indicates the secret handle was already wiped.
	ErrSecretInvalidated = errors.New("keys: secret handle invalidated")
)
