package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	bip39 "github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/argon2"
)

const (
	// Mnemonic entropy sizes.
	Mnemonic12Words = 128
	Mnemonic24Words = 256

	// Argon2id parameters for seed-at-rest encryption.
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // 64 MB
	argon2Parallelism = 4
	argon2KeyLen      = 32

	// Encrypted seed format sizes.
	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// GenerateMnemonic creates a new BIP39 mnemonic with the specified entropy
// bits: Mnemonic12Words (128) or Mnemonic24Words (256).
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("keys: generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("keys: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks whether a mnemonic is valid BIP39 (word count,
// word list, checksum).
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte BIP39 seed from mnemonic plus an
// optional passphrase. An empty passphrase still participates in the
// derivation.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("keys: derive seed: %w", err)
	}
	return seed, nil
}

// EncryptSeed encrypts seed material with Argon2id + AES-256-GCM for
// storage at rest on the offline device.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(key, nonce, seed||checksum)
// where key = argon2id(password, salt) and checksum = SHA256(seed)[:4].
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keys: generate salt: %w", err)
	}

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("keys: generate nonce: %w", err)
	}

	checksum := sha256.Sum256(seed)
	plaintext := append(append([]byte{}, seed...), checksum[:checksumLen]...)
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptSeed reverses EncryptSeed and verifies the embedded checksum,
// distinguishing a wrong password from corrupted data only as far as
// AES-GCM authentication allows.
func DecryptSeed(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < saltLen+nonceLen+checksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:saltLen]
	nonce := encrypted[saltLen : saltLen+nonceLen]
	ciphertext := encrypted[saltLen+nonceLen:]

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < checksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-checksumLen]
	stored := plaintext[len(plaintext)-checksumLen:]
	checksum := sha256.Sum256(seed)
	if subtle.ConstantTimeCompare(stored, checksum[:checksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return seed, nil
}

// seedCipher derives the AES-256-GCM AEAD for a password and salt.
func seedCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt,
		argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keys: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keys: gcm: %w", err)
	}
	return gcm, nil
}
