package keys

// SecretHandle scopes root key material to one signing session. The seed
// bytes are copied in at construction and wiped by Zero; a handle is never
// logged and never serialized.
type SecretHandle struct {
	seed []byte
}

// NewSecretHandle copies the seed into a fresh handle. The caller remains
// responsible for wiping its own copy.
func NewSecretHandle(seed []byte) (*SecretHandle, error) {
	if len(seed) < MinSeedSize {
		return nil, ErrSeedTooShort
	}
	h := &SecretHandle{seed: make([]byte, len(seed))}
	copy(h.seed, seed)
	return h, nil
}

// SecretHandleFromMnemonic derives the seed from a mnemonic and wraps it.
func SecretHandleFromMnemonic(mnemonic, passphrase string) (*SecretHandle, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return NewSecretHandle(seed)
}

// MasterKey derives the master secret key from the held seed. Fails with
// ErrSecretInvalidated after Zero has been called.
func (h *SecretHandle) MasterKey() (*SecretKey, error) {
	if h.seed == nil {
		return nil, ErrSecretInvalidated
	}
	return MasterFromSeed(h.seed)
}

// Valid reports whether the handle still holds seed material.
func (h *SecretHandle) Valid() bool {
	return h.seed != nil
}

// Zero wipes the seed bytes and invalidates the handle. Safe to call more
// than once.
func (h *SecretHandle) Zero() {
	for i := range h.seed {
		h.seed[i] = 0
	}
	h.seed = nil
}
