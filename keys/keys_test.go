package keys

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiavault/libchiavault-go/coin"
)

// testSeed returns fixed 64-byte seed material.
func testSeed() []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return seed
}

func testHiddenHash() coin.Bytes32 {
	var h coin.Bytes32
	for i := range h {
		h[i] = 0x71
	}
	return h
}

// --- Derivation tests ---

func TestMasterFromSeed_Deterministic(t *testing.T) {
	k1, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	k2, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	assert.Equal(t, k1.Bytes(), k2.Bytes(), "same seed must yield same master key")
	assert.Equal(t, k1.PublicKey().Serialize(), k2.PublicKey().Serialize())
}

func TestMasterFromSeed_TooShort(t *testing.T) {
	_, err := MasterFromSeed(make([]byte, 16))
	assert.ErrorIs(t, err, ErrSeedTooShort)
}

func TestMasterFromSeed_DifferentSeeds(t *testing.T) {
	k1, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	other := testSeed()
	other[0] ^= 0xff
	k2, err := MasterFromSeed(other)
	require.NoError(t, err)

	assert.NotEqual(t, k1.Bytes(), k2.Bytes())
}

func TestDerivation_HardenedAndUnhardenedDiffer(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	hardened, err := DeriveChildHardened(master, 7)
	require.NoError(t, err)

	unhardened, err := DeriveChildUnhardened(master, 7)
	require.NoError(t, err)

	assert.NotEqual(t, hardened.Bytes(), unhardened.Bytes(),
		"the two modes at the same index must yield different keys")
}

func TestDerivation_PublicOnlyMatchesSecret(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	for _, index := range []uint32{0, 1, 999, 4999} {
		childSK, err := DeriveChildUnhardened(master, index)
		require.NoError(t, err)

		childPK, err := DeriveChildPKUnhardened(master.PublicKey(), index)
		require.NoError(t, err)

		assert.Equal(t, childSK.PublicKey().Serialize(), childPK.Serialize(),
			"public-key-only derivation must match at index %d", index)
	}
}

func TestWalletPath_MatchesStepwise(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	viaHelper, err := WalletSK(master, 42, false)
	require.NoError(t, err)

	current := master
	for _, index := range []uint32{12381, 8444, 2, 42} {
		current, err = DeriveChildUnhardened(current, index)
		require.NoError(t, err)
	}

	assert.Equal(t, current.Bytes(), viaHelper.Bytes())
}

func TestWalletPK_MatchesWalletSK(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	sk, err := WalletSK(master, 3, false)
	require.NoError(t, err)

	pk, err := WalletPK(master.PublicKey(), 3)
	require.NoError(t, err)

	assert.Equal(t, sk.PublicKey().Serialize(), pk.Serialize())
}

func TestSecretKey_BytesRoundTrip(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	restored, err := SecretKeyFromBytes(master.Bytes())
	require.NoError(t, err)
	assert.Equal(t, master.PublicKey().Serialize(), restored.PublicKey().Serialize())
}

// --- Synthetic key tests ---

func TestSynthetic_PublicMatchesSecret(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	base, err := WalletSK(master, 0, false)
	require.NoError(t, err)

	syntheticSK, err := SyntheticSecretKey(base, testHiddenHash())
	require.NoError(t, err)

	syntheticPK, err := SyntheticPublicKey(base.PublicKey(), testHiddenHash())
	require.NoError(t, err)

	assert.Equal(t, syntheticSK.PublicKey().Serialize(), syntheticPK.Serialize(),
		"both sides of the air gap must reproduce the same synthetic key")
}

func TestSynthetic_ChangesKey(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	synthetic, err := SyntheticSecretKey(master, testHiddenHash())
	require.NoError(t, err)
	assert.NotEqual(t, master.Bytes(), synthetic.Bytes())

	var otherCommitment coin.Bytes32
	otherCommitment[0] = 0x01
	other, err := SyntheticSecretKey(master, otherCommitment)
	require.NoError(t, err)
	assert.NotEqual(t, synthetic.Bytes(), other.Bytes(),
		"a different hidden commitment must yield a different synthetic key")
}

func TestSynthetic_SignatureVerifiesUnderSyntheticKey(t *testing.T) {
	master, err := MasterFromSeed(testSeed())
	require.NoError(t, err)

	syntheticSK, err := SyntheticSecretKey(master, testHiddenHash())
	require.NoError(t, err)

	msg := []byte("offset key must sign for offset point")
	sig := syntheticSK.SignByte(msg)

	syntheticPK, err := SyntheticPublicKey(master.PublicKey(), testHiddenHash())
	require.NoError(t, err)

	assert.True(t, sig.VerifyByte(syntheticPK, msg))
	assert.False(t, sig.VerifyByte(master.PublicKey(), msg),
		"the base key must not verify a synthetic signature")
}

// --- Mnemonic and seed tests ---

func TestGenerateMnemonic(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic24Words)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)
	assert.True(t, ValidateMnemonic(mnemonic))

	_, err = GenerateMnemonic(192)
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestSeedFromMnemonic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed1, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Len(t, seed1, 64)

	seed2, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, seed1, seed2)

	withPassphrase, err := SeedFromMnemonic(mnemonic, "extra")
	require.NoError(t, err)
	assert.NotEqual(t, seed1, withPassphrase)

	_, err = SeedFromMnemonic("not a real mnemonic", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestEncryptDecryptSeed_RoundTrip(t *testing.T) {
	seed := testSeed()

	encrypted, err := EncryptSeed(seed, "hunter2")
	require.NoError(t, err)
	assert.Greater(t, len(encrypted), len(seed))

	decrypted, err := DecryptSeed(encrypted, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, seed, decrypted)

	_, err = DecryptSeed(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = DecryptSeed(encrypted[:10], "hunter2")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = EncryptSeed(nil, "hunter2")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

// --- Secret handle tests ---

func TestSecretHandle_Lifecycle(t *testing.T) {
	handle, err := NewSecretHandle(testSeed())
	require.NoError(t, err)
	assert.True(t, handle.Valid())

	k1, err := handle.MasterKey()
	require.NoError(t, err)

	direct, err := MasterFromSeed(testSeed())
	require.NoError(t, err)
	assert.Equal(t, direct.Bytes(), k1.Bytes())

	handle.Zero()
	assert.False(t, handle.Valid())

	_, err = handle.MasterKey()
	assert.ErrorIs(t, err, ErrSecretInvalidated)

	// Zero again is harmless.
	handle.Zero()
}

func TestSecretHandle_CopiesSeed(t *testing.T) {
	seed := testSeed()
	handle, err := NewSecretHandle(seed)
	require.NoError(t, err)

	// Wiping the caller's copy must not affect the handle.
	for i := range seed {
		seed[i] = 0
	}
	assert.False(t, bytes.Equal(seed, testSeed()))

	k, err := handle.MasterKey()
	require.NoError(t, err)

	direct, err := MasterFromSeed(testSeed())
	require.NoError(t, err)
	assert.Equal(t, direct.Bytes(), k.Bytes())
}

func TestSecretHandle_FromMnemonic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	handle, err := SecretHandleFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	k, err := handle.MasterKey()
	require.NoError(t, err)

	seed, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	direct, err := MasterFromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, direct.Bytes(), k.Bytes())
}
