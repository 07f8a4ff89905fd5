package signer

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/config"
	"github.com/chiavault/libchiavault-go/keys"
	"github.com/chiavault/libchiavault-go/puzzle"
	"github.com/chiavault/libchiavault-go/spend"
)

func testSeed() []byte {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return seed
}

// signerFixture builds an unsigned bundle spending coins owned by the
// first few unhardened wallet keys of the test seed.
type signerFixture struct {
	secret *keys.SecretHandle
	bundle *spend.SpendBundle
	coins  []coin.Coin
}

func newSignerFixture(t *testing.T, amounts []uint64) *signerFixture {
	t.Helper()

	secret, err := keys.NewSecretHandle(testSeed())
	require.NoError(t, err)

	master, err := secret.MasterKey()
	require.NoError(t, err)

	keyMap := map[coin.Bytes32]*bls.PublicKey{}
	var coins []coin.Coin
	var records []coin.CoinRecord
	for i, amount := range amounts {
		childPK, err := keys.WalletPK(master.PublicKey(), uint32(i))
		require.NoError(t, err)

		puz, err := puzzle.ForPublicKey(childPK, config.MainNet.HiddenPuzzleHash)
		require.NoError(t, err)

		c := coin.Coin{ParentCoinID: coin.Bytes32{byte(i + 1)}, PuzzleHash: puz.Hash(), Amount: amount}
		keyMap[puz.Hash()] = childPK
		coins = append(coins, c)
		records = append(records, coin.CoinRecord{Coin: c, Timestamp: uint64(100 + i)})
	}

	builder := spend.NewBuilder(config.MainNet)
	bundle, err := builder.Build(coins, keyMap,
		[]spend.Output{{PuzzleHash: coin.Bytes32{0x0d}, Amount: 300000}},
		10000, coins[0].PuzzleHash)
	require.NoError(t, err)

	return &signerFixture{secret: secret, bundle: bundle, coins: coins}
}

// verifyBundle recomputes every spend's signing message and checks each
// against the puzzle's synthetic key, then rebuilds the expected aggregate
// independently from the seed and compares it to the bundle's signature.
func verifyBundle(t *testing.T, bundle *spend.SpendBundle, params config.Params) bool {
	t.Helper()

	master, err := keys.MasterFromSeed(testSeed())
	require.NoError(t, err)

	expected := make([]bls.Sign, 0, len(bundle.CoinSpends))
	for _, cs := range bundle.CoinSpends {
		puz, err := puzzle.FromReveal(cs.PuzzleReveal)
		require.NoError(t, err)

		digest := sha256.Sum256(cs.Solution)
		coinID := cs.Coin.ID()
		msg := make([]byte, 0, 96)
		msg = append(msg, digest[:]...)
		msg = append(msg, coinID[:]...)
		msg = append(msg, params.GenesisChallenge[:]...)

		syntheticSK := findSyntheticKey(t, master, params, cs.Coin.PuzzleHash)
		if syntheticSK == nil {
			return false
		}
		sig := syntheticSK.SignByte(msg)
		if !sig.VerifyByte(puz.SyntheticKey(), msg) {
			return false
		}
		expected = append(expected, *sig)
	}

	var aggregate bls.Sign
	aggregate.Aggregate(expected)
	return bytes.Equal(aggregate.Serialize(), bundle.AggregatedSignature)
}

// findSyntheticKey scans the first wallet indices for the key owning a
// puzzle hash.
func findSyntheticKey(t *testing.T, master *keys.SecretKey, params config.Params, puzzleHash coin.Bytes32) *keys.SecretKey {
	t.Helper()

	for i := uint32(0); i < 50; i++ {
		childSK, err := keys.WalletSK(master, i, false)
		require.NoError(t, err)

		puz, err := puzzle.ForPublicKey(childSK.PublicKey(), params.HiddenPuzzleHash)
		require.NoError(t, err)
		if puz.Hash() != puzzleHash {
			continue
		}

		syntheticSK, err := keys.SyntheticSecretKey(childSK, params.HiddenPuzzleHash)
		require.NoError(t, err)
		return syntheticSK
	}
	return nil
}

func TestSign_ProducesValidAggregate(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000, 5000000, 1000000})
	signer := NewSigner(config.MainNet)

	signed, err := signer.Sign(f.bundle, f.secret, 100, false)
	require.NoError(t, err)

	assert.True(t, signed.Signed())
	assert.False(t, f.bundle.Signed(), "the input bundle must not be mutated")
	assert.Equal(t, f.bundle.CoinSpends, signed.CoinSpends)
	require.Len(t, []byte(signed.AggregatedSignature), 96)

	assert.True(t, verifyBundle(t, signed, config.MainNet),
		"the aggregate must verify over every recomputed signing message")
}

func TestSign_SingleInput(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})
	signer := NewSigner(config.MainNet)

	signed, err := signer.Sign(f.bundle, f.secret, 10, false)
	require.NoError(t, err)
	assert.True(t, verifyBundle(t, signed, config.MainNet))
}

func TestSign_DifferentNetworkDiffers(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})

	mainnetSigned, err := NewSigner(config.MainNet).Sign(f.bundle, f.secret, 10, false)
	require.NoError(t, err)

	other := config.MainNet
	other.GenesisChallenge = coin.Bytes32{0x42}
	otherSigned, err := NewSigner(other).Sign(f.bundle, f.secret, 10, false)
	require.NoError(t, err)

	assert.NotEqual(t, mainnetSigned.AggregatedSignature, otherSigned.AggregatedSignature,
		"the genesis challenge domain-separates signatures between networks")
	assert.False(t, verifyBundle(t, otherSigned, config.MainNet))
}

func TestSign_UnknownSigningKey(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000, 5000000})
	signer := NewSigner(config.MainNet)

	// The second input's key sits at index 1, outside a range of 1.
	_, err := signer.Sign(f.bundle, f.secret, 1, false)
	assert.ErrorIs(t, err, ErrUnknownSigningKey)
}

func TestSign_WrongSeed(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})

	otherSeed := testSeed()
	otherSeed[0] ^= 0xff
	wrongSecret, err := keys.NewSecretHandle(otherSeed)
	require.NoError(t, err)

	// A different seed derives different puzzle hashes, so no key matches.
	_, err = NewSigner(config.MainNet).Sign(f.bundle, wrongSecret, 100, false)
	assert.ErrorIs(t, err, ErrUnknownSigningKey)
}

func TestSign_HardenedModeMismatch(t *testing.T) {
	// The fixture's addresses are unhardened; hardened derivation at the
	// same indices yields different puzzle hashes.
	f := newSignerFixture(t, []uint64{5000000})
	_, err := NewSigner(config.MainNet).Sign(f.bundle, f.secret, 10, true)
	assert.ErrorIs(t, err, ErrUnknownSigningKey)
}

func TestSign_TamperedSolution(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})
	signer := NewSigner(config.MainNet)

	tampered := &spend.SpendBundle{
		CoinSpends:          append([]spend.CoinSpend{}, f.bundle.CoinSpends...),
		AggregatedSignature: f.bundle.AggregatedSignature,
	}
	tampered.CoinSpends[0].Solution = []byte{0xff, 0xff}

	_, err := signer.Sign(tampered, f.secret, 10, false)
	assert.ErrorIs(t, err, ErrConditionParse)
}

func TestSign_InvalidatedSecret(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})
	f.secret.Zero()

	_, err := NewSigner(config.MainNet).Sign(f.bundle, f.secret, 10, false)
	assert.ErrorIs(t, err, keys.ErrSecretInvalidated)
}

func TestSign_NilParams(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000})
	signer := NewSigner(config.MainNet)

	_, err := signer.Sign(nil, f.secret, 10, false)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = signer.Sign(f.bundle, nil, 10, false)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = signer.Sign(&spend.SpendBundle{}, f.secret, 10, false)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestSign_AggregationOrderInvariant(t *testing.T) {
	f := newSignerFixture(t, []uint64{5000000, 5000000, 1000000})
	signer := NewSigner(config.MainNet)

	forward, err := signer.Sign(f.bundle, f.secret, 100, false)
	require.NoError(t, err)

	// Reversing the spends reverses signing order; the aggregate is a sum
	// in G2 and must not care.
	reversed := &spend.SpendBundle{
		CoinSpends:          make([]spend.CoinSpend, len(f.bundle.CoinSpends)),
		AggregatedSignature: spend.IdentitySignature(),
	}
	for i, cs := range f.bundle.CoinSpends {
		reversed.CoinSpends[len(f.bundle.CoinSpends)-1-i] = cs
	}

	backward, err := signer.Sign(reversed, f.secret, 100, false)
	require.NoError(t, err)

	assert.Equal(t, forward.AggregatedSignature, backward.AggregatedSignature)
}
