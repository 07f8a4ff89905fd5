package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiavault/libchiavault-go/coin"
)

func testHash(fill byte) coin.Bytes32 {
	var h coin.Bytes32
	for i := range h {
		h[i] = fill
	}
	return h
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, prefix := range []string{"xch", "txch", "sim"} {
		for _, fill := range []byte{0x00, 0x01, 0x7f, 0xff} {
			hash := testHash(fill)

			addr, err := Encode(prefix, hash)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(addr, prefix+"1"))

			gotPrefix, gotHash, err := Decode(addr)
			require.NoError(t, err)
			assert.Equal(t, prefix, gotPrefix)
			assert.Equal(t, hash, gotHash)
		}
	}
}

func TestEncode_RejectsBadPrefix(t *testing.T) {
	_, err := Encode("", testHash(0x01))
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	_, err = Encode("XCH", testHash(0x01))
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestDecode_RejectsCorruption(t *testing.T) {
	addr, err := Encode("xch", testHash(0xab))
	require.NoError(t, err)

	// Flip one data character, avoiding the prefix and separator.
	corrupted := []byte(addr)
	pos := len(corrupted) - 3
	if corrupted[pos] == 'q' {
		corrupted[pos] = 'p'
	} else {
		corrupted[pos] = 'q'
	}

	_, _, err = Decode(string(corrupted))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecode_RejectsBech32Variant(t *testing.T) {
	// Classic bech32 (BIP-173) carries a different checksum constant.
	segwit := "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	_, _, err := Decode(segwit)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	for _, addr := range []string{"", "xch1", "notanaddress", "xch1qqqq"} {
		_, _, err := Decode(addr)
		assert.ErrorIs(t, err, ErrInvalidAddress, "input %q", addr)
	}
}
