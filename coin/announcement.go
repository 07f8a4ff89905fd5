package coin

import "crypto/sha256"

// Announcement is an in-transaction commitment created by one coin spend
// and asserted by others, binding them into a single atomic bundle.
type Announcement struct {
	OriginCoinID Bytes32
	Message      []byte
}

// ID returns SHA256(origin_coin_id || message). An assertion condition
// carries this id; it only holds if the originating spend is present in
// the same bundle with the same message.
func (a Announcement) ID() Bytes32 {
	h := sha256.New()
	h.Write(a.OriginCoinID[:])
	h.Write(a.Message)
	var id Bytes32
	copy(id[:], h.Sum(nil))
	return id
}
