package search

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/jonwraymond/codesearch/index"
)

// computeFingerprint generates a stable hash of the unit slice.
// The fingerprint changes when unit content changes, enabling
// efficient cache invalidation for the BM25 index.
func computeFingerprint(units []index.Unit) string {
	h := sha256.New()

	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(len(units)))
	h.Write(count[:])

	for _, unit := range units {
		// Write ID
		h.Write([]byte(unit.ID))
		h.Write([]byte{0}) // separator

		// Write Content
		h.Write([]byte(unit.Content))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
