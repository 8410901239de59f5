package store

import (
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// identityKey is the fixed BLAKE3 keying constant for workspace
// identifiers. It is a domain-separation tag, not a secret — it keeps
// targo's hashes disjoint from any other tool hashing paths with the
// same primitive. The bytes are the ASCII name zero-padded to 32, so
// the key stays inspectable in hex dumps. Changing it orphans every
// existing store entry.
var identityKey = [32]byte{'t', 'a', 'r', 'g', 'o'}

// Identifier derives the store entry identifier for a canonical
// absolute workspace path: keyed BLAKE3-256 over the path's UTF-8
// bytes, truncated to 20 bytes, base58 encoded. Deterministic across
// machines and runs; 160 bits keeps accidental collision between
// distinct real-world workspace paths negligible while directory names
// stay short.
func Identifier(workspace string) string {
	hasher, err := blake3.NewKeyed(identityKey[:])
	if err != nil {
		// NewKeyed only fails on a key that is not 32 bytes.
		panic(err)
	}
	hasher.Write([]byte(workspace))
	return base58.Encode(hasher.Sum(nil)[:20])
}
