package store

import "sync"

// Key layout:
//
//	book:<id>      book document (JSON)
//	mag:<id>       magazine document (JSON)
//	seq:<prefix>   badger sequence lease for the collection
const (
	bookPrefix     = "book:"
	magazinePrefix = "mag:"
	seqPrefix      = "seq:"
)

// keyPool provides reusable byte slices for building database keys.
var keyPool = sync.Pool{
	New: func() any {
		// prefix plus a 21 character nanoid with room to spare
		return make([]byte, 0, 64)
	},
}

// buildKey constructs prefix+suffix in a pooled buffer.
// Callers MUST call releaseKey when done with the key.
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// releaseKey returns a key buffer to the pool for reuse.
// After calling this, the key slice must not be used.
func releaseKey(key []byte) {
	if cap(key) <= 256 {
		keyPool.Put(key[:0]) //nolint:staticcheck // slice header allocation is fine here
	}
}

// sequenceKey names the badger sequence for a collection prefix.
func sequenceKey(prefix string) []byte {
	return []byte(seqPrefix + prefix)
}
