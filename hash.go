package jsondiff

import (
	"encoding/hex"
	"hash"
	"hash/fnv"
	"strconv"
)

// NewHash returns a new hash interface, wrapped in a function for easy
// hash algorithm switching, package consumers can override NewHash
// with their own desired hash.Hash implementation if the value space is
// particularly large. default is 64-bit FNV 1 for fast, cheap,
// (non-cryptographic) hashing
var NewHash = func() hash.Hash {
	return fnv.New64()
}

// hashStr converts a hash sum to a string using hex encoding
func hashStr(sum []byte) string {
	return hex.EncodeToString(sum)
}

// value tags keep containers & scalars of different kinds apart even when
// their text would collide, eg: "1" and 1
var kindTags = [...]byte{
	KindNull:   'n',
	KindBool:   'b',
	KindNumber: 'd',
	KindString: 's',
	KindArray:  'a',
	KindObject: 'o',
}

// stepHash folds one path step into a parent hash. parent sums have a fixed
// width, which keeps the concatenation unambiguous
func stepHash(parent []byte, step stepKind, label string) []byte {
	h := NewHash()
	h.Write(parent)
	h.Write([]byte{byte(step)})
	h.Write([]byte(label))
	return h.Sum(nil)
}

// unindexedHash identifies the structural position of a node with array
// indices left out, so an element that moved inside its array keeps its hash
func unindexedHash(parent []byte, step stepKind, key string) []byte {
	if step != stepKey {
		key = ""
	}
	return stepHash(parent, step, key)
}

// indexedHash identifies the exact position of a node
func indexedHash(parent []byte, step stepKind, key string, index int) []byte {
	switch step {
	case stepIndex:
		return stepHash(parent, step, strconv.Itoa(index))
	case stepKey:
		return stepHash(parent, step, key)
	}
	return stepHash(parent, step, "")
}

// compareKey is the token a node contributes to the edit script. two nodes
// compare equal when they sit at the same unindexed position and, for
// scalars, carry the same value
func compareKey(unindexed []byte, v Value) string {
	h := NewHash()
	h.Write(unindexed)
	h.Write([]byte{kindTags[v.Kind()]})
	switch x := v.(type) {
	case Bool:
		h.Write([]byte(strconv.FormatBool(bool(x))))
	case Number:
		h.Write([]byte(x.canonical()))
	case String:
		h.Write([]byte(x))
	}
	return hashStr(h.Sum(nil))
}
