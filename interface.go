package indexedcache

import (
	"github.com/karupanerura/indexed-cache/keyexpr"
)

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// MultiIndex is the call surface of a cache that stores each value under
// several independently derived string keys.
// Implementations must be thread-safe.
type MultiIndex[V ValueConstraint] interface {
	// Set stores the value under every registered index key.
	// If every key resolves to the same existing entry, the entry is
	// replaced in place. If only some keys collide, Set fails with a
	// *DuplicateKeyError and stores nothing.
	Set(v V) error

	// Get retrieves a value by index ordinal and key.
	// A missing key is not an error: it returns the zero value and false.
	Get(ordinal int, key string) (V, bool, error)

	// Find retrieves a value by an equality condition over the stored type.
	// The side of the condition that structurally matches a registered key
	// description selects the index; the other side is evaluated to the key.
	Find(cond keyexpr.Condition[V]) (V, bool, error)

	// Remove deletes the entry stored under the given primary key from
	// every index. It is a no-op if the key is absent.
	Remove(primaryKey string) error

	// Purge removes all entries from all indexes.
	Purge()

	// KeyCount returns the total number of keys across all indexes.
	KeyCount() int

	// ObjectCount returns the number of distinct stored values.
	ObjectCount() int

	// IndexCount returns the number of registered indexes.
	IndexCount() int
}
