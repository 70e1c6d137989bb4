package indexedcache

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is matched by *DuplicateKeyError via errors.Is.
	ErrDuplicateKey = errors.New("duplicate index keys")

	// ErrIndexNotFound is matched by *IndexNotFoundError via errors.Is.
	ErrIndexNotFound = errors.New("no index matches the condition")

	// ErrInvalidOrdinal is matched by *InvalidOrdinalError via errors.Is.
	ErrInvalidOrdinal = errors.New("index ordinal out of range")

	// ErrNoExtractors is returned by New when no key extractor is supplied.
	ErrNoExtractors = errors.New("at least one key extractor is required")

	// ErrNotIndexable is returned by New when a key extractor contains a
	// closure-based expression, which cannot be matched structurally.
	ErrNotIndexable = errors.New("key extractor must be built from Field, Concat and Literal")
)

// DuplicateKeyError is returned by Set when the value's keys collide with
// existing entries on some indexes but not all of them. The cache is left
// unchanged.
type DuplicateKeyError struct {
	// Indexes is the number of registered indexes.
	Indexes int

	// Collisions is the number of keys that already resolved to an entry.
	Collisions int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%d indexes are defined however only %d keys were created", e.Indexes, e.Collisions)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// IndexNotFoundError is returned by Find when neither side of the condition
// structurally matches a registered key description.
type IndexNotFoundError struct {
	// Condition is the rendered condition that failed to resolve.
	Condition string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("no index matches condition %q", e.Condition)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// InvalidOrdinalError is returned by Get when the ordinal is outside the
// range of registered indexes.
type InvalidOrdinalError struct {
	Ordinal int
	Indexes int
}

func (e *InvalidOrdinalError) Error() string {
	return fmt.Sprintf("index ordinal %d out of range [0, %d)", e.Ordinal, e.Indexes)
}

func (e *InvalidOrdinalError) Is(target error) bool {
	return target == ErrInvalidOrdinal
}
