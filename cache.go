package indexedcache

import (
	"fmt"
	"iter"
	"sync"

	"github.com/karupanerura/indexed-cache/keyexpr"
)

// entry is the single shared record for one stored value. Every index map
// holding the value points at the same entry, so replacing the value in
// place is visible through all indexes at once and entry pointer identity
// decides whether colliding keys belong to the same logical entry.
type entry[V ValueConstraint] struct {
	value V
}

// Cache is an in-memory cache that stores each value under several
// independently derived string keys, one thread-safe map per registered key
// description. All maps are kept mutually consistent: a value is present in
// every index or in none.
type Cache[V ValueConstraint] struct {
	extractors []keyexpr.Expr[V]
	cloner     ValueCloner[V]

	mu      sync.RWMutex
	indexes []map[string]*entry[V]
}

var _ MultiIndex[struct{}] = (*Cache[struct{}])(nil)

// New creates a new Cache with the given key descriptions. At least one is
// required; the first is the primary index used by Remove. The registry is
// fixed for the lifetime of the cache.
//
// Each description must be built solely from keyexpr.Field, keyexpr.Concat
// and keyexpr.Literal, since closure-based expressions cannot be compared
// structurally against lookup conditions. Field access chains are validated
// against the static type of V where possible.
func New[V ValueConstraint](extractors []keyexpr.Expr[V], opts ...Option[V]) (*Cache[V], error) {
	if len(extractors) == 0 {
		return nil, ErrNoExtractors
	}
	for _, ex := range extractors {
		if err := ex.Validate(); err != nil {
			return nil, err
		}
		if !ex.CanIndex() {
			return nil, fmt.Errorf("%w: %s", ErrNotIndexable, ex)
		}
	}

	c := &Cache[V]{
		extractors: extractors,
		indexes:    emptyIndexes[V](len(extractors)),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.cloner == nil {
		c.cloner = NopValueCloner[V]{}
	}
	return c, nil
}

func emptyIndexes[V ValueConstraint](n int) []map[string]*entry[V] {
	indexes := make([]map[string]*entry[V], n)
	for i := range indexes {
		indexes[i] = map[string]*entry[V]{}
	}
	return indexes
}

// Option is the interface for the options of the cache.
type Option[V ValueConstraint] interface {
	apply(*Cache[V])
}

type optionFunc[V ValueConstraint] func(*Cache[V])

func (f optionFunc[V]) apply(c *Cache[V]) {
	f(c)
}

// WithValueCloner sets the value cloner to the cache.
// Values are cloned as they are stored and as they are returned, so callers
// cannot mutate cached state. The default is NopValueCloner.
func WithValueCloner[V ValueConstraint](cloner ValueCloner[V]) Option[V] {
	return optionFunc[V](func(c *Cache[V]) {
		c.cloner = cloner
	})
}

// Set stores the value under every registered index key.
//
// If none of the keys resolve to an existing entry, the value is inserted
// into every index. If every key resolves to the same existing entry, that
// entry's value is replaced. Any other collision pattern fails with a
// *DuplicateKeyError and leaves the cache unchanged.
func (c *Cache[V]) Set(v V) error {
	keys, err := c.keysOf(v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Classification and mutation share the critical section so that two
	// concurrent Set calls with overlapping keys cannot both see "fresh".
	var found *entry[V]
	collisions, same := 0, true
	for i, key := range keys {
		if e, ok := c.indexes[i][key]; ok {
			collisions++
			if found == nil {
				found = e
			} else if found != e {
				same = false
			}
		}
	}

	switch {
	case collisions == 0:
		e := &entry[V]{value: c.cloner.CloneValue(v)}
		for i, key := range keys {
			c.indexes[i][key] = e
		}
	case collisions == len(keys) && same:
		found.value = c.cloner.CloneValue(v)
	default:
		return &DuplicateKeyError{Indexes: len(keys), Collisions: collisions}
	}
	return nil
}

// Get retrieves a value by index ordinal and key. A missing key is not an
// error: it returns the zero value of V and false.
func (c *Cache[V]) Get(ordinal int, key string) (V, bool, error) {
	var zero V
	if ordinal < 0 || ordinal >= len(c.extractors) {
		return zero, false, &InvalidOrdinalError{Ordinal: ordinal, Indexes: len(c.extractors)}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.indexes[ordinal][key]
	if !ok {
		return zero, false, nil
	}
	return c.cloner.CloneValue(e.value), true, nil
}

// Find retrieves a value by an equality condition over the stored type.
//
// Each registered key description is compared structurally against both
// sides of the condition in registration order; the first match selects the
// index and the opposite side is evaluated once to the lookup key. If
// neither side matches any description, Find fails with a
// *IndexNotFoundError carrying the rendered condition.
func (c *Cache[V]) Find(cond keyexpr.Condition[V]) (V, bool, error) {
	ordinal := -1
	var valueExpr keyexpr.Expr[V]
	for i, ex := range c.extractors {
		if cond.Left.Equal(ex) {
			ordinal, valueExpr = i, cond.Right
			break
		}
		if cond.Right.Equal(ex) {
			ordinal, valueExpr = i, cond.Left
			break
		}
	}
	if ordinal < 0 {
		var zero V
		return zero, false, &IndexNotFoundError{Condition: cond.String()}
	}

	key, err := valueExpr.Eval()
	if err != nil {
		var zero V
		return zero, false, err
	}
	return c.Get(ordinal, key)
}

// Remove deletes the entry stored under the given primary key from every
// index. It is a no-op if the key is absent, so calling it twice is safe.
func (c *Cache[V]) Remove(primaryKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.indexes[0][primaryKey]
	if !ok {
		return nil
	}

	keys, err := c.keysOf(e.value)
	if err != nil {
		return err
	}
	for i, key := range keys {
		delete(c.indexes[i], key)
	}
	return nil
}

// Purge removes all entries from all indexes.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.indexes = emptyIndexes[V](len(c.extractors))
}

// KeyCount returns the total number of keys across all indexes. While no
// mutation is in flight it equals IndexCount() * ObjectCount().
func (c *Cache[V]) KeyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, index := range c.indexes {
		n += len(index)
	}
	return n
}

// ObjectCount returns the number of distinct stored values.
func (c *Cache[V]) ObjectCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.indexes[0])
}

// IndexCount returns the number of registered indexes.
func (c *Cache[V]) IndexCount() int {
	return len(c.extractors)
}

// All returns an iterator over primary key and value pairs. The iterator
// yields from a snapshot taken when All is called, so it does not observe
// concurrent mutations.
func (c *Cache[V]) All() iter.Seq2[string, V] {
	c.mu.RLock()
	snapshot := make(map[string]V, len(c.indexes[0]))
	for key, e := range c.indexes[0] {
		snapshot[key] = c.cloner.CloneValue(e.value)
	}
	c.mu.RUnlock()

	return iter.Seq2[string, V](func(yield func(string, V) bool) {
		for key, v := range snapshot {
			if !yield(key, v) {
				return
			}
		}
	})
}

// keysOf evaluates every registered key description against v.
func (c *Cache[V]) keysOf(v V) ([]string, error) {
	keys := make([]string, len(c.extractors))
	for i, ex := range c.extractors {
		key, err := ex.Key(v)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}
