package indexedcache

// ValueCloner is an interface for cloning values.
// It is used to copy values as they enter and leave the cache.
// The CloneValue method should return a deep copy of the input value.
type ValueCloner[V ValueConstraint] interface {
	CloneValue(V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V ValueConstraint] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a value cloner that does not clone values.
// It is used when values do not need to be cloned. (e.g. when the values are primitive types or immutable usage)
type NopValueCloner[V ValueConstraint] struct{}

// CloneValue returns the input value.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// DefaultValueCloner returns a default cloner for the given value type.
// It uses the Clone or DeepCopy method when the value type implements one,
// and falls back to NopValueCloner otherwise: the cache stores values by
// reference unless told to copy.
func DefaultValueCloner[V ValueConstraint]() ValueCloner[V] {
	var zero V
	return defaultValueClonerAny[V](zero)
}

func defaultValueClonerAny[V ValueConstraint](v any) ValueCloner[V] {
	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	switch v.(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(cloner).Clone()
		})

	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(deepCopier).DeepCopy()
		})

	default:
		return NopValueCloner[V]{}
	}
}
