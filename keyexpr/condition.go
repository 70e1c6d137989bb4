package keyexpr

// Condition is a single equality between two expressions over values of
// type V. Exactly one side is expected to describe a registered index key;
// the other side must evaluate to a concrete string independently of any
// stored value.
type Condition[V any] struct {
	Left  Expr[V]
	Right Expr[V]
}

// Eq builds an equality condition. Eq(a, b) and Eq(b, a) resolve
// identically.
func Eq[V any](left, right Expr[V]) Condition[V] {
	return Condition[V]{Left: left, Right: right}
}

// String renders the condition for diagnostics.
func (c Condition[V]) String() string {
	return c.Left.String() + " == " + c.Right.String()
}
