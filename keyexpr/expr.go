package keyexpr

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-reflect"

	"github.com/karupanerura/indexed-cache/internal/panicsafe"
)

var (
	// ErrNotConstant is returned when an expression that accesses the stored
	// value is evaluated without one.
	ErrNotConstant = errors.New("expression depends on the stored value")

	// ErrInvalidExpr is returned when a zero or malformed expression is used.
	ErrInvalidExpr = errors.New("invalid key expression")
)

type exprKind uint8

const (
	kindField exprKind = iota + 1
	kindConcat
	kindLiteral
	kindCapture
	kindApply
)

// Expr describes how a string key is derived from a value of type V.
// The zero value is invalid; use the constructor functions.
type Expr[V any] struct {
	kind    exprKind
	path    []string
	parts   []Expr[V]
	literal string
	capture func() string
	apply   func(string) string
}

// Field returns an expression that reads the field access chain given by
// path from the stored value. Pointers and interfaces along the chain are
// dereferenced. Non-string leaf fields are formatted with fmt.Sprint.
func Field[V any](path ...string) Expr[V] {
	return Expr[V]{kind: kindField, path: path}
}

// Concat returns an expression that concatenates the results of all parts.
func Concat[V any](parts ...Expr[V]) Expr[V] {
	return Expr[V]{kind: kindConcat, parts: parts}
}

// Literal returns an expression that evaluates to the given constant string.
func Literal[V any](s string) Expr[V] {
	return Expr[V]{kind: kindLiteral, literal: s}
}

// Capture returns an expression that evaluates to the result of the given
// zero-argument function. The function is invoked once per resolution, never
// per stored value, so it may capture surrounding variables.
func Capture[V any](fn func() string) Expr[V] {
	return Expr[V]{kind: kindCapture, capture: fn}
}

// Apply returns an expression that evaluates arg and passes the result
// through the given one-argument function.
func Apply[V any](fn func(string) string, arg Expr[V]) Expr[V] {
	return Expr[V]{kind: kindApply, apply: fn, parts: []Expr[V]{arg}}
}

// Key evaluates the expression against the stored value v.
func (e Expr[V]) Key(v V) (string, error) {
	switch e.kind {
	case kindField:
		return e.fieldKey(v)
	case kindConcat:
		var sb strings.Builder
		for _, part := range e.parts {
			s, err := part.Key(v)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	default:
		return e.Eval()
	}
}

// Eval evaluates the expression independently of any stored value.
// It fails with ErrNotConstant if the expression contains a field access.
func (e Expr[V]) Eval() (string, error) {
	switch e.kind {
	case kindField:
		return "", fmt.Errorf("keyexpr: %s: %w", e, ErrNotConstant)
	case kindConcat:
		var sb strings.Builder
		for _, part := range e.parts {
			s, err := part.Eval()
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	case kindLiteral:
		return e.literal, nil
	case kindCapture:
		return panicsafe.String(e.capture)
	case kindApply:
		arg, err := e.parts[0].Eval()
		if err != nil {
			return "", err
		}
		return panicsafe.String(func() string { return e.apply(arg) })
	default:
		return "", fmt.Errorf("keyexpr: %w", ErrInvalidExpr)
	}
}

// Equal reports whether the two expressions are structurally equivalent:
// the same field access chains, concatenations, and literals, regardless of
// how either expression was constructed. Closure-based expressions
// (Capture, Apply) are opaque and never equal to anything.
func (e Expr[V]) Equal(o Expr[V]) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case kindField:
		return slices.Equal(e.path, o.path)
	case kindLiteral:
		return e.literal == o.literal
	case kindConcat:
		if len(e.parts) != len(o.parts) {
			return false
		}
		for i := range e.parts {
			if !e.parts[i].Equal(o.parts[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CanIndex reports whether the expression may serve as an index key
// description. Only expressions built solely from Field, Concat and Literal
// qualify: closures cannot be compared structurally, so an index registered
// with one could never be targeted by a lookup condition.
func (e Expr[V]) CanIndex() bool {
	switch e.kind {
	case kindField, kindLiteral:
		return true
	case kindConcat:
		for _, part := range e.parts {
			if !part.CanIndex() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Validate checks the expression against the static type of V. Field access
// chains into struct types are verified to name exported fields; dynamic
// types (interfaces, maps) are skipped since they cannot be checked until a
// value is seen. A zero expression is always invalid.
func (e Expr[V]) Validate() error {
	switch e.kind {
	case kindField:
		return validatePath(reflect.TypeOf((*V)(nil)).Elem(), e.path)
	case kindConcat:
		for _, part := range e.parts {
			if err := part.Validate(); err != nil {
				return err
			}
		}
		return nil
	case kindApply:
		return e.parts[0].Validate()
	case kindLiteral, kindCapture:
		return nil
	default:
		return fmt.Errorf("keyexpr: %w", ErrInvalidExpr)
	}
}

// String renders the expression for diagnostics.
func (e Expr[V]) String() string {
	switch e.kind {
	case kindField:
		return strings.Join(e.path, ".")
	case kindLiteral:
		return strconv.Quote(e.literal)
	case kindConcat:
		parts := make([]string, len(e.parts))
		for i, part := range e.parts {
			parts[i] = part.String()
		}
		return strings.Join(parts, " + ")
	case kindCapture:
		return "func()"
	case kindApply:
		return fmt.Sprintf("func(%s)", e.parts[0])
	default:
		return "<invalid>"
	}
}

func (e Expr[V]) fieldKey(v V) (string, error) {
	rv := reflect.ValueOf(v)
	for _, name := range e.path {
		for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return "", fmt.Errorf("keyexpr: nil value while accessing field %q in %s", name, e)
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return "", fmt.Errorf("keyexpr: cannot access field %q of %s value in %s", name, rv.Kind(), e)
		}
		rv = rv.FieldByName(name)
		if !rv.IsValid() {
			return "", fmt.Errorf("keyexpr: unknown field %q in %s", name, e)
		}
	}
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", fmt.Errorf("keyexpr: nil value at end of %s", e)
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	if !rv.CanInterface() {
		return "", fmt.Errorf("keyexpr: unexported field at end of %s", e)
	}
	return fmt.Sprint(rv.Interface()), nil
}

func validatePath(typ reflect.Type, path []string) error {
	for _, name := range path {
		for typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		if typ.Kind() == reflect.Interface {
			// The concrete type is unknown until a value is stored.
			return nil
		}
		if typ.Kind() != reflect.Struct {
			return fmt.Errorf("keyexpr: cannot access field %q of %s type %s", name, typ.Kind(), typ)
		}
		field, ok := typ.FieldByName(name)
		if !ok {
			return fmt.Errorf("keyexpr: type %s has no field %q", typ, name)
		}
		if field.PkgPath != "" {
			return fmt.Errorf("keyexpr: field %q of type %s is unexported", name, typ)
		}
		typ = field.Type
	}
	return nil
}
