// Package keyexpr provides a small expression algebra that describes how a
// string key is derived from a cached value. The same description is used
// two ways: the cache evaluates it against stored values to compute index
// keys, and the lookup path compares it structurally against a caller's
// equality condition to decide which index the condition targets.
//
// Basic Usage:
//
//	type Employer struct {
//	    ID     string
//	    FedEIN string
//	    SFID   string
//	}
//
//	// Key descriptions for registration.
//	byID  := keyexpr.Field[*Employer]("ID")
//	byEIN := keyexpr.Field[*Employer]("FedEIN")
//	byBoth := keyexpr.Concat(
//	    keyexpr.Field[*Employer]("FedEIN"),
//	    keyexpr.Literal[*Employer]("_"),
//	    keyexpr.Field[*Employer]("SFID"),
//	)
//
//	// A lookup condition. Both orientations resolve identically.
//	cond := keyexpr.Eq(byEIN, keyexpr.Literal[*Employer]("20"))
//
// Value sides of a condition may capture state instead of being literal:
//
//	ein := "20"
//	cond := keyexpr.Eq(byEIN, keyexpr.Capture[*Employer](func() string { return ein }))
//
// Field access chains are evaluated reflectively, so the expression doubles
// as the extractor function. Closure-based expressions (Capture, Apply) are
// opaque: they can be evaluated but never compare structurally equal, and
// therefore cannot be registered as index key descriptions.
package keyexpr
