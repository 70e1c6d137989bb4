package keyexpr_test

import (
	"fmt"

	"github.com/karupanerura/indexed-cache/keyexpr"
)

type Order struct {
	ID     string
	Vendor string
}

func ExampleConcat() {
	byVendorOrder := keyexpr.Concat(
		keyexpr.Field[*Order]("Vendor"),
		keyexpr.Literal[*Order](":"),
		keyexpr.Field[*Order]("ID"),
	)

	key, err := byVendorOrder.Key(&Order{ID: "42", Vendor: "acme"})
	if err != nil {
		panic(err)
	}
	fmt.Println(key)
	// Output:
	// acme:42
}

func ExampleEq() {
	byVendor := keyexpr.Field[*Order]("Vendor")

	cond := keyexpr.Eq(keyexpr.Literal[*Order]("acme"), byVendor)
	fmt.Println(cond)

	// Structural equality decides which side names the index.
	fmt.Println(cond.Right.Equal(keyexpr.Field[*Order]("Vendor")))
	// Output:
	// "acme" == Vendor
	// true
}
