package indexedcache_test

import (
	"fmt"

	indexedcache "github.com/karupanerura/indexed-cache"
	"github.com/karupanerura/indexed-cache/keyexpr"
)

// Account represents an account entity
type Account struct {
	ID    string
	Email string
	Team  string
}

func ExampleCache_Set() {
	// Index accounts by id (primary), email, and team-qualified email.
	cache, err := indexedcache.New([]keyexpr.Expr[*Account]{
		keyexpr.Field[*Account]("ID"),
		keyexpr.Field[*Account]("Email"),
		keyexpr.Concat(
			keyexpr.Field[*Account]("Team"),
			keyexpr.Literal[*Account]("/"),
			keyexpr.Field[*Account]("Email"),
		),
	})
	if err != nil {
		panic(err)
	}

	if err := cache.Set(&Account{ID: "1", Email: "alice@example.com", Team: "core"}); err != nil {
		panic(err)
	}

	// Look up by ordinal.
	account, ok, err := cache.Get(1, "alice@example.com")
	if err != nil {
		panic(err)
	}
	fmt.Println(ok, account.ID)

	// Look up by condition; the matching side picks the index.
	account, ok, err = cache.Find(keyexpr.Eq(
		keyexpr.Literal[*Account]("core/alice@example.com"),
		keyexpr.Concat(
			keyexpr.Field[*Account]("Team"),
			keyexpr.Literal[*Account]("/"),
			keyexpr.Field[*Account]("Email"),
		),
	))
	if err != nil {
		panic(err)
	}
	fmt.Println(ok, account.ID)

	// Output:
	// true 1
	// true 1
}

func ExampleCache_Find() {
	cache, err := indexedcache.New([]keyexpr.Expr[*Account]{
		keyexpr.Field[*Account]("ID"),
		keyexpr.Field[*Account]("Email"),
	})
	if err != nil {
		panic(err)
	}

	if err := cache.Set(&Account{ID: "1", Email: "alice@example.com"}); err != nil {
		panic(err)
	}

	// The value side may capture surrounding state; it is evaluated once
	// at resolution time.
	email := "alice@example.com"
	account, ok, err := cache.Find(keyexpr.Eq(
		keyexpr.Field[*Account]("Email"),
		keyexpr.Capture[*Account](func() string { return email }),
	))
	if err != nil {
		panic(err)
	}
	fmt.Println(ok, account.ID)

	// Output:
	// true 1
}
