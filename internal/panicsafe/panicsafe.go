// Package panicsafe invokes caller-supplied functions and converts
// panics raised by them into errors.
package panicsafe

import (
	"github.com/sourcegraph/conc/panics"
)

// Call runs the function and recovers from panics, returning them as errors.
// If the function returns normally, it returns the error value returned from the given function.
// If the function panics, it returns the recovered panic value as a *panics.ErrRecovered.
func Call(f func() error) error {
	var ferr error
	if recovered := panics.Try(func() {
		ferr = f()
	}); recovered != nil {
		return recovered.AsError()
	}
	return ferr
}

// String runs the function and recovers from panics, returning them as errors.
// If the function returns normally, it returns the string value returned from the given function.
func String(f func() string) (s string, err error) {
	err = Call(func() error {
		s = f()
		return nil
	})
	return
}
