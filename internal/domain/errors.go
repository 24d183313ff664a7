package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCheckoutInProgress is returned when a second checkout is submitted
	// while one is already in flight for the same cart.
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	// ErrEmptyCart rejects a checkout against a cart with no lines.
	ErrEmptyCart = errors.New("cannot checkout an empty cart")
)

// FieldErrors carries per-field validation messages. It is user-correctable:
// a checkout that fails with FieldErrors never reached the store.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err into FieldErrors if it carries one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
