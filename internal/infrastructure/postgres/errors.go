package postgres

import "errors"

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is the repository not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
