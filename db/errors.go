package db

import (
	"strings"

	"github.com/teranos/swiftkotlin/errors"
)

// ErrDatabaseClosed is returned when the cache is used after Close, which
// happens when a watch session shuts down with translations in flight.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is
// closed, either as ErrDatabaseClosed or as the raw driver message.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
