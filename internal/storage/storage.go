package storage

import (
	"address-book/internal/model"
	"errors"
)

// Load failures. Every error returned by SnapshotStore.Read wraps exactly
// one of these.
var (
	// ErrFileAbsent means the snapshot file does not exist.
	ErrFileAbsent = errors.New("snapshot file absent")
	// ErrFileEmpty means the file holds no decodable content (zero bytes,
	// whitespace only, or truncated mid-record).
	ErrFileEmpty = errors.New("snapshot file empty")
	// ErrMalformedData means the file could not be read or did not decode to
	// a mapping of email to contact record.
	ErrMalformedData = errors.New("snapshot data malformed")
)

// SnapshotStore defines the operations needed for persisting the contact map.
// This allows swapping implementations (e.g., JSON file vs. database) later.
type SnapshotStore interface {
	// Read loads the full contact map keyed by email. A nil map with a nil
	// error is read as an empty book.
	Read() (map[string]model.Contact, error)

	// Write replaces the stored snapshot with contacts.
	Write(contacts map[string]model.Contact) error

	// Location describes where the snapshot lives, for logging.
	Location() string
}
