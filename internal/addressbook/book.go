// Package addressbook holds the in-memory contact map and keeps the on-disk
// snapshot in step with it.
package addressbook

import (
	"address-book/internal/model"
	"address-book/internal/storage"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
)

var (
	// ErrDuplicateContact is returned when the email or mobile number of a new
	// contact is already in the book.
	ErrDuplicateContact = errors.New("duplicate email or mobile detected")
	// ErrPersistence wraps a failed snapshot write. The in-memory change that
	// preceded it is kept.
	ErrPersistence = errors.New("failed to save contacts")
)

// Status is the outcome of AddContact.
type Status int

const (
	Rejected Status = iota
	Added
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Book is a single-user address book. It is not safe for concurrent use.
type Book struct {
	store    storage.SnapshotStore
	logger   *zap.Logger
	contacts map[string]model.Contact // email -> contact
	byMobile map[string]string        // mobile -> email

	// recovered is the load failure absorbed when the book started empty.
	recovered error
}

// Load opens the JSON snapshot at path. It never fails: a missing, empty or
// malformed file yields an empty book.
func Load(path string, logger *zap.Logger) *Book {
	return LoadFrom(storage.NewJSONStore(path), logger)
}

// LoadFrom reads the book from store, falling back to an empty book on any
// read failure. The store is left untouched until the next mutation.
func LoadFrom(store storage.SnapshotStore, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Book{store: store, logger: logger}

	logger.Info("loading contacts", zap.String("file", store.Location()))
	contacts, err := store.Read()
	if err != nil {
		b.absorbLoadError(err)
		contacts = nil
	}
	if contacts == nil {
		contacts = map[string]model.Contact{}
	}
	b.contacts = contacts
	b.reindex()
	return b
}

func (b *Book) absorbLoadError(err error) {
	b.recovered = err
	file := zap.String("file", b.store.Location())
	switch {
	case errors.Is(err, storage.ErrFileAbsent):
		b.logger.Warn("data file not found, starting with an empty address book", file)
	case errors.Is(err, storage.ErrFileEmpty):
		b.logger.Warn("data file is empty, starting with an empty address book", file)
	case errors.Is(err, storage.ErrMalformedData):
		b.logger.Error("data format is incorrect, starting with an empty address book", file, zap.Error(err))
	default:
		// SnapshotStore implementations outside this module may not classify.
		b.recovered = fmt.Errorf("%w: %w", storage.ErrMalformedData, err)
		b.logger.Error("error loading data, starting with an empty address book", file, zap.Error(err))
	}
}

// reindex rebuilds the mobile index. When the snapshot holds repeated
// mobiles the lowest email wins, which keeps the index deterministic.
func (b *Book) reindex() {
	b.byMobile = make(map[string]string, len(b.contacts))
	for _, email := range slices.Sorted(maps.Keys(b.contacts)) {
		mobile := b.contacts[email].Mobile
		if _, taken := b.byMobile[mobile]; !taken {
			b.byMobile[mobile] = email
		}
	}
}

// Recovered reports why the book started empty, or nil if the snapshot
// loaded cleanly. The error wraps one of storage.ErrFileAbsent,
// storage.ErrFileEmpty or storage.ErrMalformedData.
func (b *Book) Recovered() error {
	return b.recovered
}

// Save writes the whole book to its snapshot store.
func (b *Book) Save() error {
	if err := b.store.Write(b.contacts); err != nil {
		b.logger.Error("error saving data", zap.String("file", b.store.Location()), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	b.logger.Info("data saved", zap.String("file", b.store.Location()))
	return nil
}

// AddContact inserts c keyed by its email and persists the book.
//
// It returns (Rejected, ErrDuplicateContact) if the email or mobile is taken.
// A failed save still returns Added, together with an error wrapping
// ErrPersistence; memory and disk differ until the next successful save.
func (b *Book) AddContact(c model.Contact) (Status, error) {
	_, emailTaken := b.contacts[c.Email]
	_, mobileTaken := b.byMobile[c.Mobile]
	if emailTaken || mobileTaken {
		b.logger.Error("duplicate email or mobile detected",
			zap.String("email", c.Email), zap.String("mobile", c.Mobile))
		return Rejected, ErrDuplicateContact
	}

	b.contacts[c.Email] = c
	b.byMobile[c.Mobile] = c.Email
	err := b.Save()
	b.logger.Info("added contact", zap.String("first_name", c.FirstName), zap.String("last_name", c.LastName))
	return Added, err
}

// CountOccurrences returns how many contacts have field exactly equal to
// value. Fields outside model.SummaryFields never match.
func (b *Book) CountOccurrences(field model.Field, value string) int {
	n := 0
	for _, c := range b.contacts {
		if v, ok := c.Value(field); ok && v == value {
			n++
		}
	}
	return n
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// Get returns the contact stored under email.
func (b *Book) Get(email string) (model.Contact, bool) {
	c, ok := b.contacts[email]
	return c, ok
}

// Contacts returns every contact ordered by email.
func (b *Book) Contacts() []model.Contact {
	out := make([]model.Contact, 0, len(b.contacts))
	for _, email := range slices.Sorted(maps.Keys(b.contacts)) {
		out = append(out, b.contacts[email])
	}
	return out
}
