package storage

import (
	"address-book/internal/model"
	"address-book/pkg/fsutils"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// JSONStore implements the SnapshotStore interface using a single JSON file.
// The file holds one object mapping email to contact record.
type JSONStore struct {
	// Path is the snapshot file.
	Path string
}

var _ SnapshotStore = (*JSONStore)(nil)

// NewJSONStore creates a new JSONStore instance. The file is not touched
// until the first Read or Write.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Location returns the snapshot file path.
func (js *JSONStore) Location() string {
	return js.Path
}

// Read decodes the snapshot file. The returned map is never nil on success.
func (js *JSONStore) Read() (map[string]model.Contact, error) {
	data, err := os.ReadFile(js.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileAbsent, js.Path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrMalformedData, js.Path, err)
	}
	return decodeSnapshot(js.Path, data)
}

func decodeSnapshot(path string, data []byte) (map[string]model.Contact, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var contacts map[string]model.Contact
	err := dec.Decode(&contacts)
	switch {
	case errors.Is(err, io.EOF):
		return nil, fmt.Errorf("%w: %s has no content", ErrFileEmpty, path)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: %s is truncated", ErrFileEmpty, path)
	case err != nil:
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrMalformedData, path, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after snapshot in %s", ErrMalformedData, path)
	}
	// A literal null decodes without error but is not a mapping.
	if contacts == nil {
		return nil, fmt.Errorf("%w: %s does not hold a contact mapping", ErrMalformedData, path)
	}
	for email, c := range contacts {
		if c.Email != email {
			return nil, fmt.Errorf("%w: record under %q has email %q", ErrMalformedData, email, c.Email)
		}
	}
	return contacts, nil
}

// Write serializes the whole contact map and atomically replaces the file.
// Invalid UTF-8 in any field is stored as U+FFFD.
func (js *JSONStore) Write(contacts map[string]model.Contact) error {
	if contacts == nil {
		contacts = map[string]model.Contact{}
	}
	// Use MarshalIndent for readable JSON files
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}
	if err := fsutils.WriteFileAtomic(js.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", js.Path, err)
	}
	return nil
}
