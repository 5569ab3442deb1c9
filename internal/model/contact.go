package model

// Contact is a single address book entry. Email and Mobile are unique
// across the book; Email doubles as the storage key.
type Contact struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Mobile    string `json:"mobile"` // Digits only, checked at the input boundary
	Email     string `json:"email"`
}

// Field names a contact attribute that can be queried with CountOccurrences.
type Field string

const (
	FieldFirstName Field = "fname"
	FieldLastName  Field = "lname"
	FieldStreet    Field = "street"
)

// SummaryFields is the order in which fields are shown in a summary.
var SummaryFields = []Field{FieldFirstName, FieldLastName, FieldStreet}

// Label returns the human readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldStreet:
		return "Street Address"
	default:
		return string(f)
	}
}

// Value returns the contact's value for f. The second result is false for
// fields that are not queryable.
func (c Contact) Value(f Field) (string, bool) {
	switch f {
	case FieldFirstName:
		return c.FirstName, true
	case FieldLastName:
		return c.LastName, true
	case FieldStreet:
		return c.Street, true
	default:
		return "", false
	}
}
