package clients

import (
	"strings"

	"github.com/pkg/errors"
)

// Field identifies one editable attribute of a Record.
type Field int

const (
	FirstName Field = iota
	LastName
	PhoneNum
	Email
	Address
	City
	PostalCode

	numFields int = iota
)

// Fields lists all editable Fields in display order.
var Fields = []Field{FirstName, LastName, PhoneNum, Email, Address, City, PostalCode}

var fieldColumns = [numFields]string{
	FirstName:  "first_name",
	LastName:   "last_name",
	PhoneNum:   "phone_num",
	Email:      "email",
	Address:    "address",
	City:       "city",
	PostalCode: "postal_code",
}

var fieldLabels = [numFields]string{
	FirstName:  "First Name",
	LastName:   "Last Name",
	PhoneNum:   "Phone Number",
	Email:      "Email",
	Address:    "Address",
	City:       "City",
	PostalCode: "Postal Code",
}

// Valid returns true if the Field is one of the enumerated Fields.
func (f Field) Valid() bool { return f >= 0 && int(f) < numFields }

// Column is the "clients" table column which stores the Field.
func (f Field) Column() string {
	if !f.Valid() {
		return ""
	}
	return fieldColumns[f]
}

// Label is the human-readable name of the Field.
func (f Field) Label() string {
	if !f.Valid() {
		return ""
	}
	return fieldLabels[f]
}

// Title is the Field's Column in title case, as in "Phone Num".
func (f Field) Title() string {
	var words = strings.Split(f.Column(), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (f Field) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return fieldColumns[f]
}

// ParseField maps a column name to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if fieldColumns[f] == name {
			return f, nil
		}
	}
	return -1, errors.WithMessagef(ErrInvalidField, "%q", name)
}
