// Package clients models the client records of a veterinary clinic: a Record
// mirrors one row of the "clients" table, and a Field enumerates the row's
// editable attributes.
package clients

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no client row has the requested ID.
	ErrNotFound = errors.New("client not found")
	// ErrInvalidField is returned when a Field (or field name) is not one of
	// the enumerated editable attributes of a Record.
	ErrInvalidField = errors.New("invalid field")
)

// DefaultID is the ID of the sample client row seeded into empty stores, and
// the record an editing session opens unless told otherwise.
const DefaultID int64 = 50

// Record is an in-memory mirror of one client row.
type Record struct {
	ID         int64  `yaml:"id" json:"id"`
	FirstName  string `yaml:"first_name" json:"first_name"`
	LastName   string `yaml:"last_name" json:"last_name"`
	PhoneNum   string `yaml:"phone_num" json:"phone_num"`
	Email      string `yaml:"email" json:"email"`
	Address    string `yaml:"address" json:"address"`
	City       string `yaml:"city" json:"city"`
	PostalCode string `yaml:"postal_code" json:"postal_code"`
}

// Sample returns the Record which is seeded under DefaultID.
func Sample() Record {
	return Record{
		ID:         DefaultID,
		FirstName:  "Joe",
		LastName:   "Mama",
		PhoneNum:   "6049222222",
		Email:      "joe@lunchbox.ca",
		Address:    "950 53rd Street",
		City:       "Delta",
		PostalCode: "V4M3B7",
	}
}

// field returns a pointer to the attribute of |r| identified by |f|,
// or nil if |f| is not a valid Field.
func (r *Record) field(f Field) *string {
	switch f {
	case FirstName:
		return &r.FirstName
	case LastName:
		return &r.LastName
	case PhoneNum:
		return &r.PhoneNum
	case Email:
		return &r.Email
	case Address:
		return &r.Address
	case City:
		return &r.City
	case PostalCode:
		return &r.PostalCode
	default:
		return nil
	}
}

// Update sets the attribute identified by |f| to |value|.
func (r *Record) Update(f Field, value string) error {
	var p = r.field(f)
	if p == nil {
		return errors.WithMessagef(ErrInvalidField, "field %d", int(f))
	}
	*p = value
	return nil
}

// Get returns the attribute identified by |f|, or the empty string if |f|
// is not a valid Field.
func (r Record) Get(f Field) string {
	if p := r.field(f); p != nil {
		return *p
	}
	return ""
}

// Display writes the labeled, line-per-field rendering of the Record to |w|.
func (r Record) Display(w io.Writer) error {
	var _, err = fmt.Fprintf(w,
		"ID         : %d\n"+
			"First Name : %s\n"+
			"Last Name  : %s\n"+
			"Phone Num  : %s\n"+
			"Email      : %s\n"+
			"Address    : %s\n"+
			"City       : %s\n"+
			"Postal Code: %s\n",
		r.ID, r.FirstName, r.LastName, r.PhoneNum, r.Email, r.Address, r.City, r.PostalCode)
	return err
}
