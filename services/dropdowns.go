package services

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UnitOptions lists the units offered when a material is created.
var UnitOptions = []string{
	"pcs",
	"bags",
	"kg",
	"cu.m",
	"sq.m",
	"l.m",
	"length",
	"sheets",
	"rolls",
	"liters",
	"gallons",
	"boxes",
	"sets",
	"lot",
}

// DropdownKind names one of the reference lists used by the material form.
type DropdownKind string

const (
	Brands         DropdownKind = "brands"
	Specifications DropdownKind = "specifications"
	Suppliers      DropdownKind = "suppliers"
)

// DropdownKinds lists every kind; each one is backed by a collection of the
// same name.
var DropdownKinds = []DropdownKind{Brands, Specifications, Suppliers}

// ParseDropdownKind validates a kind taken from a URL.
func ParseDropdownKind(s string) (DropdownKind, error) {
	for _, k := range DropdownKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown dropdown %q", ErrNotFound, s)
}

// DropdownEntry is a brand, specification or supplier. Contact fields are
// only kept for suppliers.
type DropdownEntry struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// Normalize trims every field, lower-cases supplier emails and drops the
// contact fields for kinds that have none.
func (e DropdownEntry) Normalize(kind DropdownKind) DropdownEntry {
	e.Name = strings.TrimSpace(e.Name)
	if kind != Suppliers {
		e.ContactPerson, e.Email, e.Phone, e.Address = "", "", "", ""
		return e
	}
	e.ContactPerson = strings.TrimSpace(e.ContactPerson)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Phone = strings.TrimSpace(e.Phone)
	e.Address = strings.TrimSpace(e.Address)
	return e
}

func (e DropdownEntry) Validate(kind DropdownKind) error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Email, validation.When(kind == Suppliers, is.EmailFormat)),
	)
}
