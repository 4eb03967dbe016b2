package services

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CatalogMaterial is a material record as stored in the catalog.
type CatalogMaterial struct {
	ID             string  `json:"_id"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	Cost           float64 `json:"cost"`
	Specifications string  `json:"specifications"`
	Supplier       string  `json:"supplier"`
	Brand          string  `json:"brand"`
}

// Validate checks the fields a BOM line needs from a catalog material.
func (m CatalogMaterial) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Description, validation.Required),
		validation.Field(&m.Unit, validation.Required),
		validation.Field(&m.Cost, validation.By(finiteNumber), validation.Min(0.0)),
	)
}

// ValidateForCatalog applies the stricter rules for storing a catalog
// record, where every descriptive field is required.
func (m CatalogMaterial) ValidateForCatalog() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Description, validation.Required),
		validation.Field(&m.Unit, validation.Required),
		validation.Field(&m.Cost, validation.By(finiteNumber), validation.Min(0.0)),
		validation.Field(&m.Specifications, validation.Required),
		validation.Field(&m.Supplier, validation.Required),
		validation.Field(&m.Brand, validation.Required),
	)
}

// Normalize trims surrounding whitespace from every text field.
func (m CatalogMaterial) Normalize() CatalogMaterial {
	m.Description = strings.TrimSpace(m.Description)
	m.Unit = strings.TrimSpace(m.Unit)
	m.Specifications = strings.TrimSpace(m.Specifications)
	m.Supplier = strings.TrimSpace(m.Supplier)
	m.Brand = strings.TrimSpace(m.Brand)
	return m
}

func finiteNumber(value interface{}) error {
	switch v := value.(type) {
	case float64:
		if !isFinite(v) {
			return errors.New("must be a finite number")
		}
	case *float64:
		if v != nil && !isFinite(*v) {
			return errors.New("must be a finite number")
		}
	}
	return nil
}
