package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Upper limits accepted by the project form.
const (
	MaxFloors         = 5
	MaxAvgFloorHeight = 15.0

	// DefaultLaborRate is the share of the materials subtotal charged as
	// labor when a template does not define its own rate.
	DefaultLaborRate = 0.40
)

// GenerateParams are the physical parameters a BOM is generated from.
type GenerateParams struct {
	TotalArea       float64 `json:"totalArea"`
	NumFloors       int     `json:"numFloors"`
	AvgFloorHeight  float64 `json:"avgFloorHeight"`
	TemplateID      string  `json:"templateId"`
	LocationName    string  `json:"locationName"`
	RoomCount       int     `json:"roomCount"`
	FoundationDepth float64 `json:"foundationDepth"`
}

// Validate checks every parameter. It never touches reference data.
func (p GenerateParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TotalArea, validation.Required, validation.By(finiteNumber), validation.Min(0.0).Exclusive()),
		validation.Field(&p.NumFloors, validation.Required, validation.Min(1), validation.Max(MaxFloors)),
		validation.Field(&p.AvgFloorHeight, validation.Required, validation.By(finiteNumber), validation.Min(0.0).Exclusive(), validation.Max(MaxAvgFloorHeight)),
		validation.Field(&p.TemplateID, validation.Required),
		validation.Field(&p.LocationName, validation.Required),
		validation.Field(&p.RoomCount, validation.Required, validation.Min(1)),
		validation.Field(&p.FoundationDepth, validation.Required, validation.By(finiteNumber), validation.Min(0.0).Exclusive()),
	)
}

// formulaParams exposes the physical drivers to quantity formulas.
func (p GenerateParams) formulaParams() map[string]interface{} {
	floors := float64(p.NumFloors)
	return map[string]interface{}{
		"totalArea":       p.TotalArea,
		"numFloors":       floors,
		"avgFloorHeight":  p.AvgFloorHeight,
		"roomCount":       float64(p.RoomCount),
		"foundationDepth": p.FoundationDepth,
		"floorArea":       p.TotalArea / floors,
		"buildingHeight":  floors * p.AvgFloorHeight,
	}
}

// Template describes how a BOM is derived from project parameters.
type Template struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Tier       string             `json:"tier"`
	LaborRate  float64            `json:"laborRate"`
	Categories []TemplateCategory `json:"categories"`
}

type TemplateCategory struct {
	Category  string             `json:"category"`
	Materials []TemplateMaterial `json:"materials"`
}

// TemplateMaterial is one material of a template category. QuantityFormula
// is evaluated against the project drivers, e.g. "ceil(totalArea * 0.9)".
type TemplateMaterial struct {
	Description     string  `json:"description"`
	Unit            string  `json:"unit"`
	BaseCost        float64 `json:"baseCost"`
	QuantityFormula string  `json:"quantityFormula"`
}

// Validate checks the template structure.
func (t Template) Validate() error {
	if err := validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.LaborRate, validation.By(finiteNumber), validation.Min(0.0)),
		validation.Field(&t.Categories, validation.Required),
	); err != nil {
		return err
	}
	for i, cat := range t.Categories {
		if strings.TrimSpace(cat.Category) == "" {
			return fmt.Errorf("category %d has no name", i+1)
		}
		for j, m := range cat.Materials {
			if err := validation.ValidateStruct(&m,
				validation.Field(&m.Description, validation.Required),
				validation.Field(&m.Unit, validation.Required),
				validation.Field(&m.BaseCost, validation.By(finiteNumber), validation.Min(0.0)),
				validation.Field(&m.QuantityFormula, validation.Required),
			); err != nil {
				return fmt.Errorf("%s material %d: %w", cat.Category, j+1, err)
			}
		}
	}
	return nil
}

// TemplateSource resolves templates by id.
type TemplateSource interface {
	Template(ctx context.Context, id string) (Template, error)
}

// LocationSource resolves locations by name.
type LocationSource interface {
	Location(ctx context.Context, name string) (Location, error)
}

// PriceSource looks up the current catalog entry for a material
// description. ok is false when the catalog has no such material.
type PriceSource interface {
	LookupMaterial(ctx context.Context, description string) (m CatalogMaterial, ok bool, err error)
}

// Generator builds initial BOMs from templates, locations and catalog prices.
type Generator struct {
	templates TemplateSource
	locations LocationSource
	prices    PriceSource
}

// NewGenerator returns a Generator. prices may be nil, in which case
// template base costs are used.
func NewGenerator(templates TemplateSource, locations LocationSource, prices PriceSource) *Generator {
	return &Generator{templates: templates, locations: locations, prices: prices}
}

// Generate validates p, resolves its template and location and returns a
// fully priced BOM. Nothing is persisted.
func (g *Generator) Generate(ctx context.Context, p GenerateParams) (BOM, error) {
	p.TemplateID = strings.TrimSpace(p.TemplateID)
	p.LocationName = strings.TrimSpace(p.LocationName)
	if err := p.Validate(); err != nil {
		return BOM{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	tmpl, err := g.templates.Template(ctx, p.TemplateID)
	if err != nil {
		return BOM{}, lookupError("template", p.TemplateID, err)
	}
	if err := tmpl.Validate(); err != nil {
		return BOM{}, fmt.Errorf("%w: template %q: %w", ErrValidation, p.TemplateID, err)
	}

	loc, err := g.locations.Location(ctx, p.LocationName)
	if err != nil {
		return BOM{}, lookupError("location", p.LocationName, err)
	}
	if !isFinite(loc.Markup) || loc.Markup < 0 {
		return BOM{}, fmt.Errorf("%w: location %q has invalid markup %v", ErrValidation, loc.Name, loc.Markup)
	}

	drivers := p.formulaParams()
	categories := make([]Category, 0, len(tmpl.Categories))
	for ci, tc := range tmpl.Categories {
		cat := Category{Category: tc.Category, Materials: make([]LineItem, 0, len(tc.Materials))}
		for mi, tm := range tc.Materials {
			qty, err := EvaluateQuantity(tm.QuantityFormula, drivers)
			if err != nil {
				return BOM{}, fmt.Errorf("%w: %s / %s: %w", ErrValidation, tc.Category, tm.Description, err)
			}
			line, err := g.snapshot(ctx, tm)
			if err != nil {
				return BOM{}, err
			}
			line.ID = uuid.NewString()
			line.Item = fmt.Sprintf("%d.%d", ci+1, mi+1)
			line.Quantity = qty
			cat.Materials = append(cat.Materials, line)
		}
		categories = append(categories, cat)
	}

	bom := BOM{
		ProjectDetails: ProjectDetails{
			TotalArea:       p.TotalArea,
			NumFloors:       p.NumFloors,
			AvgFloorHeight:  p.AvgFloorHeight,
			RoomCount:       p.RoomCount,
			FoundationDepth: p.FoundationDepth,
			Location:        Location{Name: loc.Name, Markup: loc.Markup},
			Template:        TemplateRef{ID: tmpl.ID, Title: tmpl.Title, Tier: tmpl.Tier},
		},
		Categories: categories,
	}

	// First pass prices the categories so labor can be derived from them.
	priced, err := Recompute(bom)
	if err != nil {
		return BOM{}, err
	}
	subtotal := decimal.Zero
	for _, c := range priced.Categories {
		subtotal = subtotal.Add(decimal.NewFromFloat(c.CategoryTotal))
	}

	rate := tmpl.LaborRate
	if rate == 0 {
		rate = DefaultLaborRate
	}
	labor := subtotal.Mul(decimal.NewFromFloat(rate)).Round(2)
	priced.OriginalCosts.LaborCost = labor.InexactFloat64()
	priced.MarkedUpCosts.LaborCost = labor.Mul(markupFactor(loc.Markup)).Round(2).InexactFloat64()

	return Recompute(priced)
}

// snapshot copies the catalog entry for tm, falling back to the template's
// own description, unit and base cost.
func (g *Generator) snapshot(ctx context.Context, tm TemplateMaterial) (LineItem, error) {
	line := LineItem{Description: tm.Description, Unit: tm.Unit, Cost: tm.BaseCost}
	if g.prices == nil {
		return line, nil
	}
	m, ok, err := g.prices.LookupMaterial(ctx, tm.Description)
	if err != nil {
		return LineItem{}, fmt.Errorf("lookup catalog price for %q: %w", tm.Description, err)
	}
	if !ok || m.Validate() != nil {
		return line, nil
	}
	line.MaterialID = m.ID
	line.Cost = m.Cost
	line.Specifications = m.Specifications
	line.Supplier = m.Supplier
	line.Brand = m.Brand
	return line, nil
}

func lookupError(kind, key string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s %q: %w", ErrValidation, kind, key, err)
	}
	return fmt.Errorf("resolve %s %q: %w", kind, key, err)
}
