package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeTemplates struct {
	templates map[string]Template
	calls     int
}

func (f *fakeTemplates) Template(_ context.Context, id string) (Template, error) {
	f.calls++
	t, ok := f.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: template %q", ErrNotFound, id)
	}
	return t, nil
}

type fakeLocations struct {
	locations map[string]Location
	calls     int
}

func (f *fakeLocations) Location(_ context.Context, name string) (Location, error) {
	f.calls++
	l, ok := f.locations[name]
	if !ok {
		return Location{}, fmt.Errorf("%w: location %q", ErrNotFound, name)
	}
	return l, nil
}

type fakePrices struct {
	materials map[string]CatalogMaterial
	err       error
}

func (f *fakePrices) LookupMaterial(_ context.Context, description string) (CatalogMaterial, bool, error) {
	if f.err != nil {
		return CatalogMaterial{}, false, f.err
	}
	m, ok := f.materials[description]
	return m, ok, nil
}

func testTemplate() Template {
	return Template{
		ID:        "tpl-1",
		Title:     "Standard Bungalow",
		Tier:      "standard",
		LaborRate: 0.4,
		Categories: []TemplateCategory{
			{Category: "Masonry", Materials: []TemplateMaterial{
				{Description: "Cement", Unit: "bags", BaseCost: 200, QuantityFormula: "totalArea * 0.5"},
				{Description: "Sand", Unit: "cu.m", BaseCost: 1000, QuantityFormula: "ceil(totalArea / 40)"},
			}},
			{Category: "Roofing", Materials: []TemplateMaterial{
				{Description: "GI sheet", Unit: "sheets", BaseCost: 100, QuantityFormula: "floorArea / 10"},
			}},
		},
	}
}

func newTestGenerator(prices PriceSource) (*Generator, *fakeTemplates, *fakeLocations) {
	tpls := &fakeTemplates{templates: map[string]Template{"tpl-1": testTemplate()}}
	locs := &fakeLocations{locations: map[string]Location{"Metro Manila": {Name: "Metro Manila", Markup: 10}}}
	return NewGenerator(tpls, locs, prices), tpls, locs
}

func validParams() GenerateParams {
	return GenerateParams{
		TotalArea:       100,
		NumFloors:       2,
		AvgFloorHeight:  3,
		TemplateID:      "tpl-1",
		LocationName:    "Metro Manila",
		RoomCount:       3,
		FoundationDepth: 1.5,
	}
}

func TestGenerate_PricesFromCatalogAndTemplate(t *testing.T) {
	prices := &fakePrices{materials: map[string]CatalogMaterial{
		"Cement": {ID: "mat-cement", Description: "Cement", Unit: "bags", Cost: 250, Brand: "Holcim"},
	}}
	g, _, _ := newTestGenerator(prices)

	bom, err := g.Generate(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(bom.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(bom.Categories))
	}
	masonry := bom.Categories[0].Materials
	// cement: 50 bags at the catalog price; sand: ceil(2.5) = 3 at base cost
	if masonry[0].Quantity != 50 || masonry[0].Cost != 250 || masonry[0].MaterialID != "mat-cement" {
		t.Errorf("cement line = %+v", masonry[0])
	}
	if masonry[0].Brand != "Holcim" {
		t.Errorf("brand = %q, want Holcim", masonry[0].Brand)
	}
	if masonry[1].Quantity != 3 || masonry[1].Cost != 1000 || masonry[1].MaterialID != "" {
		t.Errorf("sand line = %+v", masonry[1])
	}
	// floorArea = 100 / 2 = 50 -> 5 sheets
	if q := bom.Categories[1].Materials[0].Quantity; q != 5 {
		t.Errorf("GI sheet quantity = %v, want 5", q)
	}

	// materials 12500 + 3000 + 500 = 16000; labor 40% = 6400
	if bom.OriginalCosts.LaborCost != 6400 {
		t.Errorf("labor = %v, want 6400", bom.OriginalCosts.LaborCost)
	}
	if bom.MarkedUpCosts.LaborCost != 7040 {
		t.Errorf("marked-up labor = %v, want 7040", bom.MarkedUpCosts.LaborCost)
	}
	if bom.OriginalCosts.TotalProjectCost != 22400 {
		t.Errorf("original total = %v, want 22400", bom.OriginalCosts.TotalProjectCost)
	}
	if bom.MarkedUpCosts.TotalProjectCost != 24640 {
		t.Errorf("marked-up total = %v, want 24640", bom.MarkedUpCosts.TotalProjectCost)
	}

	d := bom.ProjectDetails
	if d.Location.Markup != 10 || d.Template.ID != "tpl-1" || d.Template.Title != "Standard Bungalow" || d.NumFloors != 2 {
		t.Errorf("project details = %+v", d)
	}
}

func TestGenerate_ItemNumbersAndLineIDs(t *testing.T) {
	g, _, _ := newTestGenerator(nil)

	bom, err := g.Generate(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{"1.1", "1.2", "2.1"}
	var got []string
	ids := map[string]bool{}
	for _, c := range bom.Categories {
		for _, m := range c.Materials {
			got = append(got, m.Item)
			if m.ID == "" || ids[m.ID] {
				t.Errorf("line %s has missing or duplicate _id %q", m.Item, m.ID)
			}
			ids[m.ID] = true
		}
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", got, want)
	}
}

func TestGenerate_OutputIsRecomputed(t *testing.T) {
	g, _, _ := newTestGenerator(nil)

	bom, err := g.Generate(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	again, err := Recompute(bom)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if again.MarkedUpCosts != bom.MarkedUpCosts || again.OriginalCosts != bom.OriginalCosts {
		t.Errorf("generated totals are not stable: %+v vs %+v", bom, again)
	}
}

func TestGenerate_InvalidAreaFailsBeforeLookups(t *testing.T) {
	for _, area := range []float64{0, -5} {
		g, tpls, locs := newTestGenerator(nil)
		p := validParams()
		p.TotalArea = area

		_, err := g.Generate(context.Background(), p)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("area %v: expected ErrValidation, got %v", area, err)
		}
		if tpls.calls != 0 || locs.calls != 0 {
			t.Errorf("area %v: lookups happened (templates=%d, locations=%d)", area, tpls.calls, locs.calls)
		}
	}
}

func TestGenerate_ParamValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerateParams)
	}{
		{"zero floors", func(p *GenerateParams) { p.NumFloors = 0 }},
		{"too many floors", func(p *GenerateParams) { p.NumFloors = MaxFloors + 1 }},
		{"zero height", func(p *GenerateParams) { p.AvgFloorHeight = 0 }},
		{"height too tall", func(p *GenerateParams) { p.AvgFloorHeight = MaxAvgFloorHeight + 1 }},
		{"blank template", func(p *GenerateParams) { p.TemplateID = "   " }},
		{"blank location", func(p *GenerateParams) { p.LocationName = "" }},
		{"zero rooms", func(p *GenerateParams) { p.RoomCount = 0 }},
		{"negative foundation", func(p *GenerateParams) { p.FoundationDepth = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tpls, _ := newTestGenerator(nil)
			p := validParams()
			tt.mutate(&p)
			if _, err := g.Generate(context.Background(), p); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if tpls.calls != 0 {
				t.Error("template was looked up for invalid params")
			}
		})
	}
}

func TestGenerate_UnknownReferences(t *testing.T) {
	t.Run("template", func(t *testing.T) {
		g, _, _ := newTestGenerator(nil)
		p := validParams()
		p.TemplateID = "nope"
		_, err := g.Generate(context.Background(), p)
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrValidation wrapping ErrNotFound, got %v", err)
		}
	})

	t.Run("location", func(t *testing.T) {
		g, _, _ := newTestGenerator(nil)
		p := validParams()
		p.LocationName = "Atlantis"
		_, err := g.Generate(context.Background(), p)
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrValidation wrapping ErrNotFound, got %v", err)
		}
	})
}

func TestGenerate_PriceLookupFailure(t *testing.T) {
	boom := errors.New("database is locked")
	g, _, _ := newTestGenerator(&fakePrices{err: boom})

	_, err := g.Generate(context.Background(), validParams())
	if !errors.Is(err, boom) {
		t.Errorf("expected lookup error to propagate, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Error("storage failures must not be reported as validation errors")
	}
}

func TestGenerate_BadTemplateFormula(t *testing.T) {
	g, tpls, _ := newTestGenerator(nil)
	tpl := testTemplate()
	tpl.Categories[0].Materials[0].QuantityFormula = "totalArea - 1000"
	tpls.templates["tpl-1"] = tpl

	if _, err := g.Generate(context.Background(), validParams()); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative quantity, got %v", err)
	}
}

func TestGenerate_TemplateWithoutCategories(t *testing.T) {
	g, tpls, _ := newTestGenerator(nil)
	tpls.templates["tpl-1"] = Template{ID: "tpl-1", Title: "Empty"}

	if _, err := g.Generate(context.Background(), validParams()); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGenerate_DefaultLaborRate(t *testing.T) {
	g, tpls, _ := newTestGenerator(nil)
	tpl := testTemplate()
	tpl.LaborRate = 0
	tpls.templates["tpl-1"] = tpl

	bom, err := g.Generate(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// materials 10000 + 3000 + 500 = 13500
	if want := Round2(13500 * DefaultLaborRate); bom.OriginalCosts.LaborCost != want {
		t.Errorf("labor = %v, want %v", bom.OriginalCosts.LaborCost, want)
	}
}
