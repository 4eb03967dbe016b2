package collections

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type locationDef struct {
	name   string
	markup float64
}

type supplierDef struct {
	name          string
	contactPerson string
	email         string
	phone         string
	address       string
}

type materialDef struct {
	description    string
	unit           string
	cost           float64
	specifications string
	supplier       string
	brand          string
}

type templateDef struct {
	title      string
	tier       string
	laborRate  float64
	categories []services.TemplateCategory
}

var seedLocations = []locationDef{
	{"Metro Manila", 15},
	{"Cebu City", 12},
	{"Davao City", 10},
	{"Iloilo City", 8},
	{"Baguio City", 10},
	{"Cagayan de Oro", 9},
}

var seedBrands = []string{"Republic Cement", "Holcim", "Steel Asia", "Phelps Dodge", "Boysen", "Mariwasa", "Neltex"}

var seedSpecifications = []string{"Type 1 Portland", "Grade 40", "Grade 60", "3.5 mm² THHN", "Series 1000", "60x60 glazed", "Gloss latex"}

var seedSuppliers = []supplierDef{
	{"Wilcon Depot", "Ana Reyes", "sales@wilcon.example.ph", "+63 2 8634 8387", "Quezon Ave, Quezon City"},
	{"CW Home Depot", "Mark Santos", "orders@cwhomedepot.example.ph", "+63 2 8555 1234", "Ortigas Ave, Pasig City"},
	{"Citi Hardware", "Joy Villanueva", "projects@citihardware.example.ph", "+63 82 224 5678", "J.P. Laurel Ave, Davao City"},
}

var seedMaterials = []materialDef{
	{"Portland cement 40kg", "bags", 265, "Type 1 Portland", "Wilcon Depot", "Republic Cement"},
	{"Washed sand", "cu.m", 1500, "Fine aggregate", "CW Home Depot", "Local quarry"},
	{"Crushed gravel 3/4in", "cu.m", 1700, "Coarse aggregate", "CW Home Depot", "Local quarry"},
	{"Deformed bar 10mm x 6m", "length", 210, "Grade 40", "Wilcon Depot", "Steel Asia"},
	{"Deformed bar 12mm x 6m", "length", 300, "Grade 60", "Wilcon Depot", "Steel Asia"},
	{"Tie wire #16", "kg", 85, "Galvanized", "Citi Hardware", "Steel Asia"},
	{"Concrete hollow block 4in", "pcs", 15, "Load bearing", "Citi Hardware", "Holcim"},
	{"THHN wire 3.5mm2", "rolls", 3200, "3.5 mm² THHN", "Wilcon Depot", "Phelps Dodge"},
	{"PVC pipe 4in", "length", 480, "Series 1000", "CW Home Depot", "Neltex"},
	{"Ceramic floor tile 60x60", "boxes", 720, "60x60 glazed", "Wilcon Depot", "Mariwasa"},
	{"Latex paint", "gallons", 780, "Gloss latex", "Citi Hardware", "Boysen"},
}

// Quantity formulas use the physical drivers exposed by the generator:
// totalArea, floorArea, numFloors, avgFloorHeight, buildingHeight,
// roomCount and foundationDepth.
var (
	earthworks = services.TemplateCategory{Category: "Earthworks", Materials: []services.TemplateMaterial{
		{Description: "Excavation", Unit: "cu.m", BaseCost: 450, QuantityFormula: "floorArea * foundationDepth * 0.35"},
		{Description: "Gravel bedding", Unit: "cu.m", BaseCost: 1200, QuantityFormula: "floorArea * 0.1"},
	}}
	concrete = services.TemplateCategory{Category: "Concrete Works", Materials: []services.TemplateMaterial{
		{Description: "Portland cement 40kg", Unit: "bags", BaseCost: 260, QuantityFormula: "ceil(totalArea * 0.9)"},
		{Description: "Washed sand", Unit: "cu.m", BaseCost: 1450, QuantityFormula: "totalArea * 0.05"},
		{Description: "Crushed gravel 3/4in", Unit: "cu.m", BaseCost: 1650, QuantityFormula: "totalArea * 0.08"},
	}}
	rebar = services.TemplateCategory{Category: "Steel Reinforcement", Materials: []services.TemplateMaterial{
		{Description: "Deformed bar 10mm x 6m", Unit: "length", BaseCost: 205, QuantityFormula: "ceil(totalArea * 1.2)"},
		{Description: "Deformed bar 12mm x 6m", Unit: "length", BaseCost: 295, QuantityFormula: "ceil(totalArea * 0.6 + numFloors * 20)"},
		{Description: "Tie wire #16", Unit: "kg", BaseCost: 80, QuantityFormula: "ceil(totalArea * 0.08)"},
	}}
	masonry = services.TemplateCategory{Category: "Masonry", Materials: []services.TemplateMaterial{
		{Description: "Concrete hollow block 4in", Unit: "pcs", BaseCost: 14, QuantityFormula: "ceil(4 * sqrt(floorArea) * buildingHeight * 12.5 + roomCount * 150)"},
	}}
	roofing = services.TemplateCategory{Category: "Roofing", Materials: []services.TemplateMaterial{
		{Description: "Pre-painted GI roofing sheet", Unit: "sheets", BaseCost: 650, QuantityFormula: "ceil(floorArea * 1.2 / 2.4)"},
		{Description: "C-purlins 2x4 x 6m", Unit: "length", BaseCost: 520, QuantityFormula: "ceil(floorArea / 3)"},
	}}
	electrical = services.TemplateCategory{Category: "Electrical", Materials: []services.TemplateMaterial{
		{Description: "THHN wire 3.5mm2", Unit: "rolls", BaseCost: 3100, QuantityFormula: "ceil(roomCount * 0.5 + numFloors)"},
		{Description: "Convenience outlet", Unit: "sets", BaseCost: 180, QuantityFormula: "roomCount * 3"},
		{Description: "LED lighting fixture", Unit: "sets", BaseCost: 350, QuantityFormula: "roomCount * 2 + numFloors"},
	}}
	plumbing = services.TemplateCategory{Category: "Plumbing", Materials: []services.TemplateMaterial{
		{Description: "PVC pipe 4in", Unit: "length", BaseCost: 470, QuantityFormula: "ceil(buildingHeight / 3 + 4)"},
		{Description: "PPR pipe 1/2in", Unit: "length", BaseCost: 260, QuantityFormula: "ceil(roomCount * 1.5 + 6)"},
	}}
	finishing = services.TemplateCategory{Category: "Finishing", Materials: []services.TemplateMaterial{
		{Description: "Ceramic floor tile 60x60", Unit: "boxes", BaseCost: 700, QuantityFormula: "ceil(totalArea * 0.9 / 1.44)"},
		{Description: "Latex paint", Unit: "gallons", BaseCost: 760, QuantityFormula: "ceil(4 * sqrt(floorArea) * buildingHeight * 2 / 35)"},
	}}
)

var seedTemplates = []templateDef{
	{
		title:      "Economy Residential",
		tier:       "economy",
		laborRate:  0.35,
		categories: []services.TemplateCategory{earthworks, concrete, rebar, masonry, roofing, electrical, plumbing},
	},
	{
		title:      "Standard Residential",
		tier:       "standard",
		laborRate:  0.40,
		categories: []services.TemplateCategory{earthworks, concrete, rebar, masonry, roofing, electrical, plumbing, finishing},
	},
	{
		title:     "Premium Residential",
		tier:      "premium",
		laborRate: 0.45,
		categories: []services.TemplateCategory{earthworks, concrete, rebar, masonry, roofing, electrical, plumbing, finishing,
			{Category: "Fixtures", Materials: []services.TemplateMaterial{
				{Description: "Water closet set", Unit: "sets", BaseCost: 8500, QuantityFormula: "max(numFloors, roomCount / 2)"},
				{Description: "Kitchen sink stainless", Unit: "sets", BaseCost: 6200, QuantityFormula: "1"},
			}},
		},
	},
}

// Seed populates the reference collections (locations, dropdowns, catalog
// materials and templates) and one sample project with a generated BOM.
// It is safe to call on every startup because each collection is only
// filled while it is empty.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedIfEmpty(app, "locations", func(col *core.Collection) error {
		for _, l := range seedLocations {
			r := core.NewRecord(col)
			r.Set("name", l.name)
			r.Set("markup", l.markup)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("location %q: %w", l.name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	for name, values := range map[string][]string{"brands": seedBrands, "specifications": seedSpecifications} {
		if err := seedIfEmpty(app, name, func(col *core.Collection) error {
			for _, v := range values {
				r := core.NewRecord(col)
				r.Set("name", v)
				if err := app.Save(r); err != nil {
					return fmt.Errorf("%s %q: %w", name, v, err)
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if err := seedIfEmpty(app, "suppliers", func(col *core.Collection) error {
		for _, s := range seedSuppliers {
			r := core.NewRecord(col)
			r.Set("name", s.name)
			r.Set("contact_person", s.contactPerson)
			r.Set("email", s.email)
			r.Set("phone", s.phone)
			r.Set("address", s.address)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("supplier %q: %w", s.name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(app, "materials", func(col *core.Collection) error {
		for _, m := range seedMaterials {
			r := core.NewRecord(col)
			r.Set("description", m.description)
			r.Set("unit", m.unit)
			r.Set("cost", m.cost)
			r.Set("specifications", m.specifications)
			r.Set("supplier", m.supplier)
			r.Set("brand", m.brand)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("material %q: %w", m.description, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(app, "templates", func(col *core.Collection) error {
		for _, t := range seedTemplates {
			r := core.NewRecord(col)
			r.Set("title", t.title)
			r.Set("tier", t.tier)
			r.Set("labor_rate", t.laborRate)
			r.Set("categories", t.categories)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("template %q: %w", t.title, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return seedIfEmpty(app, "projects", func(col *core.Collection) error {
		tmpl, err := app.FindFirstRecordByFilter("templates", "title = {:title}", map[string]any{"title": "Standard Residential"})
		if err != nil {
			return fmt.Errorf("find sample template: %w", err)
		}

		project := core.NewRecord(col)
		project.Set("name", "Two-Storey Residence - Lot 12")
		project.Set("owner", "Juan Dela Cruz")
		project.Set("status", "not started")
		if err := app.Save(project); err != nil {
			return fmt.Errorf("sample project: %w", err)
		}

		bom, err := services.NewRecordGenerator(app).Generate(context.Background(), services.GenerateParams{
			TotalArea:       120,
			NumFloors:       2,
			AvgFloorHeight:  3,
			TemplateID:      tmpl.Id,
			LocationName:    "Metro Manila",
			RoomCount:       4,
			FoundationDepth: 1.5,
		})
		if err != nil {
			return fmt.Errorf("generate sample BOM: %w", err)
		}
		if _, err := services.SaveProjectBOM(app, project.Id, bom); err != nil {
			return fmt.Errorf("save sample BOM: %w", err)
		}
		return nil
	})
}

// seedIfEmpty runs fill only when the named collection has no records.
func seedIfEmpty(app *pocketbase.PocketBase, name string, fill func(*core.Collection) error) error {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", name, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query %s: %w", name, err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Printf("seed: %s collection is empty, inserting seed data\n", name)
	if err := fill(col); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
