package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// bomMaxSize bounds the JSON document stored on a project (5 MB).
const bomMaxSize = 5 << 20

// Setup programmatically creates/ensures the catalog, dropdown, reference
// data and projects collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "cost", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.TextField{Name: "specifications", Required: true})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: true})
		c.Fields.Add(&core.TextField{Name: "brand", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_materials_description", false, "description", "")
	})

	for _, name := range []string{"brands", "specifications"} {
		ensureCollection(app, name, func(c *core.Collection) {
			c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 200})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
			c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
			c.AddIndex("idx_"+name+"_name", true, "name", "")
		})
	}

	ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 200})
		c.Fields.Add(&core.TextField{Name: "contact_person"})
		c.Fields.Add(&core.TextField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_suppliers_name", true, "name", "")
	})

	ensureCollection(app, "locations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "markup", Min: types.Pointer(0.0)})
		c.AddIndex("idx_locations_name", true, "name", "")
	})

	templates := ensureCollection(app, "templates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "tier",
			Values:    []string{"economy", "standard", "premium"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "labor_rate", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.JSONField{Name: "categories", Required: true, MaxSize: bomMaxSize})
		c.AddIndex("idx_templates_title", true, "title", "")
	})

	ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "owner"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"not started", "ongoing", "completed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "template",
			CollectionId: templates.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.JSONField{Name: "bom", MaxSize: bomMaxSize})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
