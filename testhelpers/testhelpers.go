// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/collections"
	"bomestimator/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("owner", "Test Owner")
	record.Set("status", "not started")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestMaterial creates a catalog material and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, description, unit string, cost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("description", description)
	record.Set("unit", unit)
	record.Set("cost", cost)
	record.Set("specifications", "Standard")
	record.Set("supplier", "Test Supplier")
	record.Set("brand", "Test Brand")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestLocation creates a location with the given markup percentage.
func CreateTestLocation(t *testing.T, app *pocketbase.PocketBase, name string, markup float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("locations")
	if err != nil {
		t.Fatalf("failed to find locations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("markup", markup)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test location: %v", err)
	}

	return record
}

// CreateTestTemplate creates a template with a single "Masonry" category
// holding one 10 PHP material whose quantity equals totalArea.
func CreateTestTemplate(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("templates")
	if err != nil {
		t.Fatalf("failed to find templates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("tier", "standard")
	record.Set("labor_rate", 0.4)
	record.Set("categories", []services.TemplateCategory{
		{Category: "Masonry", Materials: []services.TemplateMaterial{
			{Description: "Hollow block", Unit: "pcs", BaseCost: 10, QuantityFormula: "totalArea"},
		}},
	})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test template: %v", err)
	}

	return record
}

// SaveTestBOM stores b on the project, failing the test on error.
func SaveTestBOM(t *testing.T, app *pocketbase.PocketBase, projectID string, b services.BOM) services.BOM {
	t.Helper()

	saved, err := services.SaveProjectBOM(app, projectID, b)
	if err != nil {
		t.Fatalf("failed to save test BOM: %v", err)
	}
	return saved
}

// AssertHTMLContains checks that body contains every fragment.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
