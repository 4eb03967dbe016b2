package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// RecordSources serves templates, locations and catalog prices from the
// app's collections.
type RecordSources struct {
	app *pocketbase.PocketBase
}

func NewRecordSources(app *pocketbase.PocketBase) *RecordSources {
	return &RecordSources{app: app}
}

// NewRecordGenerator returns a Generator backed by the app's collections.
func NewRecordGenerator(app *pocketbase.PocketBase) *Generator {
	src := NewRecordSources(app)
	return NewGenerator(src, src, src)
}

func (s *RecordSources) Template(ctx context.Context, id string) (Template, error) {
	if err := ctx.Err(); err != nil {
		return Template{}, err
	}
	rec, err := s.app.FindRecordById("templates", id)
	if err != nil {
		return Template{}, notFound("template", id, err)
	}
	return TemplateFromRecord(rec)
}

func (s *RecordSources) Location(ctx context.Context, name string) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	rec, err := s.app.FindFirstRecordByFilter("locations", "name = {:name}", map[string]any{"name": name})
	if err != nil {
		return Location{}, notFound("location", name, err)
	}
	return LocationFromRecord(rec), nil
}

func (s *RecordSources) LookupMaterial(ctx context.Context, description string) (CatalogMaterial, bool, error) {
	if err := ctx.Err(); err != nil {
		return CatalogMaterial{}, false, err
	}
	recs, err := s.app.FindRecordsByFilter(
		"materials",
		"description = {:description}",
		"-updated",
		1,
		0,
		map[string]any{"description": strings.TrimSpace(description)},
	)
	if err != nil {
		return CatalogMaterial{}, false, fmt.Errorf("query materials: %w", err)
	}
	if len(recs) == 0 {
		return CatalogMaterial{}, false, nil
	}
	return MaterialFromRecord(recs[0]), true, nil
}

// MaterialFromRecord converts a materials record.
func MaterialFromRecord(rec *core.Record) CatalogMaterial {
	return CatalogMaterial{
		ID:             rec.Id,
		Description:    rec.GetString("description"),
		Unit:           rec.GetString("unit"),
		Cost:           rec.GetFloat("cost"),
		Specifications: rec.GetString("specifications"),
		Supplier:       rec.GetString("supplier"),
		Brand:          rec.GetString("brand"),
	}
}

// LocationFromRecord converts a locations record.
func LocationFromRecord(rec *core.Record) Location {
	return Location{Name: rec.GetString("name"), Markup: rec.GetFloat("markup")}
}

// TemplateFromRecord converts a templates record, decoding its categories.
func TemplateFromRecord(rec *core.Record) (Template, error) {
	t := Template{
		ID:        rec.Id,
		Title:     rec.GetString("title"),
		Tier:      rec.GetString("tier"),
		LaborRate: rec.GetFloat("labor_rate"),
	}
	if err := rec.UnmarshalJSONField("categories", &t.Categories); err != nil {
		return Template{}, fmt.Errorf("%w: template %q has malformed categories: %w", ErrValidation, rec.Id, err)
	}
	return t, nil
}

// LoadProjectBOM returns the BOM stored on a project. ErrNotFound is
// returned when the project does not exist or has no BOM yet.
func LoadProjectBOM(app *pocketbase.PocketBase, projectID string) (BOM, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return BOM{}, notFound("project", projectID, err)
	}
	return ProjectBOM(project)
}

// SaveProjectBOM recomputes b and stores it on the project, replacing any
// BOM saved before. The stored document is returned.
func SaveProjectBOM(app *pocketbase.PocketBase, projectID string, b BOM) (BOM, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return BOM{}, notFound("project", projectID, err)
	}

	final, err := Recompute(WithLineIDs(b))
	if err != nil {
		return BOM{}, err
	}

	project.Set("bom", final)
	if final.ProjectDetails.Template.ID != "" {
		if _, err := app.FindRecordById("templates", final.ProjectDetails.Template.ID); err == nil {
			project.Set("template", final.ProjectDetails.Template.ID)
		}
	}
	if err := app.Save(project); err != nil {
		return BOM{}, fmt.Errorf("save project bom: %w", err)
	}
	return final, nil
}

// ProjectBOM decodes the BOM stored on a project record.
func ProjectBOM(project *core.Record) (BOM, error) {
	raw := strings.TrimSpace(project.GetString("bom"))
	if raw == "" || raw == "null" {
		return BOM{}, fmt.Errorf("%w: project %q has no saved BOM", ErrNotFound, project.Id)
	}
	var b BOM
	if err := project.UnmarshalJSONField("bom", &b); err != nil {
		return BOM{}, fmt.Errorf("%w: project %q: %w", ErrInvalidBOM, project.Id, err)
	}
	return b, nil
}

// WithLineIDs returns a copy of b in which every line item has an _id.
// Documents saved before line ids existed get fresh ones.
func WithLineIDs(b BOM) BOM {
	out := b.Clone()
	for ci := range out.Categories {
		for mi := range out.Categories[ci].Materials {
			if out.Categories[ci].Materials[mi].ID == "" {
				out.Categories[ci].Materials[mi].ID = uuid.NewString()
			}
		}
	}
	return out
}

func notFound(kind, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, key)
	}
	return fmt.Errorf("find %s %q: %w", kind, key, err)
}
