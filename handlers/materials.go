package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// materialPatch carries the fields of a PATCH body; nil means unchanged.
type materialPatch struct {
	Description    *string  `json:"description"`
	Unit           *string  `json:"unit"`
	Cost           *float64 `json:"cost"`
	Specifications *string  `json:"specifications"`
	Supplier       *string  `json:"supplier"`
	Brand          *string  `json:"brand"`
}

func (p materialPatch) apply(m services.CatalogMaterial) services.CatalogMaterial {
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.Cost != nil {
		m.Cost = *p.Cost
	}
	if p.Specifications != nil {
		m.Specifications = *p.Specifications
	}
	if p.Supplier != nil {
		m.Supplier = *p.Supplier
	}
	if p.Brand != nil {
		m.Brand = *p.Brand
	}
	return m
}

func setMaterialFields(record *core.Record, m services.CatalogMaterial) {
	record.Set("description", m.Description)
	record.Set("unit", m.Unit)
	record.Set("cost", m.Cost)
	record.Set("specifications", m.Specifications)
	record.Set("supplier", m.Supplier)
	record.Set("brand", m.Brand)
}

func validateMaterial(m services.CatalogMaterial) error {
	if err := m.ValidateForCatalog(); err != nil {
		return fmt.Errorf("%w: %w", services.ErrValidation, err)
	}
	return nil
}

// HandleMaterialList handles GET /api/materials. The optional search
// parameter matches description, brand, supplier and specifications.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if q := strings.TrimSpace(e.Request.URL.Query().Get("search")); q != "" {
			filter = "description ~ {:q} || brand ~ {:q} || supplier ~ {:q} || specifications ~ {:q}"
			params["q"] = q
		}

		records, err := app.FindRecordsByFilter("materials", filter, "-created", 0, 0, params)
		if err != nil {
			return respondError(e, "material_list", err)
		}

		materials := make([]services.CatalogMaterial, 0, len(records))
		for _, rec := range records {
			materials = append(materials, services.MaterialFromRecord(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"materials": materials})
	}
}

// HandleMaterialGet handles GET /api/materials/{id}.
func HandleMaterialGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("materials", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Material not found")
		}
		return e.JSON(http.StatusOK, map[string]any{"material": services.MaterialFromRecord(record)})
	}
}

// HandleMaterialCreate handles POST /api/materials.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var m services.CatalogMaterial
		if err := e.BindBody(&m); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}
		m = m.Normalize()
		if err := validateMaterial(m); err != nil {
			return respondError(e, "material_create", err)
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			return respondError(e, "material_create", err)
		}
		record := core.NewRecord(col)
		setMaterialFields(record, m)
		if err := app.Save(record); err != nil {
			return respondError(e, "material_create", err)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"message":  "Material created successfully",
			"material": services.MaterialFromRecord(record),
		})
	}
}

// HandleMaterialUpdate handles PATCH /api/materials/{id}. Edits never reach
// BOMs that already hold a snapshot of the material.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("materials", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Material not found")
		}

		var patch materialPatch
		if err := e.BindBody(&patch); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		m := patch.apply(services.MaterialFromRecord(record)).Normalize()
		if err := validateMaterial(m); err != nil {
			return respondError(e, "material_update", err)
		}

		setMaterialFields(record, m)
		if err := app.Save(record); err != nil {
			return respondError(e, "material_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"message":  "Material updated successfully",
			"material": services.MaterialFromRecord(record),
		})
	}
}

// HandleMaterialDelete handles DELETE /api/materials/{id}.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("materials", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Material not found")
		}
		if err := app.Delete(record); err != nil {
			return respondError(e, "material_delete", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"message": "Material deleted successfully"})
	}
}
