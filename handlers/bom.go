package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// BOMRequest is the body of every endpoint that takes a BOM document.
// Materials can be given inline (newMaterial) or by catalog id
// (materialId); the catalog record wins when both are present.
type BOMRequest struct {
	BOM              *services.BOM             `json:"bom"`
	TargetMaterialID string                    `json:"targetMaterialId"`
	NewMaterial      *services.CatalogMaterial `json:"newMaterial"`
	MaterialID       string                    `json:"materialId"`
	CategoryIndex    *int                      `json:"categoryIndex"`
	Delta            *float64                  `json:"delta"`
}

func bindBOMRequest(e *core.RequestEvent) (BOMRequest, error) {
	var req BOMRequest
	if err := e.BindBody(&req); err != nil {
		return req, fmt.Errorf("%w: invalid request body", services.ErrValidation)
	}
	if req.BOM == nil {
		return req, fmt.Errorf("%w: bom is required", services.ErrValidation)
	}
	return req, nil
}

// material resolves the material a request refers to.
func (req BOMRequest) material(app *pocketbase.PocketBase) (services.CatalogMaterial, error) {
	if id := strings.TrimSpace(req.MaterialID); id != "" {
		rec, err := app.FindRecordById("materials", id)
		if err != nil {
			return services.CatalogMaterial{}, fmt.Errorf("%w: material %q", services.ErrNotFound, id)
		}
		return services.MaterialFromRecord(rec), nil
	}
	if req.NewMaterial == nil {
		return services.CatalogMaterial{}, fmt.Errorf("%w: newMaterial or materialId is required", services.ErrValidation)
	}
	return req.NewMaterial.Normalize(), nil
}

func respondBOM(e *core.RequestEvent, b services.BOM) error {
	return e.JSON(http.StatusOK, map[string]any{"bom": b})
}

// HandleBOMGenerate handles POST /api/bom/generate.
func HandleBOMGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	generator := services.NewRecordGenerator(app)
	return func(e *core.RequestEvent) error {
		var params services.GenerateParams
		if err := e.BindBody(&params); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid request body")
		}

		bom, err := generator.Generate(e.Request.Context(), params)
		if err != nil {
			return respondError(e, "bom_generate", err)
		}
		return respondBOM(e, bom)
	}
}

// HandleBOMRecompute handles POST /api/bom/recompute.
func HandleBOMRecompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := bindBOMRequest(e)
		if err != nil {
			return respondError(e, "bom_recompute", err)
		}

		bom, err := services.Recompute(*req.BOM)
		if err != nil {
			return respondError(e, "bom_recompute", err)
		}
		return respondBOM(e, bom)
	}
}

// HandleBOMReplaceMaterial handles POST /api/bom/replace-material.
func HandleBOMReplaceMaterial(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := bindBOMRequest(e)
		if err != nil {
			return respondError(e, "bom_replace", err)
		}
		m, err := req.material(app)
		if err != nil {
			return respondError(e, "bom_replace", err)
		}

		bom, err := services.ReplaceMaterial(*req.BOM, req.TargetMaterialID, m)
		if err != nil {
			return respondError(e, "bom_replace", err)
		}
		return respondBOM(e, bom)
	}
}

// HandleBOMAddMaterial handles POST /api/bom/add-material. The material
// goes into the first category unless categoryIndex is given.
func HandleBOMAddMaterial(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := bindBOMRequest(e)
		if err != nil {
			return respondError(e, "bom_add_material", err)
		}
		m, err := req.material(app)
		if err != nil {
			return respondError(e, "bom_add_material", err)
		}

		index := 0
		if req.CategoryIndex != nil {
			index = *req.CategoryIndex
		}

		bom, err := services.AddMaterial(*req.BOM, m, index)
		if err != nil {
			return respondError(e, "bom_add_material", err)
		}
		return respondBOM(e, bom)
	}
}

// HandleBOMAddQuantity handles POST /api/bom/add-quantity.
func HandleBOMAddQuantity(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := bindBOMRequest(e)
		if err != nil {
			return respondError(e, "bom_add_quantity", err)
		}
		if req.Delta == nil {
			return respondError(e, "bom_add_quantity", fmt.Errorf("%w: delta is required", services.ErrValidation))
		}

		bom, err := services.AddQuantity(*req.BOM, req.TargetMaterialID, *req.Delta)
		if err != nil {
			return respondError(e, "bom_add_quantity", err)
		}
		return respondBOM(e, bom)
	}
}
