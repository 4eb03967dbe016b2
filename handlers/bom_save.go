package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// projectID prefers the record loaded by ProjectMiddleware.
func projectID(e *core.RequestEvent) string {
	if p := GetProject(e.Request); p != nil {
		return p.Id
	}
	return e.Request.PathValue("id")
}

// HandleProjectBOMSave handles POST /api/projects/{id}/boms. The BOM is
// recomputed before it is stored, so totals sent by the client are never
// trusted.
func HandleProjectBOMSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := projectID(e)
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing project ID")
		}

		req, err := bindBOMRequest(e)
		if err != nil {
			return respondError(e, "bom_save", err)
		}

		saved, err := services.SaveProjectBOM(app, id, *req.BOM)
		if err != nil {
			return respondError(e, "bom_save", err)
		}
		return e.JSON(http.StatusOK, map[string]any{
			"message": "BOM saved successfully",
			"bom":     saved,
		})
	}
}

// HandleProjectBOMGet handles GET /api/projects/{id}/bom.
func HandleProjectBOMGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := projectID(e)
		if id == "" {
			return jsonError(e, http.StatusBadRequest, "Missing project ID")
		}

		bom, err := services.LoadProjectBOM(app, id)
		if err != nil {
			return respondError(e, "bom_get", err)
		}
		return respondBOM(e, bom)
	}
}
