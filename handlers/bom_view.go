package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
	"bomestimator/templates"
)

// HandleBOMView renders the read-only BOM page for a project. A project
// without a BOM gets an empty state rather than an error.
func HandleBOMView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record := GetProject(e.Request)
		if record == nil {
			projectID := e.Request.PathValue("id")
			if projectID == "" {
				return e.String(http.StatusBadRequest, "Missing project ID")
			}
			var err error
			record, err = app.FindRecordById("projects", projectID)
			if err != nil {
				log.Printf("bom_view: could not find project %s: %v", projectID, err)
				return e.String(http.StatusNotFound, "Project not found")
			}
		}

		data := templates.BOMViewData{
			ProjectID:     record.Id,
			ProjectName:   record.GetString("name"),
			ProjectOwner:  record.GetString("owner"),
			ProjectStatus: record.GetString("status"),
		}

		bom, err := services.ProjectBOM(record)
		switch {
		case err == nil:
			data.HasBOM = true
			data.Export = services.BuildExportData(data.ProjectName, data.ProjectOwner, bom, services.ContractorVersion, "")
		case errors.Is(err, services.ErrNotFound):
		default:
			log.Printf("bom_view: project %s: %v", record.Id, err)
			return e.String(statusFor(err), "Stored BOM could not be read")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BOMViewContent(data)
		} else {
			component = templates.BOMViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
