package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// buildExportData loads the project's stored BOM and flattens it for export.
func buildExportData(app *pocketbase.PocketBase, projectID string, version services.ExportVersion) (services.ExportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("%w: project %q", services.ErrNotFound, projectID)
	}

	bom, err := services.ProjectBOM(project)
	if err != nil {
		return services.ExportData{}, err
	}

	createdDate := time.Now().Format("02 Jan 2006")
	if dt := project.GetDateTime("updated"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.BuildExportData(
		project.GetString("name"),
		project.GetString("owner"),
		bom,
		version,
		createdDate,
	), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// HandleBOMExportExcel returns a handler that generates and downloads an
// Excel file for a project's BOM.
func HandleBOMExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := projectID(e)
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		version, err := services.ParseExportVersion(e.Request.URL.Query().Get("version"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Unknown export version")
		}

		data, err := buildExportData(app, id, version)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(statusFor(err), "BOM not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("BOM_%s_%s.xlsx", sanitizeFilename(data.ProjectName), version)

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleBOMExportPDF returns a handler that generates and downloads a PDF
// file for a project's BOM. ?version=contractor adds the cost breakdown.
func HandleBOMExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := projectID(e)
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		version, err := services.ParseExportVersion(e.Request.URL.Query().Get("version"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Unknown export version")
		}

		data, err := buildExportData(app, id, version)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(statusFor(err), "BOM not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("BOM_%s_%s.pdf", sanitizeFilename(data.ProjectName), version)

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
