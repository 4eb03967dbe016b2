package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ProjectKey contextKey = "project"

// GetProject extracts the project loaded by ProjectMiddleware.
func GetProject(r *http.Request) *core.Record {
	if val, ok := r.Context().Value(ProjectKey).(*core.Record); ok {
		return val
	}
	return nil
}

// ProjectMiddleware loads the project named by the {id} path value and
// stores it in the request context. Unknown projects end the request with
// 404.
func ProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return jsonError(e, http.StatusBadRequest, "Missing project ID")
		}

		rec, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("middleware: project %s not found: %v", projectID, err)
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		ctx := context.WithValue(e.Request.Context(), ProjectKey, rec)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}
