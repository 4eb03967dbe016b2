package collections

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/pocketbase/pocketbase"

	"bomestimator/services"
)

// RecomputeStoredBOMs re-runs the aggregator over every BOM saved on a
// project and writes back the ones whose derived totals changed (documents
// saved with a different rounding rule, or lines without an _id). Safe to
// call on every startup -- returns early if nothing needs updating.
func RecomputeStoredBOMs(app *pocketbase.PocketBase) (int, error) {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return 0, fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return 0, fmt.Errorf("migrate: could not query projects: %w", err)
	}

	updated := 0
	for _, project := range projects {
		stored, err := services.ProjectBOM(project)
		if errors.Is(err, services.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("migrate: skipping project %s: %v\n", project.Id, err)
			continue
		}

		fresh, err := services.Recompute(services.WithLineIDs(stored))
		if err != nil {
			log.Printf("migrate: project %s has an invalid BOM: %v\n", project.Id, err)
			continue
		}
		if reflect.DeepEqual(stored, fresh) {
			continue
		}

		project.Set("bom", fresh)
		if err := app.Save(project); err != nil {
			log.Printf("migrate: failed to save recomputed BOM for project %s: %v\n", project.Id, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("migrate: recomputed %d stored BOM(s).\n", updated)
	}
	return updated, nil
}
