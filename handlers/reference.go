package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// HandleLocationList handles GET /api/locations.
func HandleLocationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindAllRecords("locations")
		if err != nil {
			return respondError(e, "location_list", err)
		}

		locations := make([]services.Location, 0, len(records))
		for _, rec := range records {
			locations = append(locations, services.LocationFromRecord(rec))
		}
		sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
		return e.JSON(http.StatusOK, map[string]any{"locations": locations})
	}
}

// HandleTemplateList handles GET /api/templates. Templates whose categories
// cannot be decoded are skipped and logged.
func HandleTemplateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindAllRecords("templates")
		if err != nil {
			return respondError(e, "template_list", err)
		}

		tpls := make([]services.Template, 0, len(records))
		for _, rec := range records {
			t, err := services.TemplateFromRecord(rec)
			if err != nil {
				log.Printf("template_list: %v", err)
				continue
			}
			tpls = append(tpls, t)
		}
		sort.Slice(tpls, func(i, j int) bool { return tpls[i].Title < tpls[j].Title })
		return e.JSON(http.StatusOK, map[string]any{"templates": tpls})
	}
}

// HandleUnitList handles GET /api/units.
func HandleUnitList() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{"units": services.UnitOptions})
	}
}
