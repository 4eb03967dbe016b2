package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"bomestimator/collections"
	"bomestimator/handlers"
)

func main() {
	app := pocketbase.New()

	var seed bool
	app.RootCmd.PersistentFlags().BoolVar(&seed, "seed", true, "seed reference data and a sample project on startup")

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "recompute-boms",
		Short: "Recompute the totals of every stored BOM",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			updated, err := collections.RecomputeStoredBOMs(app)
			if err != nil {
				return err
			}
			fmt.Printf("Recomputed %d BOM(s)\n", updated)
			return nil
		},
	})

	// Create collections, seed data and repair stored BOMs on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if seed {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if _, err := collections.RecomputeStoredBOMs(app); err != nil {
			log.Printf("Warning: BOM recompute failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		project := handlers.ProjectMiddleware(app)

		// ── Materials catalog ────────────────────────────────────
		se.Router.GET("/api/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/materials", handlers.HandleMaterialCreate(app))
		se.Router.GET("/api/materials/{id}", handlers.HandleMaterialGet(app))
		se.Router.PATCH("/api/materials/{id}", handlers.HandleMaterialUpdate(app))
		se.Router.DELETE("/api/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Dropdowns (brands, specifications, suppliers) ────────
		se.Router.GET("/api/dropdowns/{kind}", handlers.HandleDropdownList(app))
		se.Router.POST("/api/dropdowns/{kind}", handlers.HandleDropdownCreate(app))
		se.Router.PUT("/api/dropdowns/{kind}/{id}", handlers.HandleDropdownUpdate(app))
		se.Router.DELETE("/api/dropdowns/{kind}/{id}", handlers.HandleDropdownDelete(app))

		// ── Reference data ───────────────────────────────────────
		se.Router.GET("/api/locations", handlers.HandleLocationList(app))
		se.Router.GET("/api/templates", handlers.HandleTemplateList(app))
		se.Router.GET("/api/units", handlers.HandleUnitList())

		// ── BOM operations (stateless, BOM travels in the body) ──
		se.Router.POST("/api/bom/generate", handlers.HandleBOMGenerate(app))
		se.Router.POST("/api/bom/recompute", handlers.HandleBOMRecompute(app))
		se.Router.POST("/api/bom/replace-material", handlers.HandleBOMReplaceMaterial(app))
		se.Router.POST("/api/bom/add-material", handlers.HandleBOMAddMaterial(app))
		se.Router.POST("/api/bom/add-quantity", handlers.HandleBOMAddQuantity(app))

		// ── Project-scoped BOM ───────────────────────────────────
		se.Router.POST("/api/projects/{id}/boms", handlers.HandleProjectBOMSave(app)).BindFunc(project)
		se.Router.GET("/api/projects/{id}/bom", handlers.HandleProjectBOMGet(app)).BindFunc(project)

		se.Router.GET("/projects/{id}/bom/export/pdf", handlers.HandleBOMExportPDF(app)).BindFunc(project)
		se.Router.GET("/projects/{id}/bom/export/excel", handlers.HandleBOMExportExcel(app)).BindFunc(project)
		se.Router.GET("/projects/{id}/bom", handlers.HandleBOMView(app)).BindFunc(project)

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/_/")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
