package services

import (
	"fmt"
	"strings"
)

// ExportVersion selects which audience a BOM export is prepared for.
type ExportVersion string

const (
	// ClientVersion shows the marked-up grand total and the material tables.
	ClientVersion ExportVersion = "client"
	// ContractorVersion adds the labor/materials/markup breakdown and
	// per-category totals.
	ContractorVersion ExportVersion = "contractor"
)

// ParseExportVersion maps a query value to an ExportVersion. Empty means
// client.
func ParseExportVersion(s string) (ExportVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ClientVersion):
		return ClientVersion, nil
	case string(ContractorVersion):
		return ContractorVersion, nil
	}
	return "", fmt.Errorf("%w: unknown export version %q", ErrValidation, s)
}

// ExportRow is a single material row (e.g. "2.3").
type ExportRow struct {
	Item        string
	Description string
	Qty         float64 // raw quantity; renderers display it rounded up
	Unit        string
	UnitCost    float64
	Total       float64
}

// ExportCategory is one category table.
type ExportCategory struct {
	Name  string
	Rows  []ExportRow
	Total float64
}

// ExportData holds all data needed for a BOM export.
type ExportData struct {
	Title        string
	ProjectName  string
	ProjectOwner string
	CreatedDate  string
	Version      ExportVersion

	TotalArea       float64
	NumFloors       int
	AvgFloorHeight  float64
	RoomCount       int
	FoundationDepth float64
	LocationName    string
	TemplateTitle   string

	Categories []ExportCategory

	LaborCost         float64
	MarkedUpLaborCost float64
	MaterialsCost     float64
	Subtotal          float64
	MarkupPercent     float64
	MarkupAmount      float64
	GrandTotal        float64
}

// BuildExportData flattens a BOM into the rows and totals shared by the
// PDF and Excel exports. Item numbers are positional ("category.material").
func BuildExportData(projectName, owner string, b BOM, version ExportVersion, createdDate string) ExportData {
	data := ExportData{
		Title:        "BILL OF MATERIALS",
		ProjectName:  projectName,
		ProjectOwner: owner,
		CreatedDate:  createdDate,
		Version:      version,

		TotalArea:       b.ProjectDetails.TotalArea,
		NumFloors:       b.ProjectDetails.NumFloors,
		AvgFloorHeight:  b.ProjectDetails.AvgFloorHeight,
		RoomCount:       b.ProjectDetails.RoomCount,
		FoundationDepth: b.ProjectDetails.FoundationDepth,
		LocationName:    b.ProjectDetails.Location.Name,
		TemplateTitle:   b.ProjectDetails.Template.Title,

		LaborCost:         Round2(b.OriginalCosts.LaborCost),
		MarkedUpLaborCost: Round2(b.MarkedUpCosts.LaborCost),
		MaterialsCost:     b.MaterialsCost(),
		Subtotal:          Round2(b.OriginalCosts.TotalProjectCost),
		MarkupPercent:     b.ProjectDetails.Location.Markup,
		MarkupAmount:      b.MarkupAmount(),
		GrandTotal:        Round2(b.MarkedUpCosts.TotalProjectCost),
	}
	if data.ProjectName == "" {
		data.ProjectName = "Custom"
	}

	for ci, c := range b.Categories {
		ec := ExportCategory{Name: c.Category, Total: Round2(c.CategoryTotal)}
		for mi, m := range c.Materials {
			ec.Rows = append(ec.Rows, ExportRow{
				Item:        fmt.Sprintf("%d.%d", ci+1, mi+1),
				Description: m.Description,
				Qty:         m.Quantity,
				Unit:        m.Unit,
				UnitCost:    m.Cost,
				Total:       Round2(m.TotalAmount),
			})
		}
		data.Categories = append(data.Categories, ec)
	}
	return data
}
