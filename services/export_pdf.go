package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfBannerBg = &props.Color{Red: 213, Green: 164, Blue: 153}
	pdfHeaderBg = &props.Color{Red: 41, Green: 128, Blue: 185}
	pdfBodyText = &props.Color{Red: 44, Green: 62, Blue: 80}
	pdfMutedBg  = &props.Color{Red: 240, Green: 240, Blue: 240}
)

// GeneratePDF renders a BOM export using maroto/v2 and returns the raw PDF
// bytes. The contractor version carries the cost breakdown and category
// totals; the client version only shows the grand total.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)

	if data.Version == ContractorVersion {
		addCostBreakdown(m, data)
	} else {
		m.AddRows(row.New(9).Add(
			col.New(12).Add(text.New("Grand Total: "+FormatPHP(data.GrandTotal), props.Text{
				Size:  11,
				Style: fontstyle.Bold,
			})),
		))
		m.AddRows(row.New(4))
	}

	for _, c := range data.Categories {
		addCategoryTable(m, c, data.Version == ContractorVersion)
	}

	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addHeader adds the banner and the project details block.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(2),
			col.New(8).Add(
				text.New(data.Title, props.Text{Size: 12, Align: align.Center, Top: 2}),
			).WithStyle(&props.Cell{BackgroundColor: pdfBannerBg}),
			col.New(2),
		),
	)
	m.AddRows(row.New(4))

	detail := props.Text{Size: 10, Style: fontstyle.Bold}
	right := detail
	right.Align = align.Right

	m.AddRows(row.New(6).Add(
		col.New(8).Add(text.New("Project Title: "+data.ProjectName, detail)),
		col.New(4).Add(text.New(fmt.Sprintf("Area = %s sqm", trimFloat(data.TotalArea)), right)),
	))
	if data.ProjectOwner != "" {
		m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New("Project Owner: "+data.ProjectOwner, detail)),
		))
	}
	m.AddRows(row.New(6).Add(
		col.New(8).Add(text.New("Project Location: "+data.LocationName, detail)),
		col.New(4).Add(text.New(fmt.Sprintf("Floors: %d", data.NumFloors), right)),
	))
	if data.TemplateTitle != "" {
		m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New("Template: "+data.TemplateTitle, detail)),
		))
	}
	m.AddRows(row.New(6))
}

// addCostBreakdown adds the contractor cost table: labor, materials,
// subtotal, markup and grand total.
func addCostBreakdown(m core.Maroto, data ExportData) {
	m.AddRows(row.New(8).Add(
		col.New(12).Add(text.New("DESIGN ENGINEER COST BREAKDOWN", props.Text{Size: 13, Style: fontstyle.Bold})),
	))

	head := props.Text{Size: 9, Style: fontstyle.Bold, Color: &props.Color{Red: 255, Green: 255, Blue: 255}, Top: 1.5}
	headRight := head
	headRight.Align = align.Right
	headCell := &props.Cell{BackgroundColor: pdfHeaderBg}
	m.AddRows(row.New(7).Add(
		col.New(8).Add(text.New("DESCRIPTION", head)).WithStyle(headCell),
		col.New(4).Add(text.New("AMOUNT (PHP)", headRight)).WithStyle(headCell),
	))

	lines := []struct {
		label  string
		amount string
		strong bool
	}{
		{"1. LABOR COST", FormatPHP(data.LaborCost), false},
		{"2. MATERIALS COST", FormatPHP(data.MaterialsCost), false},
		{"SUBTOTAL", FormatPHP(data.Subtotal), true},
		{fmt.Sprintf("MARKUP (%s%% - %s)", trimFloat(data.MarkupPercent), data.LocationName), "", true},
		{"Markup Amount", FormatPHP(data.MarkupAmount), false},
		{"Labor Cost (with markup)", FormatPHP(data.MarkedUpLaborCost), false},
		{"GRAND TOTAL", FormatPHP(data.GrandTotal), true},
	}
	for _, l := range lines {
		label := props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}
		value := props.Text{Size: 9, Align: align.Right, Top: 1}
		var cell *props.Cell
		if l.strong {
			value.Style = fontstyle.Bold
			cell = &props.Cell{BackgroundColor: pdfMutedBg}
		}
		labelCol := col.New(8).Add(text.New(l.label, label))
		valueCol := col.New(4).Add(text.New(l.amount, value))
		if cell != nil {
			labelCol = labelCol.WithStyle(cell)
			valueCol = valueCol.WithStyle(cell)
		}
		m.AddRows(row.New(6).Add(labelCol, valueCol))
	}
	m.AddRows(row.New(8))
}

// addCategoryTable adds the heading, material rows and, optionally, the
// category total.
func addCategoryTable(m core.Maroto, c ExportCategory, withTotal bool) {
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(strings.ToUpper(c.Name), props.Text{Size: 10, Style: fontstyle.Bold})),
	))

	head := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Top:   1.5,
	}
	headLeft := head
	headLeft.Align = align.Left
	headCell := &props.Cell{BackgroundColor: pdfHeaderBg}

	m.AddRows(row.New(7).Add(
		col.New(1).Add(text.New("Item", head)).WithStyle(headCell),
		col.New(4).Add(text.New("Description", headLeft)).WithStyle(headCell),
		col.New(1).Add(text.New("Quantity", head)).WithStyle(headCell),
		col.New(2).Add(text.New("Unit", head)).WithStyle(headCell),
		col.New(2).Add(text.New("Unit Cost (PHP)", head)).WithStyle(headCell),
		col.New(2).Add(text.New("Total Amount (PHP)", head)).WithStyle(headCell),
	))

	base := props.Text{Size: 8, Align: align.Center, Color: pdfBodyText, Top: 1}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	for i, r := range c.Rows {
		var cell *props.Cell
		if i%2 == 1 {
			cell = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		}
		cols := []core.Col{
			col.New(1).Add(text.New(r.Item, base)),
			col.New(4).Add(text.New(r.Description, left)),
			col.New(1).Add(text.New(FormatQuantity(r.Qty), base)),
			col.New(2).Add(text.New(r.Unit, base)),
			col.New(2).Add(text.New(FormatPHP(r.UnitCost), right)),
			col.New(2).Add(text.New(FormatPHP(r.Total), right)),
		}
		if cell != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cell)
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}

	if withTotal {
		bold := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Top: 1}
		total := &props.Cell{BackgroundColor: pdfMutedBg}
		m.AddRows(row.New(6).Add(
			col.New(10).Add(text.New("Category Total", bold)).WithStyle(total),
			col.New(2).Add(text.New(FormatPHP(c.Total), bold)).WithStyle(total),
		))
	}
	m.AddRows(row.New(4))
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// trimFloat prints v without trailing zeros (12.5, 120).
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
