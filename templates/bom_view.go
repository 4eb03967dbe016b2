// Package templates holds the server-rendered HTML components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"bomestimator/services"
)

// BOMViewData is everything the read-only BOM page needs.
type BOMViewData struct {
	ProjectID     string
	ProjectName   string
	ProjectOwner  string
	ProjectStatus string
	HasBOM        bool
	Export        services.ExportData
}

// BOMViewPage renders a complete HTML document around BOMViewContent.
func BOMViewPage(data BOMViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.printf(`<title>%s - Bill of Materials</title>`, esc(data.ProjectName))
		p.printf(`<link rel="stylesheet" href="/static/css/output.css">`)
		p.printf(`</head><body class="bom-page">`)
		if p.err != nil {
			return p.err
		}
		if err := BOMViewContent(data).Render(ctx, w); err != nil {
			return err
		}
		p.printf(`</body></html>`)
		return p.err
	})
}

// BOMViewContent renders the project header, the category tables and the
// cost summary. It is also returned on its own for HTMX requests.
func BOMViewContent(data BOMViewData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<main id="main-content" class="bom-view">`)
		p.printf(`<header class="bom-header"><h1>%s</h1>`, esc(data.ProjectName))
		p.printf(`<p class="bom-owner">Owner: %s</p>`, esc(data.ProjectOwner))
		p.printf(`<span class="badge badge-status">%s</span></header>`, esc(data.ProjectStatus))

		if !data.HasBOM {
			p.printf(`<p class="empty-state">No bill of materials has been generated for this project yet.</p>`)
			p.printf(`</main>`)
			return p.err
		}

		d := data.Export
		p.printf(`<nav class="bom-actions">`)
		p.printf(`<a href="/projects/%s/bom/export/pdf?version=client">Client PDF</a>`, esc(data.ProjectID))
		p.printf(`<a href="/projects/%s/bom/export/pdf?version=contractor">Contractor PDF</a>`, esc(data.ProjectID))
		p.printf(`<a href="/projects/%s/bom/export/excel?version=contractor">Excel</a>`, esc(data.ProjectID))
		p.printf(`</nav>`)

		p.printf(`<section class="bom-details"><dl>`)
		p.detail("Template", d.TemplateTitle)
		p.detail("Location", d.LocationName)
		p.detail("Total Area", fmt.Sprintf("%g sqm", d.TotalArea))
		p.detail("Floors", fmt.Sprintf("%d", d.NumFloors))
		p.detail("Avg Floor Height", fmt.Sprintf("%g m", d.AvgFloorHeight))
		p.detail("Rooms", fmt.Sprintf("%d", d.RoomCount))
		p.detail("Foundation Depth", fmt.Sprintf("%g m", d.FoundationDepth))
		p.printf(`</dl></section>`)

		for _, c := range d.Categories {
			p.printf(`<section class="bom-category"><h2>%s</h2>`, esc(c.Name))
			p.printf(`<table><thead><tr><th>Item</th><th>Description</th><th>Quantity</th><th>Unit</th><th>Unit Cost</th><th>Total</th></tr></thead><tbody>`)
			for _, r := range c.Rows {
				p.printf(`<tr><td>%s</td><td>%s</td><td class="num">%s</td><td>%s</td><td class="num">%s</td><td class="num">%s</td></tr>`,
					esc(r.Item), esc(r.Description), esc(services.FormatQuantity(r.Qty)), esc(r.Unit),
					esc(services.FormatPHP(r.UnitCost)), esc(services.FormatPHP(r.Total)))
			}
			p.printf(`</tbody><tfoot><tr><td colspan="5">Category Total</td><td class="num">%s</td></tr></tfoot></table></section>`,
				esc(services.FormatPHP(c.Total)))
		}

		p.printf(`<section class="bom-summary"><h2>Cost Summary</h2><dl>`)
		p.detail("Labor Cost", services.FormatPHP(d.LaborCost))
		p.detail("Materials Cost", services.FormatPHP(d.MaterialsCost))
		p.detail("Subtotal", services.FormatPHP(d.Subtotal))
		p.detail(fmt.Sprintf("Markup (%g%%)", d.MarkupPercent), services.FormatPHP(d.MarkupAmount))
		p.detail("Grand Total", services.FormatPHP(d.GrandTotal))
		p.printf(`</dl></section></main>`)
		return p.err
	})
}

// printer keeps the first write error so the components can write without
// checking every call.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) detail(label, value string) {
	p.printf(`<dt>%s</dt><dd>%s</dd>`, esc(label), esc(value))
}

func esc(s string) string {
	return templ.EscapeString(s)
}
