package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Built-in excelize number format "#,##0.00".
const moneyNumFmt = 4

// GenerateExcel creates a workbook with one sheet holding every category
// table followed by the cost summary, and returns the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetTitle(data.ProjectName)
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Columns: Item, Description, Quantity, Unit, Unit Cost, Total Amount.
	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{8, 44, 12, 12, 18, 20}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D5A499"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2980B9"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	textStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create text style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: moneyNumFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: moneyNumFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Header block.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	details := []string{"Project Title: " + data.ProjectName}
	if data.ProjectOwner != "" {
		details = append(details, "Project Owner: "+data.ProjectOwner)
	}
	details = append(details,
		fmt.Sprintf("Project Location: %s (Markup: %s%%)", data.LocationName, trimFloat(data.MarkupPercent)),
		fmt.Sprintf("Area: %s sqm, Floors: %d, Rooms: %d", trimFloat(data.TotalArea), data.NumFloors, data.RoomCount),
		"Date: "+data.CreatedDate,
	)
	row := 2
	for _, d := range details {
		r := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+r, lastCol+r); err != nil {
			return nil, fmt.Errorf("merge details: %w", err)
		}
		f.SetCellValue(sheetName, "A"+r, sanitizeExcelCell(d))
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, subtitleStyle)
		row++
	}
	row++

	headers := []string{"Item", "Description", "Quantity", "Unit", "Unit Cost (PHP)", "Total Amount (PHP)"}
	withTotals := data.Version == ContractorVersion

	for _, c := range data.Categories {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, sanitizeExcelCell(strings.ToUpper(c.Name)))
		f.SetCellStyle(sheetName, "A"+r, "A"+r, categoryStyle)
		row++

		r = fmt.Sprintf("%d", row)
		for i, h := range headers {
			f.SetCellValue(sheetName, columns[i]+r, h)
		}
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, headerStyle)
		row++

		for _, item := range c.Rows {
			r = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+r, item.Item)
			f.SetCellValue(sheetName, "B"+r, sanitizeExcelCell(item.Description))
			f.SetCellValue(sheetName, "C"+r, DisplayQuantity(item.Qty))
			f.SetCellValue(sheetName, "D"+r, sanitizeExcelCell(item.Unit))
			f.SetCellValue(sheetName, "E"+r, item.UnitCost)
			f.SetCellValue(sheetName, "F"+r, item.Total)
			f.SetCellStyle(sheetName, "A"+r, "D"+r, textStyle)
			f.SetCellStyle(sheetName, "E"+r, "F"+r, moneyStyle)
			row++
		}

		if withTotals {
			r = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "E"+r, "Category Total:")
			f.SetCellStyle(sheetName, "E"+r, "E"+r, summaryLabelStyle)
			f.SetCellValue(sheetName, "F"+r, c.Total)
			f.SetCellStyle(sheetName, "F"+r, "F"+r, summaryValueStyle)
			row++
		}
		row++
	}

	summary := []struct {
		label string
		value float64
	}{
		{"Grand Total:", data.GrandTotal},
	}
	if withTotals {
		summary = []struct {
			label string
			value float64
		}{
			{"Labor Cost:", data.LaborCost},
			{"Materials Cost:", data.MaterialsCost},
			{"Subtotal:", data.Subtotal},
			{fmt.Sprintf("Markup (%s%%):", trimFloat(data.MarkupPercent)), data.MarkupAmount},
			{"Grand Total:", data.GrandTotal},
		}
	}
	for _, s := range summary {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+r, s.label)
		f.SetCellStyle(sheetName, "E"+r, "E"+r, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+r, s.value)
		f.SetCellStyle(sheetName, "F"+r, "F"+r, summaryValueStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetTitle turns a project name into a valid sheet name: at most 31
// characters and none of : \ / ? * [ ].
func sheetTitle(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	name = strings.Trim(name, "'")
	if name == "" {
		return "BOM"
	}
	return name
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
