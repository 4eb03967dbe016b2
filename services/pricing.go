// Package services provides BOM generation, pricing and export functions.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Recompute rebuilds every derived figure of a BOM:
//
//	totalAmount   = cost * quantity (kept unrounded)
//	categoryTotal = round2(sum of totalAmount)
//	original      = round2(sum of categoryTotal + laborCost)
//	marked up     = round2(original * (1 + markup/100))
//
// Labor costs are taken as-is; markedUpCosts.laborCost is fixed at
// generation time. The input is never modified and calling Recompute on its
// own output yields the same document.
func Recompute(b BOM) (BOM, error) {
	if err := checkStructure(b); err != nil {
		return BOM{}, err
	}

	out := b.Clone()
	materials := decimal.Zero
	for ci := range out.Categories {
		cat := &out.Categories[ci]
		sum := decimal.Zero
		for mi := range cat.Materials {
			line := &cat.Materials[mi]
			line.TotalAmount = line.Cost * line.Quantity
			if !isFinite(line.TotalAmount) {
				return BOM{}, fmt.Errorf("%w: line %q in %q overflows", ErrInvalidBOM, line.Item, cat.Category)
			}
			sum = sum.Add(decimal.NewFromFloat(line.TotalAmount))
		}
		total := sum.Round(2)
		cat.CategoryTotal = total.InexactFloat64()
		materials = materials.Add(total)
	}

	original := materials.Add(decimal.NewFromFloat(out.OriginalCosts.LaborCost)).Round(2)
	markedUp := original.Mul(markupFactor(out.ProjectDetails.Location.Markup)).Round(2)

	out.OriginalCosts.TotalProjectCost = original.InexactFloat64()
	out.MarkedUpCosts.TotalProjectCost = markedUp.InexactFloat64()
	return out, nil
}

// checkStructure rejects documents the aggregator cannot price.
func checkStructure(b BOM) error {
	if b.Categories == nil {
		return fmt.Errorf("%w: categories are missing", ErrInvalidBOM)
	}
	if !isFinite(b.ProjectDetails.Location.Markup) {
		return fmt.Errorf("%w: markup is not a finite number", ErrInvalidBOM)
	}
	for _, labor := range []float64{b.OriginalCosts.LaborCost, b.MarkedUpCosts.LaborCost} {
		if !isFinite(labor) || labor < 0 {
			return fmt.Errorf("%w: labor cost %v", ErrInvalidBOM, labor)
		}
	}
	for _, cat := range b.Categories {
		for _, line := range cat.Materials {
			if !isFinite(line.Cost) || line.Cost < 0 {
				return fmt.Errorf("%w: line %q in %q has cost %v", ErrInvalidBOM, line.Item, cat.Category, line.Cost)
			}
			if !isFinite(line.Quantity) || line.Quantity < 0 {
				return fmt.Errorf("%w: line %q in %q has quantity %v", ErrInvalidBOM, line.Item, cat.Category, line.Quantity)
			}
		}
	}
	return nil
}
