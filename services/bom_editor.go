package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var itemSeq atomic.Uint64

// ReplaceMaterial swaps the catalog material behind the line item with the
// given _id. Description, cost and the catalog reference change; the
// quantity stays as it was.
func ReplaceMaterial(b BOM, lineID string, replacement CatalogMaterial) (BOM, error) {
	if err := checkStructure(b); err != nil {
		return BOM{}, err
	}
	if err := replacement.Validate(); err != nil {
		return BOM{}, fmt.Errorf("%w: replacement material: %w", ErrValidation, err)
	}

	ci, mi, ok := b.findLine(lineID)
	if !ok {
		return BOM{}, fmt.Errorf("%w: material %q is not part of this BOM", ErrNotFound, lineID)
	}

	out := b.Clone()
	line := &out.Categories[ci].Materials[mi]
	line.MaterialID = replacement.ID
	line.Description = replacement.Description
	line.Cost = replacement.Cost
	return Recompute(out)
}

// AddMaterial appends a catalog material with quantity 1 to the category at
// categoryIndex. The new line gets its own _id and an item number that does
// not collide with any other item in the BOM.
func AddMaterial(b BOM, material CatalogMaterial, categoryIndex int) (BOM, error) {
	if err := checkStructure(b); err != nil {
		return BOM{}, err
	}
	if err := material.Validate(); err != nil {
		return BOM{}, fmt.Errorf("%w: material: %w", ErrValidation, err)
	}
	if categoryIndex < 0 || categoryIndex >= len(b.Categories) {
		return BOM{}, fmt.Errorf("%w: %d (BOM has %d categories)", ErrIndex, categoryIndex, len(b.Categories))
	}

	out := b.Clone()
	cat := &out.Categories[categoryIndex]
	cat.Materials = append(cat.Materials, LineItem{
		ID:             uuid.NewString(),
		Item:           nextItemID(b),
		MaterialID:     material.ID,
		Description:    material.Description,
		Unit:           material.Unit,
		Cost:           material.Cost,
		Quantity:       1,
		TotalAmount:    material.Cost,
		Specifications: material.Specifications,
		Supplier:       material.Supplier,
		Brand:          material.Brand,
	})
	return Recompute(out)
}

// AddQuantity increases the quantity of the line item with the given _id by
// delta, which must be positive.
func AddQuantity(b BOM, lineID string, delta float64) (BOM, error) {
	if !isFinite(delta) || delta <= 0 {
		return BOM{}, fmt.Errorf("%w: quantity to add must be greater than 0, got %v", ErrValidation, delta)
	}
	if err := checkStructure(b); err != nil {
		return BOM{}, err
	}

	ci, mi, ok := b.findLine(lineID)
	if !ok {
		return BOM{}, fmt.Errorf("%w: material %q is not part of this BOM", ErrNotFound, lineID)
	}

	out := b.Clone()
	line := &out.Categories[ci].Materials[mi]
	line.Quantity += delta
	return Recompute(out)
}

// nextItemID returns an "Item-<unix millis>-<seq>" identifier unused in b.
func nextItemID(b BOM) string {
	taken := b.itemIDs()
	for {
		id := fmt.Sprintf("Item-%d-%d", time.Now().UnixMilli(), itemSeq.Add(1))
		if !taken[id] {
			return id
		}
	}
}
