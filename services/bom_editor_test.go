package services

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func recomputed(t *testing.T, b BOM) BOM {
	t.Helper()
	out, err := Recompute(b)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	return out
}

func TestAddQuantity_ScenarioB(t *testing.T) {
	b := sampleBOM()
	b.Categories[0].Materials[0].Quantity = 1
	b = recomputed(t, b)

	got, err := AddQuantity(b, "line-1", 2.5)
	if err != nil {
		t.Fatalf("AddQuantity: %v", err)
	}

	line := got.Categories[0].Materials[0]
	if line.Quantity != 3.5 {
		t.Errorf("quantity = %v, want 3.5", line.Quantity)
	}
	if line.TotalAmount != 350 {
		t.Errorf("totalAmount = %v, want 350", line.TotalAmount)
	}
	// 350 + 150 = 500; 500 + 1000 labor = 1500; 1500 * 1.1 = 1650
	if got.Categories[0].CategoryTotal != 500 {
		t.Errorf("categoryTotal = %v, want 500", got.Categories[0].CategoryTotal)
	}
	if got.OriginalCosts.TotalProjectCost != 1500 || got.MarkedUpCosts.TotalProjectCost != 1650 {
		t.Errorf("totals = %v / %v, want 1500 / 1650",
			got.OriginalCosts.TotalProjectCost, got.MarkedUpCosts.TotalProjectCost)
	}
}

func TestAddQuantity_InvalidDelta(t *testing.T) {
	for _, delta := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		b := recomputed(t, sampleBOM())
		before := b.Clone()

		_, err := AddQuantity(b, "line-1", delta)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("delta %v: expected ErrValidation, got %v", delta, err)
		}
		if !reflect.DeepEqual(b, before) {
			t.Errorf("delta %v: input BOM was modified", delta)
		}
	}
}

func TestAddQuantity_UnknownLine(t *testing.T) {
	_, err := AddQuantity(sampleBOM(), "missing", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceMaterial_ScenarioC(t *testing.T) {
	b := sampleBOM()
	b.Categories[0].Materials[0].Quantity = 4
	b = recomputed(t, b)
	before := b.Clone()

	got, err := ReplaceMaterial(b, "line-1", CatalogMaterial{
		ID: "mat-9", Description: "Premium cement", Unit: "bags", Cost: 25,
	})
	if err != nil {
		t.Fatalf("ReplaceMaterial: %v", err)
	}

	line := got.Categories[0].Materials[0]
	if line.TotalAmount != 100 {
		t.Errorf("totalAmount = %v, want 100", line.TotalAmount)
	}
	if line.Quantity != 4 {
		t.Errorf("quantity = %v, want 4", line.Quantity)
	}
	if line.Description != "Premium cement" || line.MaterialID != "mat-9" || line.ID != "line-1" {
		t.Errorf("unexpected line after replace: %+v", line)
	}
	if !reflect.DeepEqual(got.Categories[0].Materials[1], before.Categories[0].Materials[1]) {
		t.Error("sibling material changed")
	}
	if !reflect.DeepEqual(got.Categories[1], before.Categories[1]) {
		t.Error("unrelated category changed")
	}
	if !reflect.DeepEqual(b, before) {
		t.Error("input BOM was modified")
	}
}

func TestReplaceMaterial_Errors(t *testing.T) {
	valid := CatalogMaterial{Description: "Gravel", Unit: "cu.m", Cost: 900}

	tests := []struct {
		name   string
		bom    BOM
		lineID string
		m      CatalogMaterial
		want   error
	}{
		{"unknown line", sampleBOM(), "missing", valid, ErrNotFound},
		{"empty line id", sampleBOM(), "", valid, ErrNotFound},
		{"negative cost", sampleBOM(), "line-1", CatalogMaterial{Description: "x", Unit: "pcs", Cost: -1}, ErrValidation},
		{"missing description", sampleBOM(), "line-1", CatalogMaterial{Unit: "pcs", Cost: 1}, ErrValidation},
		{"nil categories", BOM{}, "line-1", valid, ErrInvalidBOM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReplaceMaterial(tt.bom, tt.lineID, tt.m); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAddMaterial_ScenarioD(t *testing.T) {
	b := recomputed(t, sampleBOM())

	got, err := AddMaterial(b, CatalogMaterial{ID: "mat-3", Description: "Rebar 10mm", Unit: "length", Cost: 75}, 0)
	if err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}

	mats := got.Categories[0].Materials
	if len(mats) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(mats))
	}
	added := mats[2]
	if added.Quantity != 1 || added.TotalAmount != 75 {
		t.Errorf("added line = %+v, want quantity 1 and totalAmount 75", added)
	}
	if !strings.HasPrefix(added.Item, "Item-") {
		t.Errorf("item id = %q, want Item- prefix", added.Item)
	}
	if added.ID == "" {
		t.Error("added line has no _id")
	}
	for _, m := range mats[:2] {
		if m.Item == added.Item || m.ID == added.ID {
			t.Errorf("new identifiers collide with %+v", m)
		}
	}
	if got.Categories[0].CategoryTotal != 425 {
		t.Errorf("categoryTotal = %v, want 425", got.Categories[0].CategoryTotal)
	}
	if len(b.Categories[0].Materials) != 2 {
		t.Error("input BOM was modified")
	}
}

func TestAddMaterial_UniqueItemIDs(t *testing.T) {
	b := recomputed(t, sampleBOM())
	m := CatalogMaterial{Description: "Nails", Unit: "kg", Cost: 80}

	var err error
	for i := 0; i < 20; i++ {
		b, err = AddMaterial(b, m, 1)
		if err != nil {
			t.Fatalf("AddMaterial: %v", err)
		}
	}

	seen := map[string]bool{}
	for _, c := range b.Categories {
		for _, line := range c.Materials {
			if seen[line.Item] {
				t.Fatalf("duplicate item id %q", line.Item)
			}
			seen[line.Item] = true
		}
	}
}

func TestAddMaterial_Errors(t *testing.T) {
	valid := CatalogMaterial{Description: "Nails", Unit: "kg", Cost: 80}

	tests := []struct {
		name  string
		bom   BOM
		m     CatalogMaterial
		index int
		want  error
	}{
		{"negative index", sampleBOM(), valid, -1, ErrIndex},
		{"index past end", sampleBOM(), valid, 2, ErrIndex},
		{"no categories", BOM{Categories: []Category{}}, valid, 0, ErrIndex},
		{"missing unit", sampleBOM(), CatalogMaterial{Description: "x", Cost: 1}, 0, ErrValidation},
		{"NaN cost", sampleBOM(), CatalogMaterial{Description: "x", Unit: "pcs", Cost: math.NaN()}, 0, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AddMaterial(tt.bom, tt.m, tt.index); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
