package services

// LineItem is one material row inside a BOM category. Description, unit and
// cost are snapshots taken from the catalog when the material was selected;
// later catalog edits never reach an existing BOM.
type LineItem struct {
	ID             string  `json:"_id"`
	Item           string  `json:"item"`
	MaterialID     string  `json:"materialId,omitempty"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	Cost           float64 `json:"cost"`
	Quantity       float64 `json:"quantity"`
	TotalAmount    float64 `json:"totalAmount"`
	Specifications string  `json:"specifications,omitempty"`
	Supplier       string  `json:"supplier,omitempty"`
	Brand          string  `json:"brand,omitempty"`
}

// Category groups line items (masonry, electrical, ...). Materials keep their
// insertion order so item numbering stays stable.
type Category struct {
	Category      string     `json:"category"`
	Materials     []LineItem `json:"materials"`
	CategoryTotal float64    `json:"categoryTotal"`
}

// Location carries the markup percentage applied on top of the base cost.
type Location struct {
	Name   string  `json:"name"`
	Markup float64 `json:"markup"`
}

// TemplateRef identifies the template a BOM was generated from.
type TemplateRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tier  string `json:"tier,omitempty"`
}

// ProjectDetails is the snapshot of the generation inputs. It is never
// changed by editor operations.
type ProjectDetails struct {
	TotalArea       float64     `json:"totalArea"`
	NumFloors       int         `json:"numFloors"`
	AvgFloorHeight  float64     `json:"avgFloorHeight"`
	RoomCount       int         `json:"roomCount"`
	FoundationDepth float64     `json:"foundationDepth"`
	Location        Location    `json:"location"`
	Template        TemplateRef `json:"template"`
}

type Costs struct {
	LaborCost        float64 `json:"laborCost"`
	TotalProjectCost float64 `json:"totalProjectCost"`
}

// BOM is a bill of materials document. All derived fields (totalAmount,
// categoryTotal, totalProjectCost) are owned by Recompute.
type BOM struct {
	ProjectDetails ProjectDetails `json:"projectDetails"`
	Categories     []Category     `json:"categories"`
	OriginalCosts  Costs          `json:"originalCosts"`
	MarkedUpCosts  Costs          `json:"markedUpCosts"`
}

// Clone returns a deep copy so callers can mutate the result without
// touching the receiver.
func (b BOM) Clone() BOM {
	out := b
	if b.Categories == nil {
		return out
	}
	out.Categories = make([]Category, len(b.Categories))
	for i, c := range b.Categories {
		out.Categories[i] = c
		if c.Materials != nil {
			out.Categories[i].Materials = append([]LineItem(nil), c.Materials...)
		}
	}
	return out
}

// MaterialsCost is the project cost without labor, i.e. the sum of all
// category totals.
func (b BOM) MaterialsCost() float64 {
	return Round2(b.OriginalCosts.TotalProjectCost - b.OriginalCosts.LaborCost)
}

// MarkupAmount is the surcharge added by the location markup.
func (b BOM) MarkupAmount() float64 {
	return Round2(b.MarkedUpCosts.TotalProjectCost - b.OriginalCosts.TotalProjectCost)
}

// findLine locates a line item by its stable _id.
func (b BOM) findLine(id string) (ci, mi int, ok bool) {
	if id == "" {
		return 0, 0, false
	}
	for ci, c := range b.Categories {
		for mi, m := range c.Materials {
			if m.ID == id {
				return ci, mi, true
			}
		}
	}
	return 0, 0, false
}

func (b BOM) itemIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, c := range b.Categories {
		for _, m := range c.Materials {
			ids[m.Item] = true
		}
	}
	return ids
}
