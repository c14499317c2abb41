package domain

import "time"

// PublicComponent is a catalog entry shared by every team. ID is the
// vendor part number or SKU and is supplied by the caller.
type PublicComponent struct {
	ID           string  `json:"id" bson:"_id"`
	Name         string  `json:"name" bson:"name"`
	Vendor       string  `json:"vendor" bson:"vendor"`
	Category     string  `json:"category" bson:"category"`
	Cost         float64 `json:"cost" bson:"cost"`
	Source       *string `json:"source" bson:"source,omitempty"`
	Description  *string `json:"description" bson:"description,omitempty"`
	ImageURL     *string `json:"image_url" bson:"image_url,omitempty"`
	CADFileURL   *string `json:"cad_file_url" bson:"cad_file_url,omitempty"`
	Availability *string `json:"availability" bson:"availability,omitempty"`
}

// PublicComponentPatch holds the fields of a partial catalog update. Nil
// fields are left untouched.
type PublicComponentPatch struct {
	Name        *string
	Vendor      *string
	Category    *string
	Cost        *float64
	Source      *string
	Description *string
}

// Empty reports whether the patch would change nothing.
func (p PublicComponentPatch) Empty() bool {
	return p.Name == nil && p.Vendor == nil && p.Category == nil &&
		p.Cost == nil && p.Source == nil && p.Description == nil
}

// CatalogFilter narrows a catalog search. Zero values disable a filter.
type CatalogFilter struct {
	Text     string
	Category string
	Vendor   string
	MaxCost  float64
}

// TeamComponent is a row of a team's private inventory. TeamID decides
// who may read or change it.
type TeamComponent struct {
	ID                int64     `json:"id" bson:"_id"`
	TeamID            string    `json:"team_id" bson:"team_id"`
	PublicComponentID *string   `json:"public_component_id" bson:"public_component_id,omitempty"`
	Name              string    `json:"name" bson:"name"`
	Vendor            string    `json:"vendor" bson:"vendor"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	Location          *string   `json:"location" bson:"location,omitempty"`
	Notes             *string   `json:"notes" bson:"notes,omitempty"`
	AddedBy           *string   `json:"added_by" bson:"added_by,omitempty"`
	LastUpdated       time.Time `json:"last_updated" bson:"last_updated"`
	ImageURL          *string   `json:"image_url" bson:"image_url,omitempty"`
	CADFileURL        *string   `json:"cad_file_url" bson:"cad_file_url,omitempty"`
}

// TeamComponentPatch holds the fields of a partial inventory update.
type TeamComponentPatch struct {
	Name       *string
	Vendor     *string
	Quantity   *int
	Location   *string
	Notes      *string
	AddedBy    *string
	ImageURL   *string
	CADFileURL *string
}

func (p TeamComponentPatch) Empty() bool {
	return p.Name == nil && p.Vendor == nil && p.Quantity == nil &&
		p.Location == nil && p.Notes == nil && p.AddedBy == nil &&
		p.ImageURL == nil && p.CADFileURL == nil
}

// InventorySummary aggregates a team's inventory.
type InventorySummary struct {
	TeamID           string `json:"team_id"`
	TotalItems       int    `json:"total_items"`
	UniqueComponents int    `json:"unique_components"`
}
