package domain

import "time"

// InventoryAction names the kind of change recorded in the activity log.
type InventoryAction string

const (
	ActionCreated         InventoryAction = "created"
	ActionUpdated         InventoryAction = "updated"
	ActionQuantityChanged InventoryAction = "quantity_changed"
	ActionDeleted         InventoryAction = "deleted"
)

// InventoryEvent records one change to a team's inventory.
type InventoryEvent struct {
	TeamID      string          `json:"team_id" bson:"team_id"`
	ComponentID int64           `json:"component_id" bson:"component_id"`
	Action      InventoryAction `json:"action" bson:"action"`
	Actor       string          `json:"actor" bson:"actor"`
	Quantity    *int            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Timestamp   time.Time       `json:"timestamp" bson:"timestamp"`
}
