package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItemModel is a consumable stocked by the salon.
type InventoryItemModel struct {
	InventoryItemID         uuid.UUID  `gorm:"column:inventory_item_id;type:uuid;primaryKey" json:"inventory_item_id"`
	InventoryItemName       string     `gorm:"column:inventory_item_name;size:150;not null;uniqueIndex" json:"inventory_item_name"`
	InventoryItemUnit       *string    `gorm:"column:inventory_item_unit;size:30" json:"inventory_item_unit,omitempty"`
	InventoryItemQuantity   int        `gorm:"column:inventory_item_quantity;not null;check:inventory_item_quantity >= 0" json:"inventory_item_quantity"`
	InventoryItemLastUsed   *time.Time `gorm:"column:inventory_item_last_used" json:"inventory_item_last_used,omitempty"`
	InventoryItemLastUsedBy *string    `gorm:"column:inventory_item_last_used_by;size:150" json:"inventory_item_last_used_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

func (m *InventoryItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.InventoryItemID == uuid.Nil {
		m.InventoryItemID = uuid.New()
	}
	return nil
}
