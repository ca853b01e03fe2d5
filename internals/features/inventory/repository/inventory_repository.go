package repository

import (
	"errors"
	"strings"
	"time"

	"salonku_backend/internals/features/inventory/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock: the item exists but holds fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

func ListItems(db *gorm.DB, search string) ([]model.InventoryItemModel, error) {
	q := db.Model(&model.InventoryItemModel{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(inventory_item_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	var rows []model.InventoryItemModel
	err := q.Order("inventory_item_name ASC").Find(&rows).Error
	return rows, err
}

func FindItemByID(db *gorm.DB, id uuid.UUID) (*model.InventoryItemModel, error) {
	var m model.InventoryItemModel
	if err := db.First(&m, "inventory_item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateItem(db *gorm.DB, m *model.InventoryItemModel) error {
	return db.Create(m).Error
}

func UpdateItem(db *gorm.DB, id uuid.UUID, updates map[string]any) (*model.InventoryItemModel, error) {
	var out *model.InventoryItemModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.InventoryItemModel{}).Where("inventory_item_id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		m, err := FindItemByID(tx, id)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// UseItem takes n units in one conditional update so two concurrent uses can
// never drive the quantity below zero.
func UseItem(db *gorm.DB, id uuid.UUID, n int, by string, at time.Time) (*model.InventoryItemModel, error) {
	var out *model.InventoryItemModel
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.InventoryItemModel{}).
			Where("inventory_item_id = ? AND inventory_item_quantity >= ?", id, n).
			Updates(map[string]any{
				"inventory_item_quantity":     gorm.Expr("inventory_item_quantity - ?", n),
				"inventory_item_last_used":    at,
				"inventory_item_last_used_by": by,
			})
		if res.Error != nil {
			return res.Error
		}
		m, err := FindItemByID(tx, id)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		out = m
		return nil
	})
	return out, err
}

func DeleteItem(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("inventory_item_id = ?", id).Delete(&model.InventoryItemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
