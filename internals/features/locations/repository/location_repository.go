package repository

import (
	"salonku_backend/internals/features/locations/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListLocations(db *gorm.DB, activeOnly bool) ([]model.LocationModel, error) {
	var rows []model.LocationModel
	q := db.Model(&model.LocationModel{})
	if activeOnly {
		q = q.Where("location_is_active = ?", true)
	}
	if err := q.Order("location_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func FindLocationByID(db *gorm.DB, id uuid.UUID) (*model.LocationModel, error) {
	var m model.LocationModel
	if err := db.First(&m, "location_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateLocation(db *gorm.DB, m *model.LocationModel) error {
	return db.Create(m).Error
}

// UpdateLocation applies a partial update and returns the fresh row.
func UpdateLocation(db *gorm.DB, id uuid.UUID, updates map[string]any) (*model.LocationModel, error) {
	var out *model.LocationModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.LocationModel{}).Where("location_id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		m, err := FindLocationByID(tx, id)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// ToggleLocation flips location_is_active in a single statement.
func ToggleLocation(db *gorm.DB, id uuid.UUID) (*model.LocationModel, error) {
	res := db.Model(&model.LocationModel{}).
		Where("location_id = ?", id).
		Update("location_is_active", gorm.Expr("NOT location_is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return FindLocationByID(db, id)
}

func DeleteLocation(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("location_id = ?", id).Delete(&model.LocationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
