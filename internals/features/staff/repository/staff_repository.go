package repository

import (
	"strings"

	"salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffFilter struct {
	Role   string
	Status string
	Query  string
}

func ListStaff(db *gorm.DB, f StaffFilter, offset, limit int) ([]model.StaffModel, int64, error) {
	q := db.Model(&model.StaffModel{})
	if f.Role != "" {
		q = q.Where("staff_role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("staff_status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("LOWER(staff_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.StaffModel
	list := q.Session(&gorm.Session{}).Order("staff_name ASC")
	if limit > 0 {
		list = list.Offset(offset).Limit(limit)
	}
	if err := list.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func FindStaffByID(db *gorm.DB, id uuid.UUID) (*model.StaffModel, error) {
	var m model.StaffModel
	if err := db.First(&m, "staff_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func FindStaffByUserID(db *gorm.DB, userID uuid.UUID) (*model.StaffModel, error) {
	var m model.StaffModel
	if err := db.First(&m, "staff_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateStaff(db *gorm.DB, m *model.StaffModel) error {
	return db.Create(m).Error
}

func UpdateStaff(db *gorm.DB, id uuid.UUID, updates map[string]any) (*model.StaffModel, error) {
	var out *model.StaffModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.StaffModel{}).Where("staff_id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		m, err := FindStaffByID(tx, id)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// StatusBoard lists everyone, clocked-in staff first.
func StatusBoard(db *gorm.DB) ([]model.StaffModel, error) {
	var rows []model.StaffModel
	err := db.Order(gorm.Expr("CASE WHEN staff_status = ? THEN 0 ELSE 1 END", model.StaffStatusIn)).
		Order("staff_name ASC").
		Find(&rows).Error
	return rows, err
}
