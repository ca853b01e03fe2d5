package repository

import (
	"strings"

	"salonku_backend/internals/features/catalog/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceFilter struct {
	// Query matches the service name or its category, like the records picker.
	Query      string
	Category   string
	ActiveOnly bool
}

func ListServices(db *gorm.DB, f ServiceFilter) ([]model.ServiceCatalogModel, error) {
	q := db.Model(&model.ServiceCatalogModel{})
	if f.ActiveOnly {
		q = q.Where("service_catalog_is_active = ?", true)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("LOWER(service_catalog_category) = ?", strings.ToLower(c))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(service_catalog_name) LIKE ? OR LOWER(service_catalog_category) LIKE ?", like, like)
	}
	var rows []model.ServiceCatalogModel
	err := q.Order("service_catalog_category ASC").
		Order("service_catalog_name ASC").
		Find(&rows).Error
	return rows, err
}

func FindServiceByID(db *gorm.DB, id uuid.UUID) (*model.ServiceCatalogModel, error) {
	var m model.ServiceCatalogModel
	if err := db.First(&m, "service_catalog_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindServicesForLines loads the active entries a set of record lines can
// resolve to: by id, or by case-insensitive name.
func FindServicesForLines(db *gorm.DB, ids []uuid.UUID, names []string) ([]model.ServiceCatalogModel, error) {
	if len(ids) == 0 && len(names) == 0 {
		return []model.ServiceCatalogModel{}, nil
	}
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(n)))
	}

	q := db.Model(&model.ServiceCatalogModel{}).Where("service_catalog_is_active = ?", true)
	switch {
	case len(ids) > 0 && len(lowered) > 0:
		q = q.Where("service_catalog_id IN ? OR LOWER(service_catalog_name) IN ?", ids, lowered)
	case len(ids) > 0:
		q = q.Where("service_catalog_id IN ?", ids)
	default:
		q = q.Where("LOWER(service_catalog_name) IN ?", lowered)
	}
	var rows []model.ServiceCatalogModel
	err := q.Order("service_catalog_category ASC").Find(&rows).Error
	return rows, err
}

func CreateService(db *gorm.DB, m *model.ServiceCatalogModel) error {
	return db.Create(m).Error
}

func UpdateService(db *gorm.DB, id uuid.UUID, updates map[string]any) (*model.ServiceCatalogModel, error) {
	var out *model.ServiceCatalogModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&model.ServiceCatalogModel{}).Where("service_catalog_id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		m, err := FindServiceByID(tx, id)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// DeleteService removes the entry. Records keep their own copy of name and
// price, so history is unaffected.
func DeleteService(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("service_catalog_id = ?", id).Delete(&model.ServiceCatalogModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
