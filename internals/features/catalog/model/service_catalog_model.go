package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCatalogModel is one priced entry of the salon's service list. Names
// repeat across categories ("M/S" under several braiding styles), so the pair
// is the natural key.
type ServiceCatalogModel struct {
	ServiceCatalogID       uuid.UUID `gorm:"column:service_catalog_id;type:uuid;primaryKey" json:"service_catalog_id"`
	ServiceCatalogCategory string    `gorm:"column:service_catalog_category;size:100;not null;uniqueIndex:uq_service_catalog_category_name,priority:1" json:"service_catalog_category"`
	ServiceCatalogName     string    `gorm:"column:service_catalog_name;size:150;not null;uniqueIndex:uq_service_catalog_category_name,priority:2" json:"service_catalog_name"`
	ServiceCatalogPrice    float64   `gorm:"column:service_catalog_price;not null;check:service_catalog_price >= 0" json:"service_catalog_price"`
	ServiceCatalogIsActive bool      `gorm:"column:service_catalog_is_active;not null;index" json:"service_catalog_is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServiceCatalogModel) TableName() string {
	return "service_catalog"
}

func (m *ServiceCatalogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ServiceCatalogID == uuid.Nil {
		m.ServiceCatalogID = uuid.New()
	}
	return nil
}
