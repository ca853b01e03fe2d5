package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationModel is a geofence center staff must be near to clock in/out.
type LocationModel struct {
	LocationID          uuid.UUID `gorm:"column:location_id;type:uuid;primaryKey" json:"location_id"`
	LocationName        string    `gorm:"column:location_name;size:150;not null" json:"location_name"`
	LocationAddress     *string   `gorm:"column:location_address;type:text" json:"location_address,omitempty"`
	LocationLatitude    float64   `gorm:"column:location_latitude;not null" json:"location_latitude"`
	LocationLongitude   float64   `gorm:"column:location_longitude;not null" json:"location_longitude"`
	LocationMaxDistance float64   `gorm:"column:location_max_distance;not null" json:"location_max_distance"` // meters
	LocationIsActive    bool      `gorm:"column:location_is_active;not null;index" json:"location_is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LocationModel) TableName() string {
	return "locations"
}

func (m *LocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.LocationID == uuid.Nil {
		m.LocationID = uuid.New()
	}
	return nil
}
