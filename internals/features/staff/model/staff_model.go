package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StaffStatusIn  = "in"
	StaffStatusOut = "out"

	StaffRoleBarber  = "Barber"
	StaffRoleStylist = "Stylist"
)

// StaffModel is a worker. Status and the last clock in/out timestamps are a
// cache of the latest attendance record and only the attendance gate writes them.
type StaffModel struct {
	StaffID       uuid.UUID  `gorm:"column:staff_id;type:uuid;primaryKey" json:"staff_id"`
	StaffUserID   *uuid.UUID `gorm:"column:staff_user_id;type:uuid;uniqueIndex" json:"staff_user_id,omitempty"`
	StaffName     string     `gorm:"column:staff_name;size:150;not null" json:"staff_name"`
	StaffRole     string     `gorm:"column:staff_role;size:30;not null" json:"staff_role"`
	StaffEmail    *string    `gorm:"column:staff_email;size:150" json:"staff_email,omitempty"`
	StaffPhone    *string    `gorm:"column:staff_phone;size:30" json:"staff_phone,omitempty"`
	StaffCategory *string    `gorm:"column:staff_category;size:60" json:"staff_category,omitempty"`

	StaffStatus       string     `gorm:"column:staff_status;size:10;not null;index" json:"staff_status"`
	StaffLastClockIn  *time.Time `gorm:"column:staff_last_clock_in" json:"staff_last_clock_in,omitempty"`
	StaffLastClockOut *time.Time `gorm:"column:staff_last_clock_out" json:"staff_last_clock_out,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StaffModel) TableName() string {
	return "staff"
}

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	if m.StaffStatus == "" {
		m.StaffStatus = StaffStatusOut
	}
	return nil
}
