package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentCash     = "Cash"
	PaymentCard     = "Card"
	PaymentTransfer = "Transfer"
)

// ServiceLine is one item of a service record. It is a copy taken at logging
// time, so later catalog edits never rewrite history.
type ServiceLine struct {
	ServiceID *uuid.UUID `json:"service_id,omitempty"`
	Category  string     `json:"category,omitempty"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
}

// ServiceRecordModel is one logged visit. Amounts are in the salon currency.
type ServiceRecordModel struct {
	ServiceRecordID            uuid.UUID      `gorm:"column:service_record_id;type:uuid;primaryKey" json:"service_record_id"`
	ServiceRecordDate          string         `gorm:"column:service_record_date;type:char(10);not null;index" json:"service_record_date"`
	ServiceRecordTime          string         `gorm:"column:service_record_time;type:char(5);not null" json:"service_record_time"`
	ServiceRecordStaffID       uuid.UUID      `gorm:"column:service_record_staff_id;type:uuid;not null;index" json:"service_record_staff_id"`
	ServiceRecordStaffName     string         `gorm:"column:service_record_staff_name;size:150;not null" json:"service_record_staff_name"`
	ServiceRecordClientName    string         `gorm:"column:service_record_client_name;size:150;not null" json:"service_record_client_name"`
	ServiceRecordClientPhone   *string        `gorm:"column:service_record_client_phone;size:30" json:"service_record_client_phone,omitempty"`
	ServiceRecordServices      datatypes.JSON `gorm:"column:service_record_services;not null" json:"service_record_services"`
	ServiceRecordTotal         float64        `gorm:"column:service_record_total;not null" json:"service_record_total"`
	ServiceRecordDiscount      float64        `gorm:"column:service_record_discount;not null" json:"service_record_discount"`
	ServiceRecordFinal         float64        `gorm:"column:service_record_final;not null" json:"service_record_final"`
	ServiceRecordPaymentMethod string         `gorm:"column:service_record_payment_method;size:20;not null" json:"service_record_payment_method"`
	ServiceRecordCreatedBy     *uuid.UUID     `gorm:"column:service_record_created_by;type:uuid" json:"service_record_created_by,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServiceRecordModel) TableName() string {
	return "service_records"
}

func (m *ServiceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.ServiceRecordID == uuid.Nil {
		m.ServiceRecordID = uuid.New()
	}
	return nil
}
