package repository

import (
	"strings"

	"salonku_backend/internals/features/records/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordFilter struct {
	StaffID       *uuid.UUID
	Date          string
	DateFrom      string
	DateTo        string
	PaymentMethod string
}

func ListServiceRecords(db *gorm.DB, f RecordFilter, offset, limit int) ([]model.ServiceRecordModel, int64, error) {
	q := db.Model(&model.ServiceRecordModel{})
	if f.StaffID != nil {
		q = q.Where("service_record_staff_id = ?", *f.StaffID)
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		q = q.Where("service_record_date = ?", d)
	}
	if d := strings.TrimSpace(f.DateFrom); d != "" {
		q = q.Where("service_record_date >= ?", d)
	}
	if d := strings.TrimSpace(f.DateTo); d != "" {
		q = q.Where("service_record_date <= ?", d)
	}
	if f.PaymentMethod != "" {
		q = q.Where("service_record_payment_method = ?", f.PaymentMethod)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := q.Session(&gorm.Session{}).
		Order("service_record_date DESC").
		Order("service_record_time DESC")
	if limit > 0 {
		list = list.Offset(offset).Limit(limit)
	}
	var rows []model.ServiceRecordModel
	if err := list.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func FindServiceRecordByID(db *gorm.DB, id uuid.UUID) (*model.ServiceRecordModel, error) {
	var m model.ServiceRecordModel
	if err := db.First(&m, "service_record_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateServiceRecord(db *gorm.DB, m *model.ServiceRecordModel) error {
	return db.Create(m).Error
}

func DeleteServiceRecord(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("service_record_id = ?", id).Delete(&model.ServiceRecordModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
