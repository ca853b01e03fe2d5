package repository

import (
	"context"
	"strings"

	attendanceModel "salonku_backend/internals/features/attendance/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordFilter narrows attendance history. Dates are YYYY-MM-DD, inclusive.
type RecordFilter struct {
	StaffID  *uuid.UUID
	Date     string
	DateFrom string
	DateTo   string
	OpenOnly bool
}

func (f RecordFilter) apply(q *gorm.DB) *gorm.DB {
	if f.StaffID != nil {
		q = q.Where("attendance_staff_id = ?", *f.StaffID)
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		q = q.Where("attendance_date = ?", d)
	}
	if d := strings.TrimSpace(f.DateFrom); d != "" {
		q = q.Where("attendance_date >= ?", d)
	}
	if d := strings.TrimSpace(f.DateTo); d != "" {
		q = q.Where("attendance_date <= ?", d)
	}
	if f.OpenOnly {
		q = q.Where("attendance_time_out IS NULL")
	}
	return q
}

// ListRecords returns one page of history, newest day first, plus the total.
// limit <= 0 returns every matching row.
func (s *GormStore) ListRecords(ctx context.Context, f RecordFilter, offset, limit int) ([]attendanceModel.AttendanceRecordModel, int64, error) {
	base := f.apply(s.db.WithContext(ctx).Model(&attendanceModel.AttendanceRecordModel{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Order("attendance_date DESC").
		Order("attendance_time_in DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var rows []attendanceModel.AttendanceRecordModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) FindRecord(ctx context.Context, id string) (*attendanceModel.AttendanceRecordModel, error) {
	var rec attendanceModel.AttendanceRecordModel
	if err := s.db.WithContext(ctx).First(&rec, "attendance_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
