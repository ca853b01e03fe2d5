package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceModel "salonku_backend/internals/features/attendance/model"
	"salonku_backend/internals/features/attendance/service"
	locationModel "salonku_backend/internals/features/locations/model"
	staffModel "salonku_backend/internals/features/staff/model"
	helper "salonku_backend/internals/helpers"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the relational service.Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ service.Store = (*GormStore)(nil)

/* ====================== LOCATIONS ====================== */

func (s *GormStore) ListActiveLocations(ctx context.Context) ([]locationModel.LocationModel, error) {
	var out []locationModel.LocationModel
	err := s.db.WithContext(ctx).
		Where("location_is_active = ?", true).
		Order("location_name ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) FindLocationByID(ctx context.Context, id uuid.UUID) (*locationModel.LocationModel, error) {
	var loc locationModel.LocationModel
	if err := s.db.WithContext(ctx).First(&loc, "location_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

/* ====================== STAFF ====================== */

func (s *GormStore) FindWorkerByID(ctx context.Context, id uuid.UUID) (*staffModel.StaffModel, error) {
	return s.findWorker(ctx, "staff_id = ?", id)
}

func (s *GormStore) FindWorkerByUserID(ctx context.Context, userID uuid.UUID) (*staffModel.StaffModel, error) {
	return s.findWorker(ctx, "staff_user_id = ?", userID)
}

func (s *GormStore) findWorker(ctx context.Context, query string, arg any) (*staffModel.StaffModel, error) {
	var w staffModel.StaffModel
	if err := s.db.WithContext(ctx).Where(query, arg).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrWorkerUnknown
		}
		return nil, err
	}
	return &w, nil
}

func (s *GormStore) ListWorkersClockedIn(ctx context.Context) ([]staffModel.StaffModel, error) {
	var out []staffModel.StaffModel
	err := s.db.WithContext(ctx).
		Where("staff_status = ?", staffModel.StaffStatusIn).
		Order("staff_name ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) MarkWorkerOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	return markWorker(s.db.WithContext(ctx), id, staffModel.StaffStatusOut, at)
}

func markWorker(tx *gorm.DB, id uuid.UUID, status string, at time.Time) error {
	col := "staff_last_clock_out"
	if status == staffModel.StaffStatusIn {
		col = "staff_last_clock_in"
	}
	return tx.Model(&staffModel.StaffModel{}).
		Where("staff_id = ?", id).
		Updates(map[string]any{
			"staff_status": status,
			col:            at,
		}).Error
}

/* ====================== ATTENDANCE ====================== */

// OpenSession inserts the day's record only when its key is free, and flips
// the worker cache in the same transaction.
func (s *GormStore) OpenSession(ctx context.Context, rec *attendanceModel.AttendanceRecordModel) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return service.ErrDayTaken
		}
		return markWorker(tx, rec.AttendanceStaffID, staffModel.StaffStatusIn, rec.AttendanceTimeIn)
	})
	switch {
	case err == nil, errors.Is(err, service.ErrDayTaken):
		return err
	case helper.IsUniqueViolation(err):
		return service.ErrDayTaken
	}
	return fmt.Errorf("open attendance session %s: %w", rec.AttendanceID, err)
}

func (s *GormStore) FindOpenSession(ctx context.Context, staffID uuid.UUID, day string) (*attendanceModel.AttendanceRecordModel, error) {
	var rec attendanceModel.AttendanceRecordModel
	err := s.db.WithContext(ctx).
		Where("attendance_id = ? AND attendance_time_out IS NULL", attendanceModel.DayKey(staffID, day)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) ListOpenSessions(ctx context.Context) ([]attendanceModel.AttendanceRecordModel, error) {
	var out []attendanceModel.AttendanceRecordModel
	err := s.db.WithContext(ctx).
		Where("attendance_time_out IS NULL").
		Order("attendance_date ASC, attendance_time_in ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list open attendance sessions: %w", err)
	}
	return out, nil
}

// CloseSession is a conditional update: a record already closed by someone
// else matches zero rows and yields ErrSessionClosed.
func (s *GormStore) CloseSession(ctx context.Context, recordID string, f service.CloseFields) (*attendanceModel.AttendanceRecordModel, error) {
	var out attendanceModel.AttendanceRecordModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&attendanceModel.AttendanceRecordModel{}).
			Where("attendance_id = ? AND attendance_time_out IS NULL", recordID).
			Updates(map[string]any{
				"attendance_time_out":            f.TimeOut,
				"attendance_status":              attendanceModel.StatusCompleted,
				"attendance_clock_out_status":    f.ClockOutStatus,
				"attendance_location_id":         f.LocationID,
				"attendance_location_name":       f.LocationName,
				"attendance_clock_out_latitude":  f.Latitude,
				"attendance_clock_out_longitude": f.Longitude,
				"attendance_clock_out_distance":  f.Distance,
				"attendance_auto_clock_out":      f.Auto,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return service.ErrSessionClosed
		}
		if err := tx.First(&out, "attendance_id = ?", recordID).Error; err != nil {
			return err
		}
		return markWorker(tx, out.AttendanceStaffID, staffModel.StaffStatusOut, f.TimeOut)
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionClosed) {
			return nil, err
		}
		return nil, fmt.Errorf("close attendance session %s: %w", recordID, err)
	}
	return &out, nil
}
