package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent   = "present"
	StatusCompleted = "completed"

	ClockInEarly = "early"
	ClockInLate  = "late"

	ClockOutOnTime    = "on-time"
	ClockOutLeftEarly = "left-early"

	// Synthetic location stamped by the auto clock-out sweep.
	AutoLocationID   = "auto"
	AutoLocationName = "Auto clock-out"

	DayLayout = "2006-01-02"
)

// AttendanceRecordModel is one clock cycle of one staff member on one day.
// AttendanceID is derived from (staff, day) so the day-level uniqueness is
// enforced by the primary key itself.
type AttendanceRecordModel struct {
	AttendanceID        string    `gorm:"column:attendance_id;size:64;primaryKey" json:"attendance_id"`
	AttendanceStaffID   uuid.UUID `gorm:"column:attendance_staff_id;type:uuid;not null;uniqueIndex:uq_attendance_staff_day,priority:1" json:"attendance_staff_id"`
	AttendanceStaffName string    `gorm:"column:attendance_staff_name;size:150;not null" json:"attendance_staff_name"`
	AttendanceDate      string    `gorm:"column:attendance_date;size:10;not null;uniqueIndex:uq_attendance_staff_day,priority:2;index" json:"attendance_date"`

	AttendanceTimeIn  time.Time  `gorm:"column:attendance_time_in;not null" json:"attendance_time_in"`
	AttendanceTimeOut *time.Time `gorm:"column:attendance_time_out;index" json:"attendance_time_out"`
	AttendanceStatus  string     `gorm:"column:attendance_status;size:20;not null" json:"attendance_status"`

	AttendanceLocationID   string `gorm:"column:attendance_location_id;size:64;not null" json:"attendance_location_id"`
	AttendanceLocationName string `gorm:"column:attendance_location_name;size:150;not null" json:"attendance_location_name"`

	AttendanceClockInStatus  string  `gorm:"column:attendance_clock_in_status;size:20;not null" json:"attendance_clock_in_status"`
	AttendanceClockOutStatus *string `gorm:"column:attendance_clock_out_status;size:20" json:"attendance_clock_out_status"`

	AttendanceClockInLatitude   float64  `gorm:"column:attendance_clock_in_latitude" json:"attendance_clock_in_latitude"`
	AttendanceClockInLongitude  float64  `gorm:"column:attendance_clock_in_longitude" json:"attendance_clock_in_longitude"`
	AttendanceClockInDistance   float64  `gorm:"column:attendance_clock_in_distance" json:"attendance_clock_in_distance"`
	AttendanceClockOutLatitude  *float64 `gorm:"column:attendance_clock_out_latitude" json:"attendance_clock_out_latitude,omitempty"`
	AttendanceClockOutLongitude *float64 `gorm:"column:attendance_clock_out_longitude" json:"attendance_clock_out_longitude,omitempty"`
	AttendanceClockOutDistance  *float64 `gorm:"column:attendance_clock_out_distance" json:"attendance_clock_out_distance,omitempty"`
	AttendanceAutoClockOut      bool     `gorm:"column:attendance_auto_clock_out;not null" json:"attendance_auto_clock_out"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// DayKey is the record identity for a staff member on a calendar day.
func DayKey(staffID uuid.UUID, day string) string {
	return fmt.Sprintf("%s_%s", staffID.String(), day)
}

func (m *AttendanceRecordModel) IsOpen() bool {
	return m.AttendanceTimeOut == nil
}
