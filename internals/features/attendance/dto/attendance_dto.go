package dto

import (
	"strings"
	"time"

	"salonku_backend/internals/features/attendance/geo"
	"salonku_backend/internals/features/attendance/model"
	"salonku_backend/internals/features/attendance/service"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST
========================================================= */

// ClockRequest is what the device sends: either coordinates it acquired, or
// the error its positioning API reported.
type ClockRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Accuracy      float64  `json:"accuracy" validate:"gte=0"`
	PositionError string   `json:"position_error" validate:"omitempty,max=40"`
	LocationID    *string  `json:"location_id" validate:"omitempty,uuid"`
}

func (r *ClockRequest) Positioner() geo.Positioner {
	return geo.ReportedPosition{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Accuracy:  r.Accuracy,
		ErrorCode: r.PositionError,
	}
}

// Location returns the requested location id; validation already ran.
func (r *ClockRequest) Location() *uuid.UUID {
	if r.LocationID == nil || strings.TrimSpace(*r.LocationID) == "" {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*r.LocationID))
	if err != nil {
		return nil
	}
	return &id
}

/* =========================================================
   RESPONSE
========================================================= */

type AttendanceResponse struct {
	AttendanceID        string    `json:"attendance_id"`
	AttendanceStaffID   uuid.UUID `json:"attendance_staff_id"`
	AttendanceStaffName string    `json:"attendance_staff_name"`
	AttendanceDate      string    `json:"attendance_date"`

	AttendanceTimeIn       time.Time  `json:"attendance_time_in"`
	AttendanceTimeOut      *time.Time `json:"attendance_time_out"`
	AttendanceTimeInLocal  string     `json:"attendance_time_in_local"`
	AttendanceTimeOutLocal *string    `json:"attendance_time_out_local"`
	AttendanceStatus       string     `json:"attendance_status"`

	AttendanceLocationID   string `json:"attendance_location_id"`
	AttendanceLocationName string `json:"attendance_location_name"`

	AttendanceClockInStatus  string  `json:"attendance_clock_in_status"`
	AttendanceClockOutStatus *string `json:"attendance_clock_out_status"`

	AttendanceClockInDistance  float64  `json:"attendance_clock_in_distance"`
	AttendanceClockOutDistance *float64 `json:"attendance_clock_out_distance,omitempty"`
	AttendanceAutoClockOut     bool     `json:"attendance_auto_clock_out"`
}

func FromModel(m *model.AttendanceRecordModel, loc *time.Location) AttendanceResponse {
	if loc == nil {
		loc = time.UTC
	}
	resp := AttendanceResponse{
		AttendanceID:               m.AttendanceID,
		AttendanceStaffID:          m.AttendanceStaffID,
		AttendanceStaffName:        m.AttendanceStaffName,
		AttendanceDate:             m.AttendanceDate,
		AttendanceTimeIn:           m.AttendanceTimeIn,
		AttendanceTimeOut:          m.AttendanceTimeOut,
		AttendanceTimeInLocal:      m.AttendanceTimeIn.In(loc).Format("15:04"),
		AttendanceStatus:           m.AttendanceStatus,
		AttendanceLocationID:       m.AttendanceLocationID,
		AttendanceLocationName:     m.AttendanceLocationName,
		AttendanceClockInStatus:    m.AttendanceClockInStatus,
		AttendanceClockOutStatus:   m.AttendanceClockOutStatus,
		AttendanceClockInDistance:  m.AttendanceClockInDistance,
		AttendanceClockOutDistance: m.AttendanceClockOutDistance,
		AttendanceAutoClockOut:     m.AttendanceAutoClockOut,
	}
	if m.AttendanceTimeOut != nil {
		s := m.AttendanceTimeOut.In(loc).Format("15:04")
		resp.AttendanceTimeOutLocal = &s
	}
	return resp
}

func FromModels(rows []model.AttendanceRecordModel, loc *time.Location) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], loc))
	}
	return out
}

type ClockResponse struct {
	Record         AttendanceResponse `json:"record"`
	LocationName   string             `json:"location_name"`
	DistanceMeters *float64           `json:"distance_meters,omitempty"`
}

func FromClockResult(r *service.ClockResult, loc *time.Location) ClockResponse {
	resp := ClockResponse{
		Record:         FromModel(r.Record, loc),
		DistanceMeters: r.Distance,
	}
	if r.Location != nil {
		resp.LocationName = r.Location.LocationName
	}
	return resp
}

// TodayResponse is the caller's state for the current salon day.
type TodayResponse struct {
	Date        string              `json:"date"`
	ClockedIn   bool                `json:"clocked_in"`
	CanClockIn  bool                `json:"can_clock_in"`
	CanClockOut bool                `json:"can_clock_out"`
	Record      *AttendanceResponse `json:"record"`
	ShiftStart  string              `json:"shift_start"`
	ShiftEnd    string              `json:"shift_end"`
}
