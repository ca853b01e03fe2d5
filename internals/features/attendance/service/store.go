package service

import (
	"context"
	"time"

	attendanceModel "salonku_backend/internals/features/attendance/model"
	locationModel "salonku_backend/internals/features/locations/model"
	staffModel "salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
)

type LocationStore interface {
	ListActiveLocations(ctx context.Context) ([]locationModel.LocationModel, error)
	// FindLocationByID returns ErrNotFound when missing.
	FindLocationByID(ctx context.Context, id uuid.UUID) (*locationModel.LocationModel, error)
}

type WorkerStore interface {
	// Both finders return ErrWorkerUnknown when missing.
	FindWorkerByID(ctx context.Context, id uuid.UUID) (*staffModel.StaffModel, error)
	FindWorkerByUserID(ctx context.Context, userID uuid.UUID) (*staffModel.StaffModel, error)
	ListWorkersClockedIn(ctx context.Context) ([]staffModel.StaffModel, error)
	MarkWorkerOut(ctx context.Context, id uuid.UUID, at time.Time) error
}

// CloseFields is what a clock-out writes onto an open record.
type CloseFields struct {
	TimeOut        time.Time
	ClockOutStatus string
	LocationID     string
	LocationName   string
	Latitude       *float64
	Longitude      *float64
	Distance       *float64
	Auto           bool
}

type AttendanceStore interface {
	// OpenSession inserts rec and flips the worker cache to "in" atomically.
	// It returns ErrDayTaken when a record with the same day key exists.
	OpenSession(ctx context.Context, rec *attendanceModel.AttendanceRecordModel) error
	// FindOpenSession returns ErrNotFound when the worker has no open record on day.
	FindOpenSession(ctx context.Context, staffID uuid.UUID, day string) (*attendanceModel.AttendanceRecordModel, error)
	// ListOpenSessions returns every record without a clock-out, across all
	// workers and days, oldest day first.
	ListOpenSessions(ctx context.Context) ([]attendanceModel.AttendanceRecordModel, error)
	// CloseSession sets the clock-out fields only if the record is still open
	// and flips the worker cache to "out". Returns ErrSessionClosed otherwise.
	CloseSession(ctx context.Context, recordID string, f CloseFields) (*attendanceModel.AttendanceRecordModel, error)
}

type Store interface {
	LocationStore
	WorkerStore
	AttendanceStore
}
