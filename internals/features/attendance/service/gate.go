package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/features/attendance/events"
	"salonku_backend/internals/features/attendance/geo"
	attendanceModel "salonku_backend/internals/features/attendance/model"
	locationModel "salonku_backend/internals/features/locations/model"
	staffModel "salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
)

type Service struct {
	store    Store
	recorder events.Recorder
	policy   configs.AttendancePolicy
	now      func() time.Time
}

func New(store Store, recorder events.Recorder, policy configs.AttendancePolicy) *Service {
	if recorder == nil {
		recorder = events.LogRecorder{}
	}
	if policy.Location == nil {
		policy.Location = time.Local
	}
	return &Service{store: store, recorder: recorder, policy: policy, now: time.Now}
}

func (s *Service) Policy() configs.AttendancePolicy { return s.policy }

type ClockInInput struct {
	WorkerID   uuid.UUID
	LocationID *uuid.UUID
	Positioner geo.Positioner
	Now        time.Time
}

// ClockOutInput: a nil Positioner skips the geofence (admin / sweep path).
type ClockOutInput struct {
	WorkerID   uuid.UUID
	LocationID *uuid.UUID
	Positioner geo.Positioner
	Now        time.Time
}

type ClockResult struct {
	Record   *attendanceModel.AttendanceRecordModel
	Location *locationModel.LocationModel
	Distance *float64
}

// WorkerForUser resolves the staff row linked to an authenticated user.
func (s *Service) WorkerForUser(ctx context.Context, userID uuid.UUID) (*staffModel.StaffModel, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	w, err := s.store.FindWorkerByUserID(sctx, userID)
	if err != nil {
		if errors.Is(err, ErrWorkerUnknown) {
			return nil, err
		}
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	return w, nil
}

// ClockIn validates a clock-in attempt and, only when every check passes,
// writes the day's attendance record in one conditional insert.
func (s *Service) ClockIn(ctx context.Context, in ClockInInput) (*ClockResult, error) {
	now := s.resolveNow(in.Now)
	ev := events.Event{Kind: events.KindClockIn, StaffID: in.WorkerID.String(), At: now}

	worker, err := s.worker(ctx, in.WorkerID)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}
	ev.StaffName = worker.StaffName

	candidates, err := s.candidateLocations(ctx, in.LocationID)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}

	pos, err := geo.Locate(ctx, in.Positioner, s.policy.LocationTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, s.reject(ctx, ev, gateErr(ErrLocationUnavailable, err))
	}
	ev.Latitude, ev.Longitude, ev.Accuracy = &pos.Latitude, &pos.Longitude, &pos.Accuracy

	loc, distance := nearest(candidates, pos.Coordinates)
	ev.LocationID = loc.LocationID.String()
	ev.Distance = &distance
	if distance > loc.LocationMaxDistance {
		return nil, s.reject(ctx, ev, outOfRange(distance, loc.LocationMaxDistance))
	}

	local := now.In(s.policy.Location)
	day := local.Format(attendanceModel.DayLayout)
	rec := &attendanceModel.AttendanceRecordModel{
		AttendanceID:               attendanceModel.DayKey(worker.StaffID, day),
		AttendanceStaffID:          worker.StaffID,
		AttendanceStaffName:        worker.StaffName,
		AttendanceDate:             day,
		AttendanceTimeIn:           now,
		AttendanceStatus:           attendanceModel.StatusPresent,
		AttendanceLocationID:       loc.LocationID.String(),
		AttendanceLocationName:     loc.LocationName,
		AttendanceClockInStatus:    ClassifyClockIn(MinutesSinceMidnight(local), s.policy.ShiftStart),
		AttendanceClockInLatitude:  pos.Latitude,
		AttendanceClockInLongitude: pos.Longitude,
		AttendanceClockInDistance:  distance,
	}

	// abandoned by the caller: nothing written yet, nothing to undo
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.store.OpenSession(sctx, rec); err != nil {
		if errors.Is(err, ErrDayTaken) {
			return nil, s.reject(ctx, ev, ErrAlreadyClockedIn)
		}
		return nil, s.reject(ctx, ev, gateErr(ErrStoreUnavailable, err))
	}

	ev.Outcome = events.OutcomeAccepted
	ev.RecordID = rec.AttendanceID
	s.record(ctx, ev)
	log.Printf("[ATTENDANCE] clock-in staff=%s day=%s status=%s distance=%.1fm", worker.StaffID, day, rec.AttendanceClockInStatus, distance)

	return &ClockResult{Record: rec, Location: loc, Distance: &distance}, nil
}

// ClockOut closes the worker's open record for the current day.
func (s *Service) ClockOut(ctx context.Context, in ClockOutInput) (*ClockResult, error) {
	now := s.resolveNow(in.Now)
	ev := events.Event{Kind: events.KindClockOut, StaffID: in.WorkerID.String(), At: now}

	worker, err := s.worker(ctx, in.WorkerID)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}
	ev.StaffName = worker.StaffName

	local := now.In(s.policy.Location)
	day := local.Format(attendanceModel.DayLayout)

	open, err := s.openSession(ctx, worker.StaffID, day)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}
	ev.RecordID = open.AttendanceID

	candidates, err := s.candidateLocations(ctx, in.LocationID)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}

	fields := CloseFields{
		TimeOut:        now,
		ClockOutStatus: ClassifyClockOut(MinutesSinceMidnight(local), s.policy.ShiftEnd),
	}
	loc := &candidates[0]
	var distance *float64
	if in.Positioner != nil {
		pos, err := geo.Locate(ctx, in.Positioner, s.policy.LocationTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, s.reject(ctx, ev, gateErr(ErrLocationUnavailable, err))
		}
		ev.Latitude, ev.Longitude, ev.Accuracy = &pos.Latitude, &pos.Longitude, &pos.Accuracy

		var d float64
		loc, d = nearest(candidates, pos.Coordinates)
		distance = &d
		ev.Distance = distance
		if d > loc.LocationMaxDistance {
			ev.LocationID = loc.LocationID.String()
			return nil, s.reject(ctx, ev, outOfRange(d, loc.LocationMaxDistance))
		}
		fields.Latitude, fields.Longitude, fields.Distance = &pos.Latitude, &pos.Longitude, distance
	}
	fields.LocationID = loc.LocationID.String()
	fields.LocationName = loc.LocationName
	ev.LocationID = fields.LocationID

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	closed, err := s.closeSession(ctx, open.AttendanceID, fields)
	if err != nil {
		return nil, s.reject(ctx, ev, err)
	}

	ev.Outcome = events.OutcomeAccepted
	s.record(ctx, ev)
	log.Printf("[ATTENDANCE] clock-out staff=%s day=%s status=%s", worker.StaffID, day, fields.ClockOutStatus)

	return &ClockResult{Record: closed, Location: loc, Distance: distance}, nil
}

/* ===================== internals ===================== */

func (s *Service) resolveNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.policy.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.policy.StoreTimeout)
}

func (s *Service) worker(ctx context.Context, id uuid.UUID) (*staffModel.StaffModel, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	w, err := s.store.FindWorkerByID(sctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkerUnknown) {
			return nil, err
		}
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	return w, nil
}

// candidateLocations returns the explicitly chosen location, or every active one.
func (s *Service) candidateLocations(ctx context.Context, id *uuid.UUID) ([]locationModel.LocationModel, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if id != nil {
		loc, err := s.store.FindLocationByID(sctx, *id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, gateErr(ErrNoActiveLocation, fmt.Errorf("location %s does not exist", id))
			}
			return nil, gateErr(ErrStoreUnavailable, err)
		}
		if !loc.LocationIsActive || loc.LocationMaxDistance <= 0 {
			return nil, gateErr(ErrNoActiveLocation, fmt.Errorf("location %s is not active", id))
		}
		return []locationModel.LocationModel{*loc}, nil
	}

	all, err := s.store.ListActiveLocations(sctx)
	if err != nil {
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	usable := make([]locationModel.LocationModel, 0, len(all))
	for _, l := range all {
		if l.LocationIsActive && l.LocationMaxDistance > 0 {
			usable = append(usable, l)
		}
	}
	if len(usable) == 0 {
		return nil, ErrNoActiveLocation
	}
	return usable, nil
}

// nearest picks the candidate closest to p; candidates must be non-empty.
func nearest(candidates []locationModel.LocationModel, p geo.Coordinates) (*locationModel.LocationModel, float64) {
	best := 0
	bestDist := -1.0
	for i := range candidates {
		d := geo.Distance(p, geo.Coordinates{
			Latitude:  candidates[i].LocationLatitude,
			Longitude: candidates[i].LocationLongitude,
		})
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return &candidates[best], bestDist
}

func (s *Service) openSession(ctx context.Context, staffID uuid.UUID, day string) (*attendanceModel.AttendanceRecordModel, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	open, err := s.store.FindOpenSession(sctx, staffID, day)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	return open, nil
}

func (s *Service) closeSession(ctx context.Context, recordID string, f CloseFields) (*attendanceModel.AttendanceRecordModel, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	closed, err := s.store.CloseSession(sctx, recordID, f)
	if err != nil {
		if errors.Is(err, ErrSessionClosed) || errors.Is(err, ErrNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	return closed, nil
}

func (s *Service) reject(ctx context.Context, ev events.Event, err error) error {
	ev.Outcome = events.OutcomeRejected
	if k := KindOf(err); k != "" {
		ev.Reason = string(k)
	} else {
		ev.Reason = err.Error()
	}
	s.record(ctx, ev)
	return err
}

// record is best-effort and survives the request being cancelled.
func (s *Service) record(ctx context.Context, ev events.Event) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.recorder.Record(rctx, ev); err != nil {
		log.Printf("[ATTENDANCE] audit record failed kind=%s staff=%s: %v", ev.Kind, ev.StaffID, err)
	}
}
