package service

import (
	"context"
	"errors"
	"log"
	"time"

	"salonku_backend/internals/features/attendance/events"
	attendanceModel "salonku_backend/internals/features/attendance/model"
)

type SweptSession struct {
	StaffID   string    `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	RecordID  string    `json:"record_id"`
	Day       string    `json:"day"`
	TimeOut   time.Time `json:"time_out"`
	Stale     bool      `json:"stale"`
}

type SweepReport struct {
	At       time.Time      `json:"at"`
	Skipped  bool           `json:"skipped"`
	Closed   []SweptSession `json:"closed"`
	Repaired []string       `json:"repaired"`
	Failed   int            `json:"failed"`
}

// AutoClockOut closes every open session once local time reaches the shift
// end. A session left open from an earlier day is closed at that day's shift
// end. A worker flagged "in" without any open record is reset to "out".
func (s *Service) AutoClockOut(ctx context.Context, now time.Time) (*SweepReport, error) {
	now = s.resolveNow(now)
	local := now.In(s.policy.Location)
	report := &SweepReport{At: now, Closed: []SweptSession{}, Repaired: []string{}}

	if MinutesSinceMidnight(local) < s.policy.ShiftEnd {
		report.Skipped = true
		return report, nil
	}

	sctx, cancel := s.storeCtx(ctx)
	open, err := s.store.ListOpenSessions(sctx)
	cancel()
	if err != nil {
		return nil, gateErr(ErrStoreUnavailable, err)
	}
	sctx, cancel = s.storeCtx(ctx)
	workers, err := s.store.ListWorkersClockedIn(sctx)
	cancel()
	if err != nil {
		return nil, gateErr(ErrStoreUnavailable, err)
	}

	// Every open record is closed, whatever the worker cache says, so a
	// worker holding several open days loses all of them in one pass.
	hasOpen := make(map[string]bool, len(open))
	for i := range open {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rec := &open[i]
		hasOpen[rec.AttendanceStaffID.String()] = true
		swept, err := s.sweepSession(ctx, rec, now)
		switch {
		case err != nil:
			report.Failed++
			log.Printf("[AUTO-CLOCKOUT] record=%s failed: %v", rec.AttendanceID, err)
		case swept != nil:
			report.Closed = append(report.Closed, *swept)
		}
	}

	for i := range workers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		w := &workers[i]
		if hasOpen[w.StaffID.String()] {
			continue
		}
		mctx, mcancel := s.storeCtx(ctx)
		err := s.store.MarkWorkerOut(mctx, w.StaffID, now)
		mcancel()
		if err != nil {
			report.Failed++
			log.Printf("[AUTO-CLOCKOUT] staff=%s repair failed: %v", w.StaffID, err)
			continue
		}
		report.Repaired = append(report.Repaired, w.StaffID.String())
	}

	if len(report.Closed) > 0 || len(report.Repaired) > 0 || report.Failed > 0 {
		log.Printf("[AUTO-CLOCKOUT] closed=%d repaired=%d failed=%d", len(report.Closed), len(report.Repaired), report.Failed)
	}
	return report, nil
}

// sweepSession closes one open record. A record from an earlier day is closed
// at that day's shift end rather than now.
func (s *Service) sweepSession(ctx context.Context, open *attendanceModel.AttendanceRecordModel, now time.Time) (*SweptSession, error) {
	timeOut := now
	today := now.In(s.policy.Location).Format(attendanceModel.DayLayout)
	stale := open.AttendanceDate != today
	if stale {
		if end, ok := s.shiftEndOn(open.AttendanceDate); ok && end.After(open.AttendanceTimeIn) {
			timeOut = end
		}
	}

	zero := 0.0
	fields := CloseFields{
		TimeOut:        timeOut,
		ClockOutStatus: attendanceModel.ClockOutOnTime,
		LocationID:     attendanceModel.AutoLocationID,
		LocationName:   attendanceModel.AutoLocationName,
		Latitude:       &zero,
		Longitude:      &zero,
		Auto:           true,
	}

	ev := events.Event{
		Kind:       events.KindAutoClockOut,
		StaffID:    open.AttendanceStaffID.String(),
		StaffName:  open.AttendanceStaffName,
		LocationID: attendanceModel.AutoLocationID,
		RecordID:   open.AttendanceID,
		At:         now,
	}

	if _, err := s.closeSession(ctx, open.AttendanceID, fields); err != nil {
		// a manual clock-out won the race; nothing left to close
		if errors.Is(err, ErrNoOpenSession) {
			return nil, nil
		}
		s.reject(ctx, ev, err)
		return nil, err
	}
	ev.Outcome = events.OutcomeAccepted
	s.record(ctx, ev)

	return &SweptSession{
		StaffID:   open.AttendanceStaffID.String(),
		StaffName: open.AttendanceStaffName,
		RecordID:  open.AttendanceID,
		Day:       open.AttendanceDate,
		TimeOut:   timeOut,
		Stale:     stale,
	}, nil
}

func (s *Service) shiftEndOn(day string) (time.Time, bool) {
	d, err := time.ParseInLocation(attendanceModel.DayLayout, day, s.policy.Location)
	if err != nil {
		return time.Time{}, false
	}
	return d.Add(time.Duration(s.policy.ShiftEnd) * time.Minute), true
}
