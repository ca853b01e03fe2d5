package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/features/attendance/events"
	"salonku_backend/internals/features/attendance/geo"
	attendanceModel "salonku_backend/internals/features/attendance/model"
	locationModel "salonku_backend/internals/features/locations/model"
	staffModel "salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
)

const (
	salonLat = 9.0335
	salonLng = 7.4898
)

func testPolicy() configs.AttendancePolicy {
	return configs.AttendancePolicy{
		Location:        time.UTC,
		ShiftStart:      9*60 + 30,
		ShiftEnd:        21 * 60,
		LocationTimeout: time.Second,
		StoreTimeout:    time.Second,
	}
}

type fixture struct {
	store    *fakeStore
	recorder *memRecorder
	svc      *Service
	worker   uuid.UUID
	salon    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newFakeStore()
	salon := locationModel.LocationModel{
		LocationID:          uuid.New(),
		LocationName:        "Wuse Branch",
		LocationLatitude:    salonLat,
		LocationLongitude:   salonLng,
		LocationMaxDistance: 100,
		LocationIsActive:    true,
	}
	st.locations = append(st.locations, salon)

	workerID := uuid.New()
	st.workers[workerID] = &staffModel.StaffModel{
		StaffID:     workerID,
		StaffName:   "Ada",
		StaffRole:   staffModel.StaffRoleStylist,
		StaffStatus: staffModel.StaffStatusOut,
	}
	rec := &memRecorder{}
	return &fixture{
		store:    st,
		recorder: rec,
		svc:      New(st, rec, testPolicy()),
		worker:   workerID,
		salon:    salon.LocationID,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 11, hour, minute, 0, 0, time.UTC)
}

func reported(lat, lng float64) geo.ReportedPosition {
	return geo.ReportedPosition{Latitude: &lat, Longitude: &lng, Accuracy: 8}
}

func (f *fixture) clockIn(t *testing.T, now time.Time, pos geo.Positioner) (*ClockResult, error) {
	t.Helper()
	return f.svc.ClockIn(context.Background(), ClockInInput{WorkerID: f.worker, Positioner: pos, Now: now})
}

func (f *fixture) clockOut(t *testing.T, now time.Time, pos geo.Positioner) (*ClockResult, error) {
	t.Helper()
	return f.svc.ClockOut(context.Background(), ClockOutInput{WorkerID: f.worker, Positioner: pos, Now: now})
}

func (f *fixture) workerStatus() string {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.workers[f.worker].StaffStatus
}

func TestClockInOutOfRangeWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.clockIn(t, at(9, 0), reported(9.0345, salonLng))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want OUT_OF_RANGE, got %v", err)
	}
	var ge *GateError
	if !errors.As(err, &ge) || ge.Distance == nil || ge.MaxDistance == nil {
		t.Fatalf("out of range error must carry distances, got %#v", err)
	}
	if *ge.Distance <= 100 || math.Abs(*ge.Distance-111.19) > 0.5 {
		t.Fatalf("distance = %.2f, want ~111.19", *ge.Distance)
	}
	if *ge.MaxDistance != 100 {
		t.Fatalf("max distance = %v, want 100", *ge.MaxDistance)
	}
	if n := f.store.countRecords(); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
	if s := f.workerStatus(); s != staffModel.StaffStatusOut {
		t.Fatalf("worker status = %q, want out", s)
	}
	if ev := f.recorder.last(); ev.Outcome != events.OutcomeRejected || ev.Reason != string(KindOutOfRange) {
		t.Fatalf("audit event = %+v", ev)
	}
}

func TestClockInCreatesSingleRecord(t *testing.T) {
	f := newFixture(t)

	res, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng))
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	rec := res.Record
	if rec.AttendanceID != attendanceModel.DayKey(f.worker, "2024-03-11") {
		t.Fatalf("record id = %q", rec.AttendanceID)
	}
	if rec.AttendanceStatus != attendanceModel.StatusPresent || !rec.IsOpen() {
		t.Fatalf("record must be present and open, got %+v", rec)
	}
	if rec.AttendanceClockInStatus != attendanceModel.ClockInEarly {
		t.Fatalf("clock in status = %q, want early", rec.AttendanceClockInStatus)
	}
	if rec.AttendanceLocationID != f.salon.String() || rec.AttendanceLocationName != "Wuse Branch" {
		t.Fatalf("location = %s %q", rec.AttendanceLocationID, rec.AttendanceLocationName)
	}
	if *res.Distance != 0 {
		t.Fatalf("distance = %v, want 0", *res.Distance)
	}
	if n := f.store.countRecords(); n != 1 {
		t.Fatalf("records = %d, want 1", n)
	}
	if s := f.workerStatus(); s != staffModel.StaffStatusIn {
		t.Fatalf("worker status = %q, want in", s)
	}
	if ev := f.recorder.last(); ev.Outcome != events.OutcomeAccepted || ev.RecordID != rec.AttendanceID {
		t.Fatalf("audit event = %+v", ev)
	}
}

func TestSecondClockInSameDayRejected(t *testing.T) {
	f := newFixture(t)

	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("first clock in: %v", err)
	}
	_, err := f.clockIn(t, at(11, 0), reported(salonLat, salonLng))
	if !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("want ALREADY_CLOCKED_IN, got %v", err)
	}

	// still rejected after the day's session is closed
	if _, err := f.clockOut(t, at(21, 5), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if _, err := f.clockIn(t, at(21, 10), reported(salonLat, salonLng)); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("want ALREADY_CLOCKED_IN after close, got %v", err)
	}
	if n := f.store.countRecords(); n != 1 {
		t.Fatalf("records = %d, want 1", n)
	}
}

func TestClockInNextDayAllowed(t *testing.T) {
	f := newFixture(t)

	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("day one: %v", err)
	}
	if _, err := f.clockIn(t, at(9, 0).AddDate(0, 0, 1), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("day two: %v", err)
	}
	if n := f.store.countRecords(); n != 2 {
		t.Fatalf("records = %d, want 2", n)
	}
}

func TestClockOutWithoutSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.clockOut(t, at(18, 0), reported(salonLat, salonLng))
	if !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("want NO_OPEN_SESSION, got %v", err)
	}
	if n := f.store.countRecords(); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
}

func TestClockOutClosesOnce(t *testing.T) {
	f := newFixture(t)

	if _, err := f.clockIn(t, at(9, 45), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	res, err := f.clockOut(t, at(21, 1), reported(salonLat, salonLng))
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	rec := res.Record
	if rec.AttendanceStatus != attendanceModel.StatusCompleted || rec.IsOpen() {
		t.Fatalf("record not completed: %+v", rec)
	}
	if !rec.AttendanceTimeOut.After(rec.AttendanceTimeIn) {
		t.Fatalf("time out %v not after time in %v", rec.AttendanceTimeOut, rec.AttendanceTimeIn)
	}
	if rec.AttendanceClockOutStatus == nil || *rec.AttendanceClockOutStatus != attendanceModel.ClockOutOnTime {
		t.Fatalf("clock out status = %v", rec.AttendanceClockOutStatus)
	}
	if s := f.workerStatus(); s != staffModel.StaffStatusOut {
		t.Fatalf("worker status = %q, want out", s)
	}

	if _, err := f.clockOut(t, at(21, 30), reported(salonLat, salonLng)); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("second clock out: want NO_OPEN_SESSION, got %v", err)
	}
}

func TestClockOutOutOfRangeKeepsSessionOpen(t *testing.T) {
	f := newFixture(t)

	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if _, err := f.clockOut(t, at(19, 0), reported(9.0345, salonLng)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("want OUT_OF_RANGE, got %v", err)
	}
	open, err := f.store.FindOpenSession(context.Background(), f.worker, "2024-03-11")
	if err != nil || !open.IsOpen() {
		t.Fatalf("session should still be open: %v", err)
	}
}

func TestClockOutWithoutPositionSkipsGeofence(t *testing.T) {
	f := newFixture(t)

	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	res, err := f.clockOut(t, at(20, 0), nil)
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if res.Distance != nil || res.Record.AttendanceClockOutLatitude != nil {
		t.Fatalf("no coordinates expected, got %+v", res.Record)
	}
	if *res.Record.AttendanceClockOutStatus != attendanceModel.ClockOutLeftEarly {
		t.Fatalf("clock out status = %q, want left-early", *res.Record.AttendanceClockOutStatus)
	}
}

func TestPunctualityBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		in, out time.Time
		wantIn  string
		wantOut string
	}{
		{"early and left early", at(9, 29), at(20, 59), attendanceModel.ClockInEarly, attendanceModel.ClockOutLeftEarly},
		{"late and on time", at(9, 31), at(21, 1), attendanceModel.ClockInLate, attendanceModel.ClockOutOnTime},
		{"exact thresholds", at(9, 30), at(21, 0), attendanceModel.ClockInLate, attendanceModel.ClockOutOnTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in, err := f.clockIn(t, tc.in, reported(salonLat, salonLng))
			if err != nil {
				t.Fatalf("clock in: %v", err)
			}
			if in.Record.AttendanceClockInStatus != tc.wantIn {
				t.Fatalf("clock in status = %q, want %q", in.Record.AttendanceClockInStatus, tc.wantIn)
			}
			out, err := f.clockOut(t, tc.out, reported(salonLat, salonLng))
			if err != nil {
				t.Fatalf("clock out: %v", err)
			}
			if got := *out.Record.AttendanceClockOutStatus; got != tc.wantOut {
				t.Fatalf("clock out status = %q, want %q", got, tc.wantOut)
			}
		})
	}
}

func TestClockInNoActiveLocation(t *testing.T) {
	f := newFixture(t)
	f.store.locations[0].LocationIsActive = false

	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); !errors.Is(err, ErrNoActiveLocation) {
		t.Fatalf("want NO_ACTIVE_LOCATION, got %v", err)
	}

	f.store.locations[0].LocationIsActive = true
	f.store.locations[0].LocationMaxDistance = 0
	if _, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng)); !errors.Is(err, ErrNoActiveLocation) {
		t.Fatalf("zero radius: want NO_ACTIVE_LOCATION, got %v", err)
	}

	missing := uuid.New()
	_, err := f.svc.ClockIn(context.Background(), ClockInInput{WorkerID: f.worker, LocationID: &missing, Positioner: reported(salonLat, salonLng), Now: at(9, 0)})
	if !errors.Is(err, ErrNoActiveLocation) {
		t.Fatalf("unknown location: want NO_ACTIVE_LOCATION, got %v", err)
	}
}

func TestClockInPicksNearestLocation(t *testing.T) {
	f := newFixture(t)
	far := locationModel.LocationModel{
		LocationID:          uuid.New(),
		LocationName:        "Lekki Branch",
		LocationLatitude:    6.4474,
		LocationLongitude:   3.4723,
		LocationMaxDistance: 150,
		LocationIsActive:    true,
	}
	f.store.locations = append([]locationModel.LocationModel{far}, f.store.locations...)

	res, err := f.clockIn(t, at(9, 0), reported(9.0336, salonLng))
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if res.Location.LocationID != f.salon {
		t.Fatalf("picked %q, want the nearest branch", res.Location.LocationName)
	}
}

func TestClockInLocationUnavailable(t *testing.T) {
	f := newFixture(t)

	cases := map[string]geo.Positioner{
		"permission denied": geo.ReportedPosition{ErrorCode: "permission_denied"},
		"no coordinates":    geo.ReportedPosition{},
		"nil positioner":    nil,
	}
	for name, pos := range cases {
		if _, err := f.clockIn(t, at(9, 0), pos); !errors.Is(err, ErrLocationUnavailable) {
			t.Fatalf("%s: want LOCATION_UNAVAILABLE, got %v", name, err)
		}
	}
	if n := f.store.countRecords(); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
}

type stuckPositioner struct{}

func (stuckPositioner) CurrentPosition(ctx context.Context) (geo.Position, error) {
	<-ctx.Done()
	return geo.Position{}, ctx.Err()
}

func TestClockInPositionTimeout(t *testing.T) {
	f := newFixture(t)
	policy := testPolicy()
	policy.LocationTimeout = 20 * time.Millisecond
	f.svc = New(f.store, f.recorder, policy)

	_, err := f.clockIn(t, at(9, 0), stuckPositioner{})
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("want LOCATION_UNAVAILABLE, got %v", err)
	}
	var pe *geo.PositionError
	if !errors.As(err, &pe) || pe.Code != geo.Timeout {
		t.Fatalf("want wrapped TIMEOUT position error, got %v", err)
	}
}

func TestClockInCancelledByCaller(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.ClockIn(ctx, ClockInInput{WorkerID: f.worker, Positioner: stuckPositioner{}, Now: at(9, 0)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if n := f.store.countRecords(); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
}

func TestClockInStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.failWith = errors.New("connection refused")

	_, err := f.clockIn(t, at(9, 0), reported(salonLat, salonLng))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want STORE_UNAVAILABLE, got %v", err)
	}
	if n := f.store.countRecords(); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
}

func TestClockInUnknownWorker(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ClockIn(context.Background(), ClockInInput{WorkerID: uuid.New(), Positioner: reported(salonLat, salonLng), Now: at(9, 0)})
	if !errors.Is(err, ErrWorkerUnknown) {
		t.Fatalf("want ErrWorkerUnknown, got %v", err)
	}
}

func TestWorkerForUser(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	f.store.workers[f.worker].StaffUserID = &userID

	w, err := f.svc.WorkerForUser(context.Background(), userID)
	if err != nil || w.StaffID != f.worker {
		t.Fatalf("WorkerForUser = %v, %v", w, err)
	}
	if _, err := f.svc.WorkerForUser(context.Background(), uuid.New()); !errors.Is(err, ErrWorkerUnknown) {
		t.Fatalf("want ErrWorkerUnknown, got %v", err)
	}
}
