package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"salonku_backend/internals/features/attendance/events"
	attendanceModel "salonku_backend/internals/features/attendance/model"
	locationModel "salonku_backend/internals/features/locations/model"
	staffModel "salonku_backend/internals/features/staff/model"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu        sync.Mutex
	locations []locationModel.LocationModel
	workers   map[uuid.UUID]*staffModel.StaffModel
	records   map[string]*attendanceModel.AttendanceRecordModel
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workers: map[uuid.UUID]*staffModel.StaffModel{},
		records: map[string]*attendanceModel.AttendanceRecordModel{},
	}
}

func (f *fakeStore) ListActiveLocations(context.Context) ([]locationModel.LocationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []locationModel.LocationModel
	for _, l := range f.locations {
		if l.LocationIsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FindLocationByID(_ context.Context, id uuid.UUID) (*locationModel.LocationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.locations {
		if f.locations[i].LocationID == id {
			l := f.locations[i]
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) FindWorkerByID(_ context.Context, id uuid.UUID) (*staffModel.StaffModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workers[id]
	if !ok {
		return nil, ErrWorkerUnknown
	}
	cp := *w
	return &cp, nil
}

func (f *fakeStore) FindWorkerByUserID(_ context.Context, userID uuid.UUID) (*staffModel.StaffModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workers {
		if w.StaffUserID != nil && *w.StaffUserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, ErrWorkerUnknown
}

func (f *fakeStore) ListWorkersClockedIn(context.Context) ([]staffModel.StaffModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []staffModel.StaffModel
	for _, w := range f.workers {
		if w.StaffStatus == staffModel.StaffStatusIn {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffName < out[j].StaffName })
	return out, nil
}

func (f *fakeStore) MarkWorkerOut(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.workers[id]; ok {
		w.StaffStatus = staffModel.StaffStatusOut
		w.StaffLastClockOut = &at
	}
	return nil
}

func (f *fakeStore) OpenSession(_ context.Context, rec *attendanceModel.AttendanceRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, exists := f.records[rec.AttendanceID]; exists {
		return ErrDayTaken
	}
	cp := *rec
	f.records[rec.AttendanceID] = &cp
	if w, ok := f.workers[rec.AttendanceStaffID]; ok {
		t := rec.AttendanceTimeIn
		w.StaffStatus = staffModel.StaffStatusIn
		w.StaffLastClockIn = &t
	}
	return nil
}

func (f *fakeStore) FindOpenSession(_ context.Context, staffID uuid.UUID, day string) (*attendanceModel.AttendanceRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[attendanceModel.DayKey(staffID, day)]
	if !ok || !rec.IsOpen() {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) ListOpenSessions(context.Context) ([]attendanceModel.AttendanceRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []attendanceModel.AttendanceRecordModel
	for _, rec := range f.records {
		if rec.IsOpen() {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttendanceDate != out[j].AttendanceDate {
			return out[i].AttendanceDate < out[j].AttendanceDate
		}
		return out[i].AttendanceTimeIn.Before(out[j].AttendanceTimeIn)
	})
	return out, nil
}

func (f *fakeStore) CloseSession(_ context.Context, recordID string, c CloseFields) (*attendanceModel.AttendanceRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	rec, ok := f.records[recordID]
	if !ok || !rec.IsOpen() {
		return nil, ErrSessionClosed
	}
	t := c.TimeOut
	status := c.ClockOutStatus
	rec.AttendanceTimeOut = &t
	rec.AttendanceStatus = attendanceModel.StatusCompleted
	rec.AttendanceClockOutStatus = &status
	rec.AttendanceLocationID = c.LocationID
	rec.AttendanceLocationName = c.LocationName
	rec.AttendanceClockOutLatitude = c.Latitude
	rec.AttendanceClockOutLongitude = c.Longitude
	rec.AttendanceClockOutDistance = c.Distance
	rec.AttendanceAutoClockOut = c.Auto
	if w, ok := f.workers[rec.AttendanceStaffID]; ok {
		w.StaffStatus = staffModel.StaffStatusOut
		w.StaffLastClockOut = &t
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) countRecords() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type memRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *memRecorder) Record(_ context.Context, ev events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memRecorder) Recent(context.Context, events.Filter, int) ([]events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.events...), nil
}

func (m *memRecorder) last() events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[len(m.events)-1]
}
