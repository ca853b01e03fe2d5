package export

import (
	"fmt"
	"io"
	"time"

	"salonku_backend/internals/features/attendance/model"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Attendance"

var registerHeader = []any{
	"Date", "Staff", "Location", "Time In", "Time Out",
	"Status", "Clock-in", "Clock-out", "Distance In (m)", "Auto",
}

var registerWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 12},
	{"B", "C", 24},
	{"D", "E", 10},
}

// WriteRegister renders records as a one-sheet xlsx workbook. Times are shown
// in loc.
func WriteRegister(w io.Writer, records []model.AttendanceRecordModel, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &registerHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return err
	}
	for _, cw := range registerWidths {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			return err
		}
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := registerRow(&records[i], loc)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func registerRow(r *model.AttendanceRecordModel, loc *time.Location) []any {
	timeOut, clockOut := "", ""
	if r.AttendanceTimeOut != nil {
		timeOut = r.AttendanceTimeOut.In(loc).Format("15:04")
	}
	if r.AttendanceClockOutStatus != nil {
		clockOut = *r.AttendanceClockOutStatus
	}
	auto := ""
	if r.AttendanceAutoClockOut {
		auto = "yes"
	}
	return []any{
		r.AttendanceDate,
		r.AttendanceStaffName,
		r.AttendanceLocationName,
		r.AttendanceTimeIn.In(loc).Format("15:04"),
		timeOut,
		r.AttendanceStatus,
		r.AttendanceClockInStatus,
		clockOut,
		fmt.Sprintf("%.1f", r.AttendanceClockInDistance),
		auto,
	}
}

// FileName is the suggested download name for a register covering from..to.
func FileName(from, to string) string {
	if from == to {
		return fmt.Sprintf("attendance_%s.xlsx", from)
	}
	return fmt.Sprintf("attendance_%s_%s.xlsx", from, to)
}
