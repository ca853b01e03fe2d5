package service

import (
	"time"

	"salonku_backend/internals/features/attendance/model"
)

func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func ClassifyClockIn(minutes, shiftStart int) string {
	if minutes < shiftStart {
		return model.ClockInEarly
	}
	return model.ClockInLate
}

func ClassifyClockOut(minutes, shiftEnd int) string {
	if minutes < shiftEnd {
		return model.ClockOutLeftEarly
	}
	return model.ClockOutOnTime
}
