package configs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// AttendancePolicy holds the tunables of the clock-in/out gate.
// ShiftStart and ShiftEnd are minutes since local midnight.
type AttendancePolicy struct {
	Location            *time.Location
	ShiftStart          int
	ShiftEnd            int
	LocationTimeout     time.Duration
	StoreTimeout        time.Duration
	AutoClockOutEnabled bool
	AutoClockOutCron    string
}

const (
	defaultSalonTimezone = "Africa/Lagos"
	defaultShiftStart    = "09:30"
	defaultShiftEnd      = "21:00"
)

func DefaultAttendancePolicy() AttendancePolicy {
	loc, err := time.LoadLocation(defaultSalonTimezone)
	if err != nil {
		loc = time.FixedZone("WAT", 60*60)
	}
	start, _ := ParseClock(defaultShiftStart)
	end, _ := ParseClock(defaultShiftEnd)
	return AttendancePolicy{
		Location:            loc,
		ShiftStart:          start,
		ShiftEnd:            end,
		LocationTimeout:     5 * time.Second,
		StoreTimeout:        5 * time.Second,
		AutoClockOutEnabled: true,
		AutoClockOutCron:    "* * * * *",
	}
}

func LoadAttendancePolicy() (AttendancePolicy, error) {
	p := DefaultAttendancePolicy()

	tz := GetEnv("SALON_TIMEZONE", defaultSalonTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return p, fmt.Errorf("SALON_TIMEZONE %q: %w", tz, err)
	}
	p.Location = loc

	if p.ShiftStart, err = ParseClock(GetEnv("SHIFT_START", defaultShiftStart)); err != nil {
		return p, fmt.Errorf("SHIFT_START: %w", err)
	}
	if p.ShiftEnd, err = ParseClock(GetEnv("SHIFT_END", defaultShiftEnd)); err != nil {
		return p, fmt.Errorf("SHIFT_END: %w", err)
	}
	if p.ShiftEnd <= p.ShiftStart {
		return p, fmt.Errorf("SHIFT_END must be after SHIFT_START")
	}

	p.LocationTimeout = GetEnvDuration("LOCATION_TIMEOUT", p.LocationTimeout)
	p.StoreTimeout = GetEnvDuration("STORE_TIMEOUT", p.StoreTimeout)
	p.AutoClockOutEnabled = GetEnvBool("AUTO_CLOCKOUT_ENABLED", p.AutoClockOutEnabled)
	p.AutoClockOutCron = GetEnv("AUTO_CLOCKOUT_CRON", p.AutoClockOutCron)
	return p, nil
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
