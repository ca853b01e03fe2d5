package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const DayLayout = "2006-01-02"

// Today is the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DayLayout)
}

// ParseDay accepts YYYY-MM-DD; empty input returns "" without error.
func ParseDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD: "+s)
	}
	return s, nil
}

// DayRange reads ?from= and ?to=. A missing from defaults to days-1 before to,
// a missing to defaults to today in loc.
func DayRange(c *fiber.Ctx, now time.Time, loc *time.Location, days int) (from, to string, err error) {
	if from, err = ParseDay(c.Query("from")); err != nil {
		return "", "", err
	}
	if to, err = ParseDay(c.Query("to")); err != nil {
		return "", "", err
	}
	if to == "" {
		to = Today(now, loc)
	}
	if from == "" {
		end, _ := time.Parse(DayLayout, to)
		from = end.AddDate(0, 0, -(days - 1)).Format(DayLayout)
	}
	if from > to {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "from must not be after to")
	}
	return from, to, nil
}
