package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/features/attendance/service"
	"salonku_backend/internals/helpers/mailer"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

type Sweeper interface {
	AutoClockOut(ctx context.Context, now time.Time) (*service.SweepReport, error)
}

// StartAutoClockOutCron schedules the sweep with policy.AutoClockOutCron in the
// salon's zone. sender may be nil; adminEmail empty disables the summary mail.
// The returned cron is already started; Stop it on shutdown.
func StartAutoClockOutCron(svc Sweeper, policy configs.AttendancePolicy, sender mailer.Sender, adminEmail string) (*cron.Cron, error) {
	loc := policy.Location
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(policy.AutoClockOutCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		runOnce(ctx, svc, sender, adminEmail, time.Now(), loc)
	})
	if err != nil {
		return nil, fmt.Errorf("add auto clock-out cron %q: %w", policy.AutoClockOutCron, err)
	}

	log.Printf("[AUTO-CLOCKOUT] started schedule=%q zone=%s shift_end=%s",
		policy.AutoClockOutCron, loc, configs.FormatClock(policy.ShiftEnd))
	c.Start()
	return c, nil
}

func runOnce(ctx context.Context, svc Sweeper, sender mailer.Sender, to string, now time.Time, loc *time.Location) *service.SweepReport {
	report, err := svc.AutoClockOut(ctx, now)
	if err != nil {
		log.Printf("[AUTO-CLOCKOUT] sweep error: %v", err)
		return nil
	}
	if report == nil || report.Skipped || len(report.Closed) == 0 {
		return report
	}
	if sender == nil || strings.TrimSpace(to) == "" {
		return report
	}

	msg := mailer.Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Auto clock-out: %d session(s) closed", len(report.Closed)),
		HTML:    summaryHTML(report, loc),
	}
	if err := sender.Send(msg); err != nil {
		log.Printf("[AUTO-CLOCKOUT] summary mail failed: %v", err)
	}
	return report
}

func summaryHTML(r *service.SweepReport, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("<p>The following staff were clocked out automatically:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Staff</th><th>Day</th><th>Clocked out</th></tr>")
	for _, s := range r.Closed {
		note := ""
		if s.Stale {
			note = " (left open from an earlier day)"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s%s</td><td>%s</td></tr>",
			html.EscapeString(s.StaffName), s.Day, note, s.TimeOut.In(loc).Format("15:04"))
	}
	b.WriteString("</table>")
	if r.Failed > 0 {
		fmt.Fprintf(&b, "<p>%d session(s) could not be closed and will be retried.</p>", r.Failed)
	}
	return b.String()
}
