package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Position struct {
	Coordinates
	Accuracy float64 `json:"accuracy"`
}

// PositionErrorCode mirrors what a device positioning API reports.
type PositionErrorCode string

const (
	PermissionDenied    PositionErrorCode = "PERMISSION_DENIED"
	Timeout             PositionErrorCode = "TIMEOUT"
	PositionUnavailable PositionErrorCode = "POSITION_UNAVAILABLE"
)

type PositionError struct {
	Code PositionErrorCode
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("position %s: %v", strings.ToLower(string(e.Code)), e.Err)
	}
	return "position " + strings.ToLower(string(e.Code))
}

func (e *PositionError) Unwrap() error { return e.Err }

// Positioner is a one-shot position request.
type Positioner interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Locate asks p for a position and waits at most timeout. A deadline hit is
// reported as a TIMEOUT PositionError; cancellation of ctx itself is returned
// unchanged so callers can tell "user went away" from "device too slow".
func Locate(ctx context.Context, p Positioner, timeout time.Duration) (Position, error) {
	if p == nil {
		return Position{}, &PositionError{Code: PositionUnavailable}
	}
	lctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		lctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		pos Position
		err error
	}
	done := make(chan result, 1)
	go func() {
		pos, err := p.CurrentPosition(lctx)
		done <- result{pos, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			var pe *PositionError
			if errors.As(r.err, &pe) {
				return Position{}, pe
			}
			if errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
				return Position{}, &PositionError{Code: Timeout, Err: r.err}
			}
			if ctx.Err() != nil {
				return Position{}, ctx.Err()
			}
			return Position{}, &PositionError{Code: PositionUnavailable, Err: r.err}
		}
		if !ValidCoordinates(r.pos.Coordinates) {
			return Position{}, &PositionError{Code: PositionUnavailable, Err: fmt.Errorf("invalid coordinates %v,%v", r.pos.Latitude, r.pos.Longitude)}
		}
		return r.pos, nil
	case <-lctx.Done():
		if ctx.Err() != nil {
			return Position{}, ctx.Err()
		}
		return Position{}, &PositionError{Code: Timeout, Err: lctx.Err()}
	}
}

// ReportedPosition is the position a client already acquired on the device
// and sent along with the request, or the error its positioning API gave.
type ReportedPosition struct {
	Latitude  *float64
	Longitude *float64
	Accuracy  float64
	ErrorCode string
}

func (r ReportedPosition) CurrentPosition(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if code := strings.ToUpper(strings.TrimSpace(r.ErrorCode)); code != "" {
		switch PositionErrorCode(code) {
		case PermissionDenied, Timeout:
			return Position{}, &PositionError{Code: PositionErrorCode(code)}
		default:
			return Position{}, &PositionError{Code: PositionUnavailable}
		}
	}
	if r.Latitude == nil || r.Longitude == nil {
		return Position{}, &PositionError{Code: PositionUnavailable, Err: errors.New("no coordinates reported")}
	}
	return Position{
		Coordinates: Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude},
		Accuracy:    r.Accuracy,
	}, nil
}
