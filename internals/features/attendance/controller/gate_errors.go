package controller

import (
	"context"
	"errors"
	"log"

	"salonku_backend/internals/features/attendance/service"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

var gateStatus = map[service.Kind]int{
	service.KindOutOfRange:          fiber.StatusForbidden,
	service.KindAlreadyClockedIn:    fiber.StatusConflict,
	service.KindNoOpenSession:       fiber.StatusConflict,
	service.KindLocationUnavailable: fiber.StatusUnprocessableEntity,
	service.KindNoActiveLocation:    fiber.StatusPreconditionFailed,
	service.KindStoreUnavailable:    fiber.StatusServiceUnavailable,
}

// writeGateError renders a clock-in/out failure. Kind becomes error_code.
func writeGateError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrWorkerUnknown) {
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "NOT_STAFF", "your account is not linked to a staff profile", nil)
	}

	// A GateError keeps its own Kind even when the cause is a store or
	// position deadline; only a bare context error means the caller left.
	var ge *service.GateError
	if !errors.As(err, &ge) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return helper.JsonErrorCode(c, fiber.StatusRequestTimeout, "REQUEST_CANCELLED", "request was cancelled before it completed", nil)
		}
		log.Printf("[ATTENDANCE] unexpected error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal error")
	}
	status, ok := gateStatus[ge.Kind]
	if !ok {
		status = fiber.StatusBadRequest
	}
	if ge.Kind == service.KindStoreUnavailable {
		log.Printf("[ATTENDANCE] store unavailable: %v", ge.Err)
	}

	var extra fiber.Map
	if ge.Distance != nil && ge.MaxDistance != nil {
		extra = fiber.Map{
			"distance_meters":     *ge.Distance,
			"max_distance_meters": *ge.MaxDistance,
		}
	}
	msg := ge.Message
	if msg == "" {
		msg = string(ge.Kind)
	}
	return helper.JsonErrorCode(c, status, string(ge.Kind), msg, extra)
}
