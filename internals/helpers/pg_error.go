package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// SQLState extracts the Postgres error code from pgx or lib/pq errors.
func SQLState(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return SQLState(err) == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return SQLState(err) == pgForeignKeyViolation
}

// MapPGError turns constraint failures into client errors; everything else is a 500.
func MapPGError(err error) (int, string) {
	switch SQLState(err) {
	case pgUniqueViolation:
		return fiber.StatusConflict, "duplicate data (unique violation)"
	case pgForeignKeyViolation:
		return fiber.StatusBadRequest, "referenced row not found"
	case pgCheckViolation:
		return fiber.StatusBadRequest, "value rejected by a check constraint"
	}
	return fiber.StatusInternalServerError, err.Error()
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
