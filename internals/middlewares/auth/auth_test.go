package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"salonku_backend/internals/constants"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})
	app.Use(AuthJWT(AuthJWTOpts{Secret: testSecret}))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String() + " " + helper.GetUserRole(c))
	})
	app.Get("/admin", OnlyRoles(constants.RoleErrorAdmin("this"), constants.AdminOnly...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp()
	uid := uuid.New()

	staff, err := helper.GenerateAccessToken(testSecret, uid, constants.RoleStaff, "Tunde", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expired, _ := helper.GenerateAccessToken(testSecret, uid, constants.RoleStaff, "Tunde", -time.Minute)
	forged, _ := helper.GenerateAccessToken("other", uid, constants.RoleStaff, "Tunde", time.Hour)
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": uid.String(), "role": "admin"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", staff, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"expired", expired, fiber.StatusUnauthorized},
		{"wrong secret", forged, fiber.StatusUnauthorized},
		{"alg none", unsigned, fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := do(t, app, "/me", tt.token); got != tt.want {
				t.Fatalf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOnlyRoles(t *testing.T) {
	app := newApp()
	uid := uuid.New()

	staff, _ := helper.GenerateAccessToken(testSecret, uid, constants.RoleStaff, "Tunde", time.Hour)
	admin, _ := helper.GenerateAccessToken(testSecret, uid, constants.RoleAdmin, "Ngozi", time.Hour)

	if got := do(t, app, "/admin", staff); got != fiber.StatusForbidden {
		t.Fatalf("staff on admin route = %d, want 403", got)
	}
	if got := do(t, app, "/admin", admin); got != fiber.StatusNoContent {
		t.Fatalf("admin on admin route = %d, want 204", got)
	}
}
