package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salonku_backend/internals/features/staff/model"
	helper "salonku_backend/internals/helpers"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStaffApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&model.StaffModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctl := NewStaffController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if u := c.Get("X-Test-User"); u != "" {
			c.Locals(helper.LocUserID, u)
		}
		return c.Next()
	})
	app.Get("/u/staff/me", ctl.Me)
	app.Get("/u/staff/status", ctl.StatusBoard)
	app.Get("/a/staff", ctl.List)
	app.Post("/a/staff", ctl.Create)
	app.Get("/a/staff/:id", ctl.GetByID)
	app.Patch("/a/staff/:id", ctl.Update)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, user, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

func TestCreateStaffValidation(t *testing.T) {
	app, _ := newStaffApp(t)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown role", `{"staff_name":"Ada","staff_role":"Manager"}`, "staff_role"},
		{"lowercase role", `{"staff_name":"Ada","staff_role":"barber"}`, "staff_role"},
		{"missing name", `{"staff_role":"Barber"}`, "staff_name"},
		{"bad email", `{"staff_name":"Ada","staff_role":"Stylist","staff_email":"ada-at-salon"}`, "staff_email"},
		{"bad user id", `{"staff_name":"Ada","staff_role":"Stylist","staff_user_id":"42"}`, "staff_user_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/a/staff", "", tc.body)
			if status != fiber.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422 (body %v)", status, body)
			}
			errs, _ := body["errors"].(map[string]any)
			if _, ok := errs[tc.field]; !ok {
				t.Fatalf("errors = %v, want %s", body["errors"], tc.field)
			}
		})
	}
}

func TestCreateAndUpdateStaff(t *testing.T) {
	app, _ := newStaffApp(t)
	userID := uuid.New()

	status, body := doJSON(t, app, "POST", "/a/staff", "",
		`{"staff_name":" Ada ","staff_role":"Stylist","staff_email":"ada@salon.ng","staff_user_id":"`+userID.String()+`"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d (body %v)", status, body)
	}
	created := body["data"].(map[string]any)
	if created["staff_name"] != "Ada" || created["staff_status"] != model.StaffStatusOut {
		t.Fatalf("created = %v", created)
	}
	id := created["staff_id"].(string)

	if status, body := doJSON(t, app, "PATCH", "/a/staff/"+id, "", `{"staff_role":"Receptionist"}`); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("bad role update = %d (body %v)", status, body)
	}

	// status is not part of the update payload and must stay untouched
	status, body = doJSON(t, app, "PATCH", "/a/staff/"+id, "", `{"staff_role":"Barber","staff_name":" Ada Obi ","staff_status":"in"}`)
	if status != fiber.StatusOK {
		t.Fatalf("update status = %d (body %v)", status, body)
	}
	updated := body["data"].(map[string]any)
	if updated["staff_role"] != model.StaffRoleBarber || updated["staff_name"] != "Ada Obi" || updated["staff_status"] != model.StaffStatusOut {
		t.Fatalf("updated = %v", updated)
	}

	status, body = doJSON(t, app, "GET", "/u/staff/me", userID.String(), "")
	if status != fiber.StatusOK || body["data"].(map[string]any)["staff_id"] != id {
		t.Fatalf("me = %d %v", status, body)
	}
	if status, _ := doJSON(t, app, "GET", "/u/staff/me", uuid.NewString(), ""); status != fiber.StatusNotFound {
		t.Fatalf("unlinked me = %d, want 404", status)
	}
	if status, _ := doJSON(t, app, "GET", "/u/staff/me", "", ""); status != fiber.StatusUnauthorized {
		t.Fatalf("anonymous me = %d, want 401", status)
	}
	if status, _ := doJSON(t, app, "PATCH", "/a/staff/"+uuid.NewString(), "", `{"staff_name":"Ghost"}`); status != fiber.StatusNotFound {
		t.Fatalf("unknown staff update = %d, want 404", status)
	}
}

func TestStatusBoardListsClockedInFirst(t *testing.T) {
	app, db := newStaffApp(t)
	in := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	seed := []model.StaffModel{
		{StaffName: "Ada", StaffRole: model.StaffRoleStylist},
		{StaffName: "Zainab", StaffRole: model.StaffRoleBarber, StaffStatus: model.StaffStatusIn, StaffLastClockIn: &in},
		{StaffName: "Bola", StaffRole: model.StaffRoleBarber},
		{StaffName: "Musa", StaffRole: model.StaffRoleStylist, StaffStatus: model.StaffStatusIn, StaffLastClockIn: &in},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	status, body := doJSON(t, app, "GET", "/u/staff/status", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("status board = %d", status)
	}
	rows := body["data"].([]any)
	var names []string
	for _, r := range rows {
		names = append(names, r.(map[string]any)["staff_name"].(string))
	}
	want := []string{"Musa", "Zainab", "Ada", "Bola"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", names, want)
	}

	status, body = doJSON(t, app, "GET", "/a/staff?status=in&role=Barber", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("list = %d", status)
	}
	if list := body["data"].([]any); len(list) != 1 || list[0].(map[string]any)["staff_name"] != "Zainab" {
		t.Fatalf("filtered list = %v", list)
	}
	if total := body["pagination"].(map[string]any)["total"]; total != 1.0 {
		t.Fatalf("total = %v", total)
	}
	if status, _ := doJSON(t, app, "GET", "/a/staff?status=away", "", ""); status != fiber.StatusBadRequest {
		t.Fatalf("bad status filter = %d, want 400", status)
	}
}
