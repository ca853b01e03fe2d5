package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salonku_backend/internals/features/inventory/model"
	helper "salonku_backend/internals/helpers"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
	if err := db.AutoMigrate(&model.InventoryItemModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctl := NewInventoryController(db)
	ctl.Now = func() time.Time { return time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC) }

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserName, "Tunde")
		return c.Next()
	})
	app.Post("/inventory/:id/use", ctl.Use)
	return app, db
}

func postUse(t *testing.T, app *fiber.App, id, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/inventory/"+id+"/use", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
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

func TestUseDecrementsStock(t *testing.T) {
	app, db := newTestApp(t)
	item := model.InventoryItemModel{InventoryItemName: "Clippers oil", InventoryItemQuantity: 5}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	status, body := postUse(t, app, item.InventoryItemID.String(), `{"quantity":2}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["quantity"].(float64) != 3 || data["last_used_by"] != "Tunde" {
		t.Fatalf("data = %v", data)
	}
}

func TestUseRejectsInsufficientStock(t *testing.T) {
	app, db := newTestApp(t)
	item := model.InventoryItemModel{InventoryItemName: "Shampoo", InventoryItemQuantity: 1}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	status, body := postUse(t, app, item.InventoryItemID.String(), `{"quantity":2}`)
	if status != fiber.StatusConflict || body["error_code"] != "CONFLICT" {
		t.Fatalf("status = %d body=%v", status, body)
	}

	var got model.InventoryItemModel
	if err := db.First(&got, "inventory_item_id = ?", item.InventoryItemID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.InventoryItemQuantity != 1 || got.InventoryItemLastUsed != nil {
		t.Fatalf("stock changed on rejected use: %+v", got)
	}
}

func TestUseUnknownItemAndBadBody(t *testing.T) {
	app, _ := newTestApp(t)

	if status, _ := postUse(t, app, "6f1c1d8e-2f7a-4a39-9d51-1b2f3e4d5c6b", `{"quantity":1}`); status != fiber.StatusNotFound {
		t.Fatalf("unknown item status = %d", status)
	}
	if status, body := postUse(t, app, "6f1c1d8e-2f7a-4a39-9d51-1b2f3e4d5c6b", `{"quantity":0}`); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("zero quantity status = %d body=%v", status, body)
	}
	if status, _ := postUse(t, app, "not-a-uuid", `{"quantity":1}`); status != fiber.StatusBadRequest {
		t.Fatalf("bad id status = %d", status)
	}
}
