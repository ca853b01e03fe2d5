package dto

import (
	"strings"
	"time"

	"salonku_backend/internals/features/inventory/model"

	"github.com/google/uuid"
)

type CreateInventoryItemRequest struct {
	Name     string  `json:"name" validate:"required,max=150"`
	Unit     *string `json:"unit" validate:"omitempty,max=30"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

func (r *CreateInventoryItemRequest) ToModel() *model.InventoryItemModel {
	return &model.InventoryItemModel{
		InventoryItemName:     strings.TrimSpace(r.Name),
		InventoryItemUnit:     trimPtr(r.Unit),
		InventoryItemQuantity: r.Quantity,
	}
}

// UpdateInventoryItemRequest sets the quantity outright, e.g. after a restock count.
type UpdateInventoryItemRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=150"`
	Unit     *string `json:"unit" validate:"omitempty,max=30"`
	Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
}

func (r *UpdateInventoryItemRequest) Updates() map[string]any {
	up := map[string]any{}
	if r.Name != nil {
		up["inventory_item_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Unit != nil {
		up["inventory_item_unit"] = trimPtr(r.Unit)
	}
	if r.Quantity != nil {
		up["inventory_item_quantity"] = *r.Quantity
	}
	return up
}

type UseInventoryItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type InventoryItemResponse struct {
	InventoryItemID uuid.UUID  `json:"inventory_item_id"`
	Name            string     `json:"name"`
	Unit            *string    `json:"unit,omitempty"`
	Quantity        int        `json:"quantity"`
	LastUsed        *time.Time `json:"last_used"`
	LastUsedBy      *string    `json:"last_used_by"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromModel(m *model.InventoryItemModel) InventoryItemResponse {
	return InventoryItemResponse{
		InventoryItemID: m.InventoryItemID,
		Name:            m.InventoryItemName,
		Unit:            m.InventoryItemUnit,
		Quantity:        m.InventoryItemQuantity,
		LastUsed:        m.InventoryItemLastUsed,
		LastUsedBy:      m.InventoryItemLastUsedBy,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromModels(rows []model.InventoryItemModel) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
