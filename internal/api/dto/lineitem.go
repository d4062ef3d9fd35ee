package dto

import (
	"time"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/types"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest creates a line item against an existing invoice and
// catalog item. Quantity carries no sign constraint; rejecting zero or
// negative quantities is left to callers that want it.
type CreateLineItemRequest struct {
	InvoiceID     string `json:"invoice_id" validate:"required"`
	CatalogItemID string `json:"catalog_item_id" validate:"required"`
	Quantity      int    `json:"quantity"`
}

// UpdateLineItemRequest replaces the references and quantity of an existing
// line item. The unit price is re-snapshotted from the current catalog price.
type UpdateLineItemRequest struct {
	InvoiceID     string `json:"invoice_id" validate:"required"`
	CatalogItemID string `json:"catalog_item_id" validate:"required"`
	Quantity      int    `json:"quantity"`
}

// LineItemResponse combines the line item with the invoice and catalog
// snapshots resolved while handling the request.
type LineItemResponse struct {
	ID          string            `json:"id"`
	Invoice     *invoice.Snapshot `json:"invoice"`
	CatalogItem *catalog.Snapshot `json:"catalog_item"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (r *CreateLineItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateLineItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToLineItem builds a new line item with the unit price snapshotted from the
// catalog at creation time.
func (r *CreateLineItemRequest) ToLineItem(unitPrice decimal.Decimal) *lineitem.LineItem {
	return &lineitem.LineItem{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		InvoiceID:     r.InvoiceID,
		CatalogItemID: r.CatalogItemID,
		Quantity:      r.Quantity,
		UnitPrice:     unitPrice,
		Subtotal:      lineitem.ComputeSubtotal(r.Quantity, unitPrice),
		BaseModel:     types.GetDefaultBaseModel(),
	}
}

// NewLineItemResponse assembles the response from the line item and the
// snapshots fetched during the operation.
func NewLineItemResponse(item *lineitem.LineItem, inv *invoice.Snapshot, cat *catalog.Snapshot) *LineItemResponse {
	return &LineItemResponse{
		ID:          item.ID,
		Invoice:     inv,
		CatalogItem: cat,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
