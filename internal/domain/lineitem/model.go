package lineitem

import (
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem links an externally owned invoice and catalog item with a
// quantity and a price snapshot. It is the only entity this service owns.
//
// InvoiceID and CatalogItemID are weak references: plain identifiers checked
// against the owning services at mutation time, never foreign keys.
type LineItem struct {
	// ID is the unique identifier for the line item
	ID string `db:"id" json:"id"`

	// InvoiceID references the invoice this line item belongs to
	InvoiceID string `db:"invoice_id" json:"invoice_id"`

	// CatalogItemID references the catalog item being billed
	CatalogItemID string `db:"catalog_item_id" json:"catalog_item_id"`

	// Quantity of the catalog item; intentionally unconstrained
	Quantity int `db:"quantity" json:"quantity"`

	// UnitPrice is the catalog price captured at create/update time.
	// It is never re-derived from the catalog on reads.
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`

	// Subtotal is always Quantity * UnitPrice, recomputed on every write
	Subtotal decimal.Decimal `db:"subtotal" json:"subtotal"`

	types.BaseModel
}

// ComputeSubtotal returns quantity * unitPrice
func ComputeSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
