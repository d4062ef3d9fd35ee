package lineitem

import (
	"context"
)

// Repository defines the interface for line item data access
type Repository interface {
	Create(ctx context.Context, item *LineItem) error
	Get(ctx context.Context, id string) (*LineItem, error)
	List(ctx context.Context) ([]*LineItem, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*LineItem, error)
	Update(ctx context.Context, item *LineItem) error
	Delete(ctx context.Context, id string) error
}
