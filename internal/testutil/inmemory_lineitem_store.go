package testutil

import (
	"context"
	"sort"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	"github.com/samber/lo"
)

// InMemoryLineItemStore implements lineitem.Repository
type InMemoryLineItemStore struct {
	*InMemoryStore[*lineitem.LineItem]
}

// NewInMemoryLineItemStore creates a new in-memory line item store
func NewInMemoryLineItemStore() *InMemoryLineItemStore {
	return &InMemoryLineItemStore{
		InMemoryStore: NewInMemoryStore[*lineitem.LineItem](),
	}
}

// Helper to copy line item
func copyLineItem(item *lineitem.LineItem) *lineitem.LineItem {
	if item == nil {
		return nil
	}

	copied := *item
	return &copied
}

func (s *InMemoryLineItemStore) Create(ctx context.Context, item *lineitem.LineItem) error {
	return s.InMemoryStore.Create(ctx, item.ID, copyLineItem(item))
}

func (s *InMemoryLineItemStore) Get(ctx context.Context, id string) (*lineitem.LineItem, error) {
	item, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyLineItem(item), nil
}

func (s *InMemoryLineItemStore) List(ctx context.Context) ([]*lineitem.LineItem, error) {
	items := s.InMemoryStore.List(ctx, nil)
	return sortedCopies(items), nil
}

func (s *InMemoryLineItemStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*lineitem.LineItem, error) {
	items := s.InMemoryStore.List(ctx, func(_ context.Context, item *lineitem.LineItem) bool {
		return item.InvoiceID == invoiceID
	})
	return sortedCopies(items), nil
}

func (s *InMemoryLineItemStore) Update(ctx context.Context, item *lineitem.LineItem) error {
	return s.InMemoryStore.Update(ctx, item.ID, copyLineItem(item))
}

func (s *InMemoryLineItemStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func sortedCopies(items []*lineitem.LineItem) []*lineitem.LineItem {
	copies := lo.Map(items, func(item *lineitem.LineItem, _ int) *lineitem.LineItem {
		return copyLineItem(item)
	})
	sort.Slice(copies, func(i, j int) bool {
		if copies[i].CreatedAt.Equal(copies[j].CreatedAt) {
			return copies[i].ID < copies[j].ID
		}
		return copies[i].CreatedAt.Before(copies[j].CreatedAt)
	})
	return copies
}
