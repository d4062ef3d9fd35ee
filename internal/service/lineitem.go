package service

import (
	"context"
	"time"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api/dto"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/shopspring/decimal"
)

// LineItemService orchestrates line item lifecycle across the invoice and
// catalog service boundaries. It owns the line item record; invoice and
// catalog state is only read, plus signed total deltas requested against the
// invoice ledger.
//
// The local write and the ledger delta are not transactionally linked: the
// write lands first, and a delta that then fails is logged and dropped. The
// invoice total can therefore drift from the sum of its line items until
// reconciled out of band.
type LineItemService interface {
	CreateLineItem(ctx context.Context, req dto.CreateLineItemRequest) (*dto.LineItemResponse, error)
	UpdateLineItem(ctx context.Context, id string, req dto.UpdateLineItemRequest) (*dto.LineItemResponse, error)
	DeleteLineItem(ctx context.Context, id string) error
	GetLineItem(ctx context.Context, id string) (*dto.LineItemResponse, error)
	ListLineItemsByInvoice(ctx context.Context, invoiceID string) ([]*dto.LineItemResponse, error)
	ListAllLineItems(ctx context.Context) ([]*dto.LineItemResponse, error)
}

type lineItemService struct {
	ServiceParams
}

func NewLineItemService(params ServiceParams) LineItemService {
	return &lineItemService{
		ServiceParams: params,
	}
}

// resolvePolicy selects how dependency resolution failures surface on reads.
// Single reads are strict; bulk reads omit items whose dependencies cannot
// be resolved.
type resolvePolicy int

const (
	resolveStrict resolvePolicy = iota
	resolveBestEffort
)

func (s *lineItemService) CreateLineItem(ctx context.Context, req dto.CreateLineItemRequest) (*dto.LineItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.resolveInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	cat, err := s.resolveCatalogItem(ctx, req.CatalogItemID)
	if err != nil {
		return nil, err
	}

	item := req.ToLineItem(cat.Price)
	if err := s.LineItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.applyTotalDelta(ctx, item.InvoiceID, item.Subtotal)

	return dto.NewLineItemResponse(item, inv, cat), nil
}

func (s *lineItemService) UpdateLineItem(ctx context.Context, id string, req dto.UpdateLineItemRequest) (*dto.LineItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.LineItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSubtotal := item.Subtotal
	oldInvoiceID := item.InvoiceID

	inv, err := s.resolveInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	cat, err := s.resolveCatalogItem(ctx, req.CatalogItemID)
	if err != nil {
		return nil, err
	}

	item.InvoiceID = inv.ID
	item.CatalogItemID = cat.ID
	item.Quantity = req.Quantity
	item.UnitPrice = cat.Price
	item.Subtotal = lineitem.ComputeSubtotal(req.Quantity, cat.Price)
	item.UpdatedAt = time.Now().UTC()

	// persist first, reconcile ledgers second
	if err := s.LineItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if oldInvoiceID != item.InvoiceID {
		s.applyTotalDelta(ctx, oldInvoiceID, oldSubtotal.Neg())
		s.applyTotalDelta(ctx, item.InvoiceID, item.Subtotal)
	} else {
		s.applyTotalDelta(ctx, item.InvoiceID, item.Subtotal.Sub(oldSubtotal))
	}

	return dto.NewLineItemResponse(item, inv, cat), nil
}

func (s *lineItemService) DeleteLineItem(ctx context.Context, id string) error {
	item, err := s.LineItemRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	s.applyTotalDelta(ctx, item.InvoiceID, item.Subtotal.Neg())

	return s.LineItemRepo.Delete(ctx, id)
}

func (s *lineItemService) GetLineItem(ctx context.Context, id string) (*dto.LineItemResponse, error) {
	item, err := s.LineItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, item, resolveStrict)
}

func (s *lineItemService) ListLineItemsByInvoice(ctx context.Context, invoiceID string) ([]*dto.LineItemResponse, error) {
	items, err := s.LineItemRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return s.buildResponses(ctx, items), nil
}

func (s *lineItemService) ListAllLineItems(ctx context.Context) ([]*dto.LineItemResponse, error) {
	items, err := s.LineItemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.buildResponses(ctx, items), nil
}

// resolveInvoice validates the invoice reference for a mutation. A remote 404
// keeps its not-found classification; upstream and transport failures become
// dependency_unavailable.
func (s *lineItemService) resolveInvoice(ctx context.Context, invoiceID string) (*invoice.Snapshot, error) {
	snapshot, err := s.InvoiceClient.GetInvoice(ctx, invoiceID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHint("Invoice service is unavailable").
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrDependencyUnavailable)
	}
	return snapshot, nil
}

func (s *lineItemService) resolveCatalogItem(ctx context.Context, catalogItemID string) (*catalog.Snapshot, error) {
	snapshot, err := s.CatalogClient.GetCatalogItem(ctx, catalogItemID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHint("Catalog service is unavailable").
			WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
			Mark(ierr.ErrDependencyUnavailable)
	}
	return snapshot, nil
}

// applyTotalDelta issues a ledger delta for an already persisted write.
// A failure here is logged and swallowed: no retry, no rollback of the local
// write. Kept as the single call site so a saga or outbox could replace it
// without touching the operation control flow.
func (s *lineItemService) applyTotalDelta(ctx context.Context, invoiceID string, amount decimal.Decimal) {
	if err := s.InvoiceClient.ApplyTotalDelta(ctx, invoiceID, amount); err != nil {
		s.Logger.Warnw("failed to apply invoice total delta",
			"invoice_id", invoiceID,
			"amount", amount,
			"error", err,
		)
	}
}

// buildResponse resolves both snapshots for a stored line item. Under the
// strict policy any resolution failure, not-found included, surfaces as
// dependency_unavailable; under best effort the raw error is returned and the
// caller omits the item.
func (s *lineItemService) buildResponse(ctx context.Context, item *lineitem.LineItem, policy resolvePolicy) (*dto.LineItemResponse, error) {
	inv, err := s.InvoiceClient.GetInvoice(ctx, item.InvoiceID)
	if err != nil {
		return nil, s.readFailure(item, err, policy)
	}

	cat, err := s.CatalogClient.GetCatalogItem(ctx, item.CatalogItemID)
	if err != nil {
		return nil, s.readFailure(item, err, policy)
	}

	return dto.NewLineItemResponse(item, inv, cat), nil
}

func (s *lineItemService) readFailure(item *lineitem.LineItem, err error, policy resolvePolicy) error {
	if policy == resolveBestEffort {
		return err
	}
	return ierr.WithError(err).
		WithHint("Failed to resolve line item dependencies").
		WithReportableDetails(map[string]any{
			"line_item_id":    item.ID,
			"invoice_id":      item.InvoiceID,
			"catalog_item_id": item.CatalogItemID,
		}).
		Mark(ierr.ErrDependencyUnavailable)
}

func (s *lineItemService) buildResponses(ctx context.Context, items []*lineitem.LineItem) []*dto.LineItemResponse {
	responses := make([]*dto.LineItemResponse, 0, len(items))
	for _, item := range items {
		resp, err := s.buildResponse(ctx, item, resolveBestEffort)
		if err != nil {
			s.Logger.Warnw("omitting line item with unresolved dependencies",
				"line_item_id", item.ID,
				"invoice_id", item.InvoiceID,
				"catalog_item_id", item.CatalogItemID,
				"error", err,
			)
			continue
		}
		responses = append(responses, resp)
	}
	return responses
}
