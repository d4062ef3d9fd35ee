package service

import (
	"context"
	"testing"
	"time"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api/dto"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/testutil"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LineItemServiceSuite struct {
	suite.Suite
	ctx           context.Context
	service       LineItemService
	repo          *testutil.InMemoryLineItemStore
	invoiceClient *testutil.FakeInvoiceClient
	catalogClient *testutil.FakeCatalogClient
}

func TestLineItemService(t *testing.T) {
	suite.Run(t, new(LineItemServiceSuite))
}

func (s *LineItemServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = testutil.NewInMemoryLineItemStore()
	s.invoiceClient = testutil.NewFakeInvoiceClient()
	s.catalogClient = testutil.NewFakeCatalogClient()

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	s.service = NewLineItemService(ServiceParams{
		Logger:        log,
		Config:        cfg,
		LineItemRepo:  s.repo,
		InvoiceClient: s.invoiceClient,
		CatalogClient: s.catalogClient,
	})
}

func (s *LineItemServiceSuite) seedInvoice(id string) {
	s.invoiceClient.SetInvoice(&invoice.Snapshot{
		ID:          id,
		IssueDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(1000),
		Description: "seeded invoice",
		Customer: invoice.CustomerSnapshot{
			ID:    "cust-1",
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
	})
}

func (s *LineItemServiceSuite) seedCatalogItem(id string, price float64) {
	s.catalogClient.SetCatalogItem(&catalog.Snapshot{
		ID:          id,
		Name:        "widget",
		Description: "seeded catalog item",
		Price:       decimal.NewFromFloat(price),
	})
}

func (s *LineItemServiceSuite) seedLineItem(invoiceID, catalogItemID string, quantity int, unitPrice float64) *lineitem.LineItem {
	price := decimal.NewFromFloat(unitPrice)
	item := &lineitem.LineItem{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		InvoiceID:     invoiceID,
		CatalogItemID: catalogItemID,
		Quantity:      quantity,
		UnitPrice:     price,
		Subtotal:      lineitem.ComputeSubtotal(quantity, price),
		BaseModel:     types.GetDefaultBaseModel(),
	}
	s.Require().NoError(s.repo.Create(s.ctx, item))
	return item
}

func (s *LineItemServiceSuite) TestCreateLineItem() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.NoError(err)
	s.Require().NotNil(resp)

	s.Equal(2, resp.Quantity)
	s.True(resp.UnitPrice.Equal(decimal.NewFromFloat(100.0)), "unit price %s", resp.UnitPrice)
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(200.0)), "subtotal %s", resp.Subtotal)
	s.Equal("1", resp.Invoice.ID)
	s.Equal("1", resp.CatalogItem.ID)

	// exactly one positive delta against the invoice
	calls := s.invoiceClient.DeltaCalls()
	s.Require().Len(calls, 1)
	s.Equal("1", calls[0].InvoiceID)
	s.True(calls[0].Amount.Equal(decimal.NewFromFloat(200.0)), "delta %s", calls[0].Amount)

	// the record is persisted with the snapshot price
	stored, err := s.repo.Get(s.ctx, resp.ID)
	s.NoError(err)
	s.True(stored.UnitPrice.Equal(decimal.NewFromFloat(100.0)))
	s.True(stored.Subtotal.Equal(decimal.NewFromFloat(200.0)))
}

func (s *LineItemServiceSuite) TestCreateLineItemValidation() {
	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
	s.Zero(s.invoiceClient.GetCalls())
}

func (s *LineItemServiceSuite) TestCreateLineItemInvoiceNotFound() {
	s.seedCatalogItem("1", 100.0)

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "missing",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))

	// the catalog is never consulted and nothing is persisted
	s.Zero(s.catalogClient.GetCalls())
	items, listErr := s.repo.List(s.ctx)
	s.NoError(listErr)
	s.Empty(items)
	s.Empty(s.invoiceClient.DeltaCalls())
}

func (s *LineItemServiceSuite) TestCreateLineItemCatalogItemNotFound() {
	s.seedInvoice("1")

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "missing",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))

	items, listErr := s.repo.List(s.ctx)
	s.NoError(listErr)
	s.Empty(items)
	s.Empty(s.invoiceClient.DeltaCalls())
}

func (s *LineItemServiceSuite) TestCreateLineItemInvoiceServiceDown() {
	s.seedCatalogItem("1", 100.0)
	s.invoiceClient.FailGet("1", ierr.NewError("connection refused").
		WithHint("Failed to communicate with the invoice service").
		Mark(ierr.ErrCommunication))

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsDependencyUnavailable(err))
	s.False(ierr.IsNotFound(err))
}

func (s *LineItemServiceSuite) TestCreateLineItemCatalogUpstreamError() {
	s.seedInvoice("1")
	s.catalogClient.FailGet("1", ierr.NewError("catalog returned 500").
		WithHint("Catalog service returned status 500").
		Mark(ierr.ErrUpstream))

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsDependencyUnavailable(err))
}

func (s *LineItemServiceSuite) TestCreateLineItemDeltaFailureDoesNotRollBack() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)
	s.invoiceClient.FailDeltas(ierr.NewError("ledger down").
		WithHint("Failed to communicate with the invoice service").
		Mark(ierr.ErrCommunication))

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})

	// the delta failure is swallowed: the create succeeds and the record stays
	s.NoError(err)
	s.Require().NotNil(resp)
	s.Require().Len(s.invoiceClient.DeltaCalls(), 1)

	stored, getErr := s.repo.Get(s.ctx, resp.ID)
	s.NoError(getErr)
	s.True(stored.Subtotal.Equal(decimal.NewFromFloat(200.0)))
}

func (s *LineItemServiceSuite) TestCreateLineItemZeroAndNegativeQuantity() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)

	resp, err := s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      0,
	})
	s.NoError(err)
	s.True(resp.Subtotal.IsZero())

	resp, err = s.service.CreateLineItem(s.ctx, dto.CreateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      -3,
	})
	s.NoError(err)
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(-300.0)), "subtotal %s", resp.Subtotal)
}

func (s *LineItemServiceSuite) TestUpdateLineItemSameInvoice() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)
	item := s.seedLineItem("1", "1", 2, 100.0)

	resp, err := s.service.UpdateLineItem(s.ctx, item.ID, dto.UpdateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      5,
	})
	s.NoError(err)
	s.Require().NotNil(resp)
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(500.0)), "subtotal %s", resp.Subtotal)

	// a single delta carrying only the difference
	calls := s.invoiceClient.DeltaCalls()
	s.Require().Len(calls, 1)
	s.Equal("1", calls[0].InvoiceID)
	s.True(calls[0].Amount.Equal(decimal.NewFromFloat(300.0)), "delta %s", calls[0].Amount)
}

func (s *LineItemServiceSuite) TestUpdateLineItemMovedToOtherInvoice() {
	s.seedInvoice("1")
	s.seedInvoice("2")
	s.seedCatalogItem("9", 150.0)
	item := s.seedLineItem("1", "1", 2, 100.0)

	resp, err := s.service.UpdateLineItem(s.ctx, item.ID, dto.UpdateLineItemRequest{
		InvoiceID:     "2",
		CatalogItemID: "9",
		Quantity:      3,
	})
	s.NoError(err)
	s.Require().NotNil(resp)
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(450.0)), "subtotal %s", resp.Subtotal)

	// old invoice decremented first, then new invoice incremented
	calls := s.invoiceClient.DeltaCalls()
	s.Require().Len(calls, 2)
	s.Equal("1", calls[0].InvoiceID)
	s.True(calls[0].Amount.Equal(decimal.NewFromFloat(-200.0)), "delta %s", calls[0].Amount)
	s.Equal("2", calls[1].InvoiceID)
	s.True(calls[1].Amount.Equal(decimal.NewFromFloat(450.0)), "delta %s", calls[1].Amount)

	stored, getErr := s.repo.Get(s.ctx, item.ID)
	s.NoError(getErr)
	s.Equal("2", stored.InvoiceID)
	s.Equal("9", stored.CatalogItemID)
}

func (s *LineItemServiceSuite) TestUpdateLineItemResnapshotsPrice() {
	s.seedInvoice("1")
	// catalog price moved since the item was created
	s.seedCatalogItem("1", 120.0)
	item := s.seedLineItem("1", "1", 2, 100.0)

	resp, err := s.service.UpdateLineItem(s.ctx, item.ID, dto.UpdateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.NoError(err)
	s.True(resp.UnitPrice.Equal(decimal.NewFromFloat(120.0)), "unit price %s", resp.UnitPrice)
	s.True(resp.Subtotal.Equal(decimal.NewFromFloat(240.0)), "subtotal %s", resp.Subtotal)

	calls := s.invoiceClient.DeltaCalls()
	s.Require().Len(calls, 1)
	s.True(calls[0].Amount.Equal(decimal.NewFromFloat(40.0)), "delta %s", calls[0].Amount)
}

func (s *LineItemServiceSuite) TestUpdateLineItemNotFound() {
	resp, err := s.service.UpdateLineItem(s.ctx, "line_missing", dto.UpdateLineItemRequest{
		InvoiceID:     "1",
		CatalogItemID: "1",
		Quantity:      2,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
	s.Zero(s.invoiceClient.GetCalls())
	s.Zero(s.catalogClient.GetCalls())
}

func (s *LineItemServiceSuite) TestDeleteLineItem() {
	item := s.seedLineItem("1", "1", 2, 100.0)

	err := s.service.DeleteLineItem(s.ctx, item.ID)
	s.NoError(err)

	calls := s.invoiceClient.DeltaCalls()
	s.Require().Len(calls, 1)
	s.Equal("1", calls[0].InvoiceID)
	s.True(calls[0].Amount.Equal(decimal.NewFromFloat(-200.0)), "delta %s", calls[0].Amount)

	_, getErr := s.repo.Get(s.ctx, item.ID)
	s.Error(getErr)
	s.True(ierr.IsNotFound(getErr))
}

func (s *LineItemServiceSuite) TestDeleteLineItemNotFound() {
	err := s.service.DeleteLineItem(s.ctx, "line_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
	s.Empty(s.invoiceClient.DeltaCalls())
}

func (s *LineItemServiceSuite) TestGetLineItem() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)
	item := s.seedLineItem("1", "1", 2, 100.0)

	resp, err := s.service.GetLineItem(s.ctx, item.ID)
	s.NoError(err)
	s.Require().NotNil(resp)
	s.Equal(item.ID, resp.ID)
	s.Equal("1", resp.Invoice.ID)
	s.Equal("ada@example.com", resp.Invoice.Customer.Email)
	s.Equal("1", resp.CatalogItem.ID)
}

func (s *LineItemServiceSuite) TestGetLineItemNotFound() {
	resp, err := s.service.GetLineItem(s.ctx, "line_missing")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *LineItemServiceSuite) TestGetLineItemStrictOnDependencyFailure() {
	// invoice reference no longer resolves; the single read must fail whole,
	// never return a partial response
	s.seedCatalogItem("1", 100.0)
	item := s.seedLineItem("gone", "1", 2, 100.0)

	resp, err := s.service.GetLineItem(s.ctx, item.ID)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsDependencyUnavailable(err))

	// same for a transport failure on the catalog side
	s.seedInvoice("1")
	s.catalogClient.FailGet("7", ierr.NewError("connection refused").
		WithHint("Failed to communicate with the catalog service").
		Mark(ierr.ErrCommunication))
	item2 := s.seedLineItem("1", "7", 1, 50.0)

	resp, err = s.service.GetLineItem(s.ctx, item2.ID)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsDependencyUnavailable(err))
}

func (s *LineItemServiceSuite) TestListAllLineItemsOmitsUnresolvable() {
	s.seedInvoice("1")
	s.seedCatalogItem("1", 100.0)

	ok1 := s.seedLineItem("1", "1", 2, 100.0)
	ok2 := s.seedLineItem("1", "1", 1, 100.0)
	s.seedLineItem("gone", "1", 1, 100.0) // invoice never resolves
	s.catalogClient.FailGet("down", ierr.NewError("catalog returned 503").
		WithHint("Catalog service returned status 503").
		Mark(ierr.ErrUpstream))
	s.seedLineItem("1", "down", 1, 100.0)

	resps, err := s.service.ListAllLineItems(s.ctx)
	s.NoError(err)
	s.Len(resps, 2)

	ids := []string{resps[0].ID, resps[1].ID}
	s.Contains(ids, ok1.ID)
	s.Contains(ids, ok2.ID)
}

func (s *LineItemServiceSuite) TestListLineItemsByInvoice() {
	s.seedInvoice("1")
	s.seedInvoice("2")
	s.seedCatalogItem("1", 100.0)

	s.seedLineItem("1", "1", 2, 100.0)
	s.seedLineItem("1", "1", 1, 100.0)
	s.seedLineItem("2", "1", 5, 100.0)

	resps, err := s.service.ListLineItemsByInvoice(s.ctx, "1")
	s.NoError(err)
	s.Len(resps, 2)
	for _, resp := range resps {
		s.Equal("1", resp.Invoice.ID)
	}
}

func (s *LineItemServiceSuite) TestListLineItemsByInvoiceEmpty() {
	resps, err := s.service.ListLineItemsByInvoice(s.ctx, "nothing-here")
	s.NoError(err)
	s.Empty(resps)
}
