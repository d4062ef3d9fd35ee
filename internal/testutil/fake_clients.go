package testutil

import (
	"context"
	"sync"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/shopspring/decimal"
)

// DeltaCall records a single ApplyTotalDelta invocation
type DeltaCall struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// FakeInvoiceClient implements invoice.Client with configurable snapshots,
// per-id error injection, and a record of every delta call.
type FakeInvoiceClient struct {
	mu         sync.Mutex
	invoices   map[string]*invoice.Snapshot
	getErrs    map[string]error
	deltaErr   error
	deltaCalls []DeltaCall
	getCalls   int
}

// NewFakeInvoiceClient creates an empty fake invoice client
func NewFakeInvoiceClient() *FakeInvoiceClient {
	return &FakeInvoiceClient{
		invoices: make(map[string]*invoice.Snapshot),
		getErrs:  make(map[string]error),
	}
}

// SetInvoice registers a snapshot returned by GetInvoice
func (f *FakeInvoiceClient) SetInvoice(snapshot *invoice.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[snapshot.ID] = snapshot
}

// FailGet makes GetInvoice return the given error for an id
func (f *FakeInvoiceClient) FailGet(invoiceID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErrs[invoiceID] = err
}

// FailDeltas makes every ApplyTotalDelta call return the given error
func (f *FakeInvoiceClient) FailDeltas(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deltaErr = err
}

// DeltaCalls returns the recorded delta calls in order
func (f *FakeInvoiceClient) DeltaCalls() []DeltaCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]DeltaCall, len(f.deltaCalls))
	copy(calls, f.deltaCalls)
	return calls
}

// GetCalls returns the number of GetInvoice invocations
func (f *FakeInvoiceClient) GetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func (f *FakeInvoiceClient) GetInvoice(ctx context.Context, invoiceID string) (*invoice.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++

	if err, ok := f.getErrs[invoiceID]; ok {
		return nil, err
	}

	snapshot, ok := f.invoices[invoiceID]
	if !ok {
		return nil, ierr.NewErrorf("invoice not found: %s", invoiceID).
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	copied := *snapshot
	return &copied, nil
}

func (f *FakeInvoiceClient) ApplyTotalDelta(ctx context.Context, invoiceID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deltaCalls = append(f.deltaCalls, DeltaCall{InvoiceID: invoiceID, Amount: amount})

	return f.deltaErr
}

// FakeCatalogClient implements catalog.Client with configurable snapshots
// and per-id error injection.
type FakeCatalogClient struct {
	mu       sync.Mutex
	items    map[string]*catalog.Snapshot
	getErrs  map[string]error
	getCalls int
}

// NewFakeCatalogClient creates an empty fake catalog client
func NewFakeCatalogClient() *FakeCatalogClient {
	return &FakeCatalogClient{
		items:   make(map[string]*catalog.Snapshot),
		getErrs: make(map[string]error),
	}
}

// SetCatalogItem registers a snapshot returned by GetCatalogItem
func (f *FakeCatalogClient) SetCatalogItem(snapshot *catalog.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[snapshot.ID] = snapshot
}

// FailGet makes GetCatalogItem return the given error for an id
func (f *FakeCatalogClient) FailGet(catalogItemID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErrs[catalogItemID] = err
}

// GetCalls returns the number of GetCatalogItem invocations
func (f *FakeCatalogClient) GetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func (f *FakeCatalogClient) GetCatalogItem(ctx context.Context, catalogItemID string) (*catalog.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++

	if err, ok := f.getErrs[catalogItemID]; ok {
		return nil, err
	}

	snapshot, ok := f.items[catalogItemID]
	if !ok {
		return nil, ierr.NewErrorf("catalog item not found: %s", catalogItemID).
			WithHint("Catalog item not found").
			Mark(ierr.ErrNotFound)
	}

	copied := *snapshot
	return &copied, nil
}
