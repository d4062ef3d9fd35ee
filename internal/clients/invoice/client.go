package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/httpclient"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/shopspring/decimal"
)

// Client talks to the remote invoice service. Lookups return snapshots;
// ApplyTotalDelta adjusts the invoice running total by a signed amount.
//
// Failures are classified three ways: ErrNotFound (remote 404),
// ErrUpstream (any other non-2xx, or a malformed/id-less body), and
// ErrCommunication (transport failure). Callers decide what each one means.
type Client interface {
	GetInvoice(ctx context.Context, invoiceID string) (*Snapshot, error)
	ApplyTotalDelta(ctx context.Context, invoiceID string, amount decimal.Decimal) error
}

type client struct {
	http    httpclient.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates an invoice service client from configuration
func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: cfg.Services.Invoice.BaseURL,
		logger:  logger,
	}
}

func (c *client) GetInvoice(ctx context.Context, invoiceID string) (*Snapshot, error) {
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/invoices/%s", c.baseURL, invoiceID),
	})
	if err != nil {
		return nil, classify(err, invoiceID)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(resp.Body, &snapshot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invoice service returned a malformed response").
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrUpstream)
	}

	if snapshot.ID == "" {
		return nil, ierr.NewError("invoice service returned a snapshot without an id").
			WithHint("Invoice service returned a malformed response").
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrUpstream)
	}

	return &snapshot, nil
}

func (c *client) ApplyTotalDelta(ctx context.Context, invoiceID string, amount decimal.Decimal) error {
	payload, err := json.Marshal(map[string]json.Number{
		"amount": json.Number(amount.String()),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode the total update request").
			Mark(ierr.ErrSystem)
	}

	_, err = c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPut,
		URL:    fmt.Sprintf("%s/invoices/%s/total", c.baseURL, invoiceID),
		Body:   payload,
	})
	if err != nil {
		return classify(err, invoiceID)
	}

	return nil
}

func classify(err error, invoiceID string) error {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		if httpErr.IsNotFound() {
			return ierr.NewErrorf("invoice not found: %s", invoiceID).
				WithHint("Invoice not found").
				WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHintf("Invoice service returned status %d", httpErr.StatusCode).
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrUpstream)
	}

	// transport failure, already marked ErrCommunication by the http client
	return ierr.WithError(err).
		WithHint("Failed to communicate with the invoice service").
		WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
		Mark(ierr.ErrCommunication)
}
