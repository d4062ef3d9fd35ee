package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/httpclient"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
)

// Client resolves catalog item ids against the remote catalog service.
// Read-only; failure classification matches the invoice client.
type Client interface {
	GetCatalogItem(ctx context.Context, catalogItemID string) (*Snapshot, error)
}

type client struct {
	http    httpclient.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a catalog service client from configuration
func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: cfg.Services.Catalog.BaseURL,
		logger:  logger,
	}
}

func (c *client) GetCatalogItem(ctx context.Context, catalogItemID string) (*Snapshot, error) {
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/catalog-items/%s", c.baseURL, catalogItemID),
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			if httpErr.IsNotFound() {
				return nil, ierr.NewErrorf("catalog item not found: %s", catalogItemID).
					WithHint("Catalog item not found").
					WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
					Mark(ierr.ErrNotFound)
			}
			return nil, ierr.WithError(err).
				WithHintf("Catalog service returned status %d", httpErr.StatusCode).
				WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
				Mark(ierr.ErrUpstream)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to communicate with the catalog service").
			WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
			Mark(ierr.ErrCommunication)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(resp.Body, &snapshot); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Catalog service returned a malformed response").
			WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
			Mark(ierr.ErrUpstream)
	}

	if snapshot.ID == "" {
		return nil, ierr.NewError("catalog service returned a snapshot without an id").
			WithHint("Catalog service returned a malformed response").
			WithReportableDetails(map[string]any{"catalog_item_id": catalogItemID}).
			Mark(ierr.ErrUpstream)
	}

	return &snapshot, nil
}
