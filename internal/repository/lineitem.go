package repository

import (
	"context"
	"database/sql"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/jmoiron/sqlx"
)

type lineItemRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewLineItemRepository creates a postgres-backed line item repository
func NewLineItemRepository(db *sqlx.DB, logger *logger.Logger) lineitem.Repository {
	return &lineItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *lineItemRepository) Create(ctx context.Context, item *lineitem.LineItem) error {
	r.logger.Debugw("creating line item", "line_item_id", item.ID, "invoice_id", item.InvoiceID)

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO line_items (id, invoice_id, catalog_item_id, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES (:id, :invoice_id, :catalog_item_id, :quantity, :unit_price, :subtotal, :created_at, :updated_at)`,
		item,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create line item").
			WithReportableDetails(map[string]any{"line_item_id": item.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *lineItemRepository) Get(ctx context.Context, id string) (*lineitem.LineItem, error) {
	var item lineitem.LineItem
	err := r.db.GetContext(ctx, &item, `
		SELECT id, invoice_id, catalog_item_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM line_items WHERE id = $1`,
		id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewErrorf("line item not found: %s", id).
				WithHint("Line item not found").
				WithReportableDetails(map[string]any{"line_item_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get line item").
			Mark(ierr.ErrDatabase)
	}
	return &item, nil
}

func (r *lineItemRepository) List(ctx context.Context) ([]*lineitem.LineItem, error) {
	var items []*lineitem.LineItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, invoice_id, catalog_item_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM line_items ORDER BY created_at`,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list line items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *lineItemRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*lineitem.LineItem, error) {
	var items []*lineitem.LineItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, invoice_id, catalog_item_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM line_items WHERE invoice_id = $1 ORDER BY created_at`,
		invoiceID,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list line items for invoice").
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *lineitem.LineItem) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE line_items
		SET invoice_id = :invoice_id,
			catalog_item_id = :catalog_item_id,
			quantity = :quantity,
			unit_price = :unit_price,
			subtotal = :subtotal,
			updated_at = :updated_at
		WHERE id = :id`,
		item,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update line item").
			WithReportableDetails(map[string]any{"line_item_id": item.ID}).
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update line item").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("line item not found: %s", item.ID).
			WithHint("Line item not found").
			WithReportableDetails(map[string]any{"line_item_id": item.ID}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *lineItemRepository) Delete(ctx context.Context, id string) error {
	// hard delete: line items have no tombstone state
	result, err := r.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete line item").
			WithReportableDetails(map[string]any{"line_item_id": id}).
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete line item").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("line item not found: %s", id).
			WithHint("Line item not found").
			WithReportableDetails(map[string]any{"line_item_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
