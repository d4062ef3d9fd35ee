package v1

import (
	"net/http"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/api/dto"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/service"
	"github.com/gin-gonic/gin"
)

type LineItemHandler struct {
	service service.LineItemService
	log     *logger.Logger
}

func NewLineItemHandler(service service.LineItemService, log *logger.Logger) *LineItemHandler {
	return &LineItemHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a line item
// @Description Create a line item against an existing invoice and catalog item
// @Tags LineItems
// @Accept json
// @Produce json
// @Param line_item body dto.CreateLineItemRequest true "Line item"
// @Success 201 {object} dto.LineItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /line-items [post]
func (h *LineItemHandler) CreateLineItem(c *gin.Context) {
	var req dto.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateLineItem(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a line item
// @Description Get a line item with its invoice and catalog snapshots
// @Tags LineItems
// @Produce json
// @Param id path string true "Line item ID"
// @Success 200 {object} dto.LineItemResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /line-items/{id} [get]
func (h *LineItemHandler) GetLineItem(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetLineItem(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List line items
// @Description List all line items; items with unresolvable dependencies are omitted
// @Tags LineItems
// @Produce json
// @Success 200 {array} dto.LineItemResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /line-items [get]
func (h *LineItemHandler) ListLineItems(c *gin.Context) {
	resp, err := h.service.ListAllLineItems(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List line items for an invoice
// @Description List line items for an invoice; items with unresolvable dependencies are omitted
// @Tags LineItems
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {array} dto.LineItemResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{invoice_id}/line-items [get]
func (h *LineItemHandler) ListLineItemsByInvoice(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	resp, err := h.service.ListLineItemsByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a line item
// @Description Replace a line item's references and quantity, re-snapshotting the unit price
// @Tags LineItems
// @Accept json
// @Produce json
// @Param id path string true "Line item ID"
// @Param line_item body dto.UpdateLineItemRequest true "Line item"
// @Success 200 {object} dto.LineItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /line-items/{id} [put]
func (h *LineItemHandler) UpdateLineItem(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateLineItem(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a line item
// @Description Delete a line item and decrement the invoice total
// @Tags LineItems
// @Param id path string true "Line item ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /line-items/{id} [delete]
func (h *LineItemHandler) DeleteLineItem(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteLineItem(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
