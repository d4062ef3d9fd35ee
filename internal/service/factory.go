package service

import (
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/catalog"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/clients/invoice"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/domain/lineitem"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	LineItemRepo lineitem.Repository

	// Remote service clients
	InvoiceClient invoice.Client
	CatalogClient catalog.Client
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	lineItemRepo lineitem.Repository,
	invoiceClient invoice.Client,
	catalogClient catalog.Client,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		LineItemRepo:  lineItemRepo,
		InvoiceClient: invoiceClient,
		CatalogClient: catalogClient,
	}
}
