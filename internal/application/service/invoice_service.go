package service

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
)

// InvoiceService renders printable bills for services and sales
type InvoiceService struct {
	serviceRepo repository.ServiceRepository
	saleRepo    repository.SaleRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(serviceRepo repository.ServiceRepository, saleRepo repository.SaleRepository) *InvoiceService {
	return &InvoiceService{serviceRepo: serviceRepo, saleRepo: saleRepo}
}

func validateInvoiceInput(taxPercent float64, discount Discount) error {
	var errs fieldErrors
	errs.check(taxPercent >= 0 && taxPercent <= 100, "tax_percent", "tax_percent must be between 0 and 100")
	errs.check(discount.Value >= 0, "discount_value", "discount_value cannot be negative")
	return errs.err()
}

// ServiceInvoice bills a service
func (s *InvoiceService) ServiceInvoice(ctx context.Context, id uuid.UUID, discount Discount) (*Invoice, error) {
	if err := validateInvoiceInput(0, discount); err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return ServiceInvoice(svc, discount), nil
}

// SaleInvoice bills a sale
func (s *InvoiceService) SaleInvoice(ctx context.Context, id uuid.UUID, taxPercent float64, discount Discount) (*Invoice, error) {
	if err := validateInvoiceInput(taxPercent, discount); err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return SaleInvoice(sale, taxPercent, discount), nil
}
