package service

import (
	"testing"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	items := []InvoiceItem{
		{Name: "Wax", Quantity: 2, Price: 50},
		{Name: "Polish", Quantity: 1, Price: 100},
	}

	inv := Compute(items, 18, Discount{Type: enum.DiscountTypeFlat, Value: 10})
	assert.Equal(t, 200.0, inv.Subtotal)
	assert.Equal(t, 36.0, inv.TaxAmount)
	assert.Equal(t, 10.0, inv.DiscountAmount)
	assert.Equal(t, 226.0, inv.GrandTotal)

	inv = Compute(items, 0, Discount{Type: enum.DiscountTypePercent, Value: 25})
	assert.Equal(t, 50.0, inv.DiscountAmount)
	assert.Equal(t, 150.0, inv.GrandTotal)
}

func TestComputeNeverNegative(t *testing.T) {
	inv := Compute([]InvoiceItem{{Quantity: 1, Price: 20}}, 0, Discount{Value: 50})
	assert.Equal(t, 0.0, inv.GrandTotal)

	inv = Compute(nil, 18, Discount{})
	assert.Equal(t, 0.0, inv.Subtotal)
	assert.Equal(t, 0.0, inv.GrandTotal)
}

func serviceToBill(totalCost float64) *entity.ServiceWithDetails {
	return &entity.ServiceWithDetails{
		Service: entity.Service{
			ID:           uuid.MustParse("3f6d2a10-0000-4000-8000-000000000000"),
			ServiceDate:  date(2024, 5, 10),
			LaborCharges: 50,
			TotalCost:    totalCost,
		},
		Vehicle:     &entity.VehicleWithCustomer{Customer: &entity.Customer{Name: "Alice"}},
		ServiceType: &entity.ServiceType{Name: "Full Detail", BasePrice: 100},
		ServiceParts: []entity.ServicePartDetail{{
			ServicePart: entity.ServicePart{Quantity: 2, UnitPrice: 25},
			SparePart:   &entity.PartRef{PartName: "Oil Filter", PartNumber: "OF-1"},
		}},
	}
}

func TestServiceInvoiceStoredDiscountWins(t *testing.T) {
	inv := ServiceInvoice(serviceToBill(180), Discount{Type: enum.DiscountTypePercent, Value: 10})

	require.Len(t, inv.Items, 3)
	assert.Equal(t, "Full Detail", inv.Items[0].Name)
	assert.Equal(t, LaborDescription, inv.Items[1].Description)
	assert.Equal(t, "Oil Filter", inv.Items[2].Name)
	assert.Equal(t, "OF-1", inv.Items[2].Description)

	assert.Equal(t, 200.0, inv.Subtotal)
	assert.Equal(t, 20.0, inv.DiscountAmount)
	assert.Equal(t, 180.0, inv.GrandTotal)
	assert.Equal(t, 0.0, inv.TaxAmount)
	assert.Equal(t, "Alice", inv.CustomerName)
	assert.Equal(t, "SRV-3f6d2a10", inv.Number)
}

func TestServiceInvoiceRequestedDiscount(t *testing.T) {
	inv := ServiceInvoice(serviceToBill(200), Discount{Type: enum.DiscountTypePercent, Value: 10})
	assert.Equal(t, 20.0, inv.DiscountAmount)
	assert.Equal(t, 180.0, inv.GrandTotal)

	inv = ServiceInvoice(serviceToBill(250), Discount{})
	assert.Equal(t, 0.0, inv.DiscountAmount, "a total above the subtotal is not a discount")
	assert.Equal(t, 200.0, inv.GrandTotal)
}

func TestSaleInvoice(t *testing.T) {
	sale := &entity.SaleWithItems{
		Sale: entity.Sale{CustomerName: "Ravi", InvoiceNumber: "INV-7", TotalAmount: 90},
		Items: []entity.SaleItemDetail{
			{SaleItem: entity.SaleItem{Quantity: 3, UnitPrice: 30}, SparePart: &entity.PartRef{PartName: "Bulb"}},
		},
	}

	inv := SaleInvoice(sale, 10, Discount{Type: enum.DiscountTypeFlat, Value: 9})
	assert.Equal(t, "INV-7", inv.Number)
	assert.Equal(t, 90.0, inv.Subtotal)
	assert.Equal(t, 9.0, inv.TaxAmount)
	assert.Equal(t, 90.0, inv.GrandTotal)
}
