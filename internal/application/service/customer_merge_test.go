package service

import (
	"testing"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMergeCustomersByName(t *testing.T) {
	customer := entity.CustomerWithVehicles{
		Customer: entity.Customer{ID: uuid.New(), Name: "John Smith", Phone: strPtr("0700"), CreatedAt: date(2024, 1, 1)},
		Vehicles: []entity.Vehicle{{ID: uuid.New(), Make: "BMW"}},
	}
	sales := []entity.SaleWithItems{
		{Sale: entity.Sale{ID: uuid.New(), CustomerName: "john smith ", TotalAmount: 120, SaleDate: date(2024, 3, 2)}},
		{Sale: entity.Sale{ID: uuid.New(), CustomerName: "Walk-in", TotalAmount: 30, SaleDate: date(2024, 2, 1)}},
	}

	rows := MergeCustomers([]entity.CustomerWithVehicles{customer}, sales)
	require.Len(t, rows, 2)

	john := rows[0]
	assert.Equal(t, customer.ID, john.ID)
	assert.Equal(t, "John Smith", john.Name)
	assert.Equal(t, enum.CustomerSourceService, john.Source)
	assert.True(t, john.Deletable())
	assert.Equal(t, 120.0, john.TotalSpent)
	assert.Equal(t, date(2024, 3, 2), john.LastActivity)
	assert.Equal(t, "0700", *john.Phone)
	assert.Len(t, john.Vehicles, 1)

	walkIn := rows[1]
	assert.Equal(t, sales[1].ID, walkIn.ID)
	assert.Equal(t, enum.CustomerSourceSale, walkIn.Source)
	assert.False(t, walkIn.Deletable())
	assert.NotNil(t, walkIn.Vehicles)
}

func TestMergeCustomersSalesOnly(t *testing.T) {
	first := entity.SaleWithItems{Sale: entity.Sale{ID: uuid.New(), CustomerName: "Ravi", TotalAmount: 10, SaleDate: date(2024, 1, 1)}}
	second := entity.SaleWithItems{Sale: entity.Sale{ID: uuid.New(), CustomerName: "RAVI", TotalAmount: 15, SaleDate: date(2024, 1, 9)}}

	rows := MergeCustomers(nil, []entity.SaleWithItems{first, second})
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID, "sale-only rows take the latest id")
	assert.Equal(t, 25.0, rows[0].TotalSpent)
	assert.Equal(t, enum.CustomerSourceSale, rows[0].Source)
}

func TestMergeCustomersFillsMissingContact(t *testing.T) {
	a := entity.CustomerWithVehicles{Customer: entity.Customer{ID: uuid.New(), Name: "Ann", Email: strPtr("")}}
	b := entity.CustomerWithVehicles{Customer: entity.Customer{ID: uuid.New(), Name: "ann", Email: strPtr("ann@example.com")}}

	rows := MergeCustomers([]entity.CustomerWithVehicles{a, b}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)
	assert.Equal(t, "ann@example.com", *rows[0].Email)
}

func TestFilterMergedCustomers(t *testing.T) {
	rows := []MergedCustomer{
		{Name: "John Smith", Phone: strPtr("0711 222")},
		{Name: "Ravi", Email: strPtr("ravi@shop.in")},
	}

	assert.Len(t, FilterMergedCustomers(rows, ""), 2)
	assert.Len(t, FilterMergedCustomers(rows, "JOHN"), 1)
	assert.Len(t, FilterMergedCustomers(rows, "222"), 1)
	assert.Equal(t, "Ravi", FilterMergedCustomers(rows, "shop")[0].Name)
	assert.Empty(t, FilterMergedCustomers(rows, "nobody"))
}
