package service

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/google/uuid"
)

// TopCustomersLimit is the size of the top customers leaderboard
const TopCustomersLimit = 5

// UnknownServiceType labels services whose type could not be resolved
const UnknownServiceType = "Unknown"

// PercentChange returns the relative change from prev to cur in percent.
// A zero previous value yields 0 rather than an infinite change.
func PercentChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// Revenue sums sale totals and service costs
func Revenue(sales []entity.SaleWithItems, services []entity.ServiceWithDetails) float64 {
	return SalesRevenue(sales) + ServicesRevenue(services)
}

func SalesRevenue(sales []entity.SaleWithItems) float64 {
	var total float64
	for _, s := range sales {
		total += s.TotalAmount
	}
	return total
}

func ServicesRevenue(services []entity.ServiceWithDetails) float64 {
	var total float64
	for _, s := range services {
		total += s.TotalCost
	}
	return total
}

// ClassifyStock returns the status of a part at or below its threshold.
// ok is false when the part is above the threshold.
func ClassifyStock(quantity, threshold int) (status enum.StockStatus, ok bool) {
	if quantity > threshold {
		return "", false
	}
	if quantity <= 0 || float64(quantity) <= float64(threshold)/2 {
		return enum.StockStatusCritical, true
	}
	return enum.StockStatusLow, true
}

// LowStockItem is a row of the low stock report
type LowStockItem struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Current   int              `json:"current"`
	Threshold int              `json:"threshold"`
	Status    enum.StockStatus `json:"status"`
}

// LowStockItems classifies every part at or below its reorder threshold
func LowStockItems(parts []entity.SparePart) []LowStockItem {
	items := make([]LowStockItem, 0, len(parts))
	for _, p := range parts {
		status, ok := ClassifyStock(p.QuantityInStock, p.ReorderThreshold)
		if !ok {
			continue
		}
		items = append(items, LowStockItem{
			ID:        p.ID,
			Name:      p.PartName,
			Current:   p.QuantityInStock,
			Threshold: p.ReorderThreshold,
			Status:    status,
		})
	}
	return items
}

// TopCustomer is a leaderboard entry
type TopCustomer struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	Name        string    `json:"name"`
	Services    int       `json:"services"`
	TotalSpent  float64   `json:"total_spent"`
	LastService time.Time `json:"last_service"`
}

// TopCustomers ranks customers by what they spent on services.
// Services without a resolved customer are skipped.
func TopCustomers(services []entity.ServiceWithDetails, limit int) []TopCustomer {
	byID := make(map[uuid.UUID]*TopCustomer)
	order := make([]uuid.UUID, 0)

	for _, s := range services {
		if s.Vehicle == nil || s.Vehicle.Customer == nil {
			continue
		}
		c := s.Vehicle.Customer
		tc, ok := byID[c.ID]
		if !ok {
			tc = &TopCustomer{CustomerID: c.ID, Name: c.Name}
			byID[c.ID] = tc
			order = append(order, c.ID)
		}
		tc.Services++
		tc.TotalSpent += s.TotalCost
		if s.ServiceDate.After(tc.LastService) {
			tc.LastService = s.ServiceDate
		}
	}

	out := make([]TopCustomer, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ServiceTypeShare is one slice of the service type distribution
type ServiceTypeShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// ServiceTypeDistribution counts services per type name, most frequent first
func ServiceTypeDistribution(services []entity.ServiceWithDetails) []ServiceTypeShare {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, s := range services {
		name := s.ServiceTypeName()
		if name == "" {
			name = UnknownServiceType
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]ServiceTypeShare, 0, len(order))
	for _, name := range order {
		out = append(out, ServiceTypeShare{Name: name, Value: counts[name], Color: ColorFor(name)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// ColorFor returns a stable chart color for a label
func ColorFor(label string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(label)))
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", h.Sum32()%360)
}

// monthStart returns midnight of the first day of t's month
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// dayStart returns midnight of t's day
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
