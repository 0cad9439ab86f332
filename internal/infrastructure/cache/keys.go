package cache

import (
	"encoding/json"
	"fmt"
)

// Logical entity names used as cache namespaces.
const (
	EntityCustomers      = "customers"
	EntityVehicles       = "vehicles"
	EntityServiceTypes   = "service_types"
	EntityServices       = "services"
	EntitySpareParts     = "spare_parts"
	EntitySales          = "sales"
	EntityShowroomCars   = "showroom_cars"
	EntityDashboardStats = "dashboard_stats"
	EntityReports        = "reports"
	EntityTopCustomers   = "top_customers"
	EntityChartData      = "chart_data"
	EntityCustomersView  = "customers_view"
)

// aggregates derived from the transactional tables
var aggregates = []string{
	EntityDashboardStats,
	EntityReports,
	EntityTopCustomers,
	EntityChartData,
	EntityCustomersView,
}

var dependents = map[string][]string{
	EntitySales:      aggregates,
	EntityServices:   aggregates,
	EntitySpareParts: aggregates,
	EntityCustomers:  aggregates,
	EntityVehicles:   aggregates,
}

// Expand returns the entities plus every aggregate derived from them, deduplicated
func Expand(entities ...string) []string {
	seen := make(map[string]struct{}, len(entities))
	out := make([]string, 0, len(entities))
	add := func(e string) {
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	for _, e := range entities {
		add(e)
		for _, d := range dependents[e] {
			add(d)
		}
	}
	return out
}

// Key identifies a cached read. Table is the physical table so the same
// logical query against two tenants never shares an entry.
type Key struct {
	Entity  string
	Table   string
	Filters any
}

// NewKey builds a key for a logical entity read from a physical table
func NewKey(entity, table string, filters any) Key {
	return Key{Entity: entity, Table: table, Filters: filters}
}

func (k Key) String() string {
	if k.Filters == nil {
		return k.Entity + "|" + k.Table
	}
	raw, err := json.Marshal(k.Filters)
	if err != nil {
		return fmt.Sprintf("%s|%s|%v", k.Entity, k.Table, k.Filters)
	}
	return k.Entity + "|" + k.Table + "|" + string(raw)
}
