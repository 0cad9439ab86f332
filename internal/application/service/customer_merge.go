package service

import (
	"strings"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/google/uuid"
)

// MergedCustomer is a row of the combined customer view. Registered
// customers and free-text sale names that refer to the same person
// collapse into one row.
type MergedCustomer struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Email        *string             `json:"email"`
	Phone        *string             `json:"phone"`
	Address      *string             `json:"address"`
	Vehicles     []entity.Vehicle    `json:"vehicles"`
	TotalSpent   float64             `json:"total_spent"`
	LastActivity time.Time           `json:"last_activity"`
	Source       enum.CustomerSource `json:"source"`
}

// Deletable reports whether the row is backed by a customer record
func (m *MergedCustomer) Deletable() bool {
	return m.Source == enum.CustomerSourceService
}

// mergeKey groups rows naming the same person
func mergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeCustomers folds registered customers and sale customer names into one
// list keyed by name. Rows keep the order in which a name first appeared.
func MergeCustomers(customers []entity.CustomerWithVehicles, sales []entity.SaleWithItems) []MergedCustomer {
	byKey := make(map[string]*MergedCustomer)
	order := make([]string, 0, len(customers)+len(sales))

	add := func(row MergedCustomer) {
		key := mergeKey(row.Name)
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = &row
			order = append(order, key)
			return
		}
		mergeInto(existing, row)
	}

	for _, c := range customers {
		vehicles := make([]entity.Vehicle, len(c.Vehicles))
		copy(vehicles, c.Vehicles)
		add(MergedCustomer{
			ID:           c.ID,
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			Address:      c.Address,
			Vehicles:     vehicles,
			LastActivity: c.CreatedAt,
			Source:       enum.CustomerSourceService,
		})
	}
	for _, s := range sales {
		add(MergedCustomer{
			ID:           s.ID,
			Name:         s.CustomerName,
			Vehicles:     []entity.Vehicle{},
			TotalSpent:   s.TotalAmount,
			LastActivity: s.SaleDate,
			Source:       enum.CustomerSourceSale,
		})
	}

	out := make([]MergedCustomer, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

func mergeInto(dst *MergedCustomer, src MergedCustomer) {
	if dst.Source != enum.CustomerSourceService {
		dst.ID = src.ID
	}
	dst.Email = firstNonEmpty(dst.Email, src.Email)
	dst.Phone = firstNonEmpty(dst.Phone, src.Phone)
	dst.Address = firstNonEmpty(dst.Address, src.Address)
	dst.Vehicles = append(dst.Vehicles, src.Vehicles...)
	dst.TotalSpent += src.TotalSpent
	if src.Source == enum.CustomerSourceService {
		dst.Source = enum.CustomerSourceService
	}
	if src.LastActivity.After(dst.LastActivity) {
		dst.LastActivity = src.LastActivity
	}
}

func firstNonEmpty(a, b *string) *string {
	if a != nil && *a != "" {
		return a
	}
	return b
}

// FilterMergedCustomers keeps rows whose name, email or phone contains term
func FilterMergedCustomers(rows []MergedCustomer, term string) []MergedCustomer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	out := make([]MergedCustomer, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), term) ||
			containsFold(r.Email, term) ||
			containsFold(r.Phone, term) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s *string, lowerTerm string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), lowerTerm)
}
