package service

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/logger"
)

// TenantService exposes the active business database
type TenantService struct {
	selector *tenant.Selector
}

// NewTenantService creates a new tenant service. Every switch drops all
// cached reads so nothing fetched for the previous database survives.
func NewTenantService(selector *tenant.Selector, qc *cache.QueryCache) *TenantService {
	log := logger.WithComponent("tenant")
	selector.OnSwitch(func(ctx context.Context, from, to tenant.Type) {
		log.WithField("from", from).WithField("to", to).Info("database switched")
		qc.InvalidateAll(ctx)
	})
	return &TenantService{selector: selector}
}

// TenantInfo describes the selected database and the alternatives
type TenantInfo struct {
	Current   tenant.Type   `json:"current"`
	Available []tenant.Type `json:"available"`
}

// GetCurrent returns the active database
func (s *TenantService) GetCurrent() *TenantInfo {
	return &TenantInfo{Current: s.selector.Current(), Available: tenant.All()}
}

// Switch persists a new active database
func (s *TenantService) Switch(ctx context.Context, raw string) (*TenantInfo, error) {
	t, err := tenant.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.selector.Set(ctx, t); err != nil {
		return nil, err
	}
	return s.GetCurrent(), nil
}
