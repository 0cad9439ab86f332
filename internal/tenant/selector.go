package tenant

import (
	"context"
	"fmt"
	"sync"
)

// PreferenceStore persists small key/value settings across restarts
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// SwitchListener is notified after the active tenant changed
type SwitchListener func(ctx context.Context, from, to Type)

// Selector holds the process-wide active tenant.
// Requests snapshot it once through WithTenant; repositories never read it directly.
type Selector struct {
	mu        sync.RWMutex
	current   Type
	store     PreferenceStore
	listeners []SwitchListener
}

// NewSelector creates a selector starting on the default tenant
func NewSelector(store PreferenceStore) *Selector {
	return &Selector{
		current: Default,
		store:   store,
	}
}

// Load reads the persisted tenant. Absent or invalid values fall back to the default.
func (s *Selector) Load(ctx context.Context) (Type, error) {
	raw, err := s.store.GetPreference(ctx, PreferenceKey)
	if err != nil {
		return s.Current(), fmt.Errorf("tenant.Selector.Load: %w", err)
	}

	t := Type(raw)
	if !t.Valid() {
		t = Default
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	return t, nil
}

// Current returns the active tenant
func (s *Selector) Current() Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnSwitch registers a listener fired after every successful Set
func (s *Selector) OnSwitch(l SwitchListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Set persists and activates a tenant. Listeners run even when the value is
// unchanged so an explicit switch always drops cached reads.
func (s *Selector) Set(ctx context.Context, t Type) error {
	if !t.Valid() {
		_, err := Parse(string(t))
		return err
	}

	if err := s.store.SetPreference(ctx, PreferenceKey, string(t)); err != nil {
		return fmt.Errorf("tenant.Selector.Set: %w", err)
	}

	s.mu.Lock()
	from := s.current
	s.current = t
	listeners := make([]SwitchListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, from, t)
	}
	return nil
}
