package tenant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	setErr  error
	setCall int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) GetPreference(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[key], nil
}

func (m *memoryStore) SetPreference(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func TestTableName(t *testing.T) {
	logical := []string{"sales", "services", "spare_parts", "customers", "service_types", ""}

	for _, name := range logical {
		assert.Equal(t, "elite_"+name, TableName(Elite, name))
		assert.Equal(t, name, TableName(Shahi, name))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Type
		wantErr bool
	}{
		{raw: "elite", want: Elite},
		{raw: "shahi", want: Shahi},
		{raw: " Shahi ", want: Shahi},
		{raw: "", wantErr: true},
		{raw: "royal", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsAppError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("requires tenant", func(t *testing.T) {
		_, err := Resolve(context.Background(), "sales")
		assert.ErrorIs(t, err, apperror.ErrTenantRequired)
	})

	t.Run("uses context tenant", func(t *testing.T) {
		got, err := Resolve(WithTenant(context.Background(), Elite), "sales")
		require.NoError(t, err)
		assert.Equal(t, "elite_sales", got)

		got, err = Resolve(WithTenant(context.Background(), Shahi), "sales")
		require.NoError(t, err)
		assert.Equal(t, "sales", got)
	})

	t.Run("invalid tenant in context", func(t *testing.T) {
		_, err := Resolve(WithTenant(context.Background(), Type("x")), "sales")
		assert.Error(t, err)
	})
}

func TestSelectorLoad(t *testing.T) {
	tests := []struct {
		name      string
		persisted string
		want      Type
	}{
		{name: "absent defaults to elite", persisted: "", want: Elite},
		{name: "invalid defaults to elite", persisted: "garbage", want: Elite},
		{name: "persisted shahi", persisted: "shahi", want: Shahi},
		{name: "persisted elite", persisted: "elite", want: Elite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryStore()
			if tc.persisted != "" {
				store.values[PreferenceKey] = tc.persisted
			}
			s := NewSelector(store)

			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, s.Current())
		})
	}

	t.Run("store error keeps default", func(t *testing.T) {
		store := newMemoryStore()
		store.getErr = errors.New("db down")
		s := NewSelector(store)

		got, err := s.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, Elite, got)
	})
}

func TestSelectorSet(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and notifies", func(t *testing.T) {
		store := newMemoryStore()
		s := NewSelector(store)

		var calls []Type
		s.OnSwitch(func(_ context.Context, from, to Type) {
			assert.Equal(t, Elite, from)
			calls = append(calls, to)
		})

		require.NoError(t, s.Set(ctx, Shahi))
		assert.Equal(t, Shahi, s.Current())
		assert.Equal(t, "shahi", store.values[PreferenceKey])
		assert.Equal(t, []Type{Shahi}, calls)
		assert.Equal(t, "sales", TableName(s.Current(), "sales"))
	})

	t.Run("rejects unknown value without persisting", func(t *testing.T) {
		store := newMemoryStore()
		s := NewSelector(store)

		err := s.Set(ctx, Type("royal"))
		require.Error(t, err)
		assert.Equal(t, 0, store.setCall)
		assert.Equal(t, Elite, s.Current())
	})

	t.Run("store failure leaves tenant unchanged", func(t *testing.T) {
		store := newMemoryStore()
		store.setErr = errors.New("write failed")
		s := NewSelector(store)

		notified := false
		s.OnSwitch(func(context.Context, Type, Type) { notified = true })

		require.Error(t, s.Set(ctx, Shahi))
		assert.Equal(t, Elite, s.Current())
		assert.False(t, notified)
	})
}
