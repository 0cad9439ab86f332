package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	mu        sync.Mutex
	published []Message
	err       error
	ch        chan Message
}

func newRecordingBus() *recordingBus {
	return &recordingBus{ch: make(chan Message, 8)}
}

func (b *recordingBus) Publish(_ context.Context, msg Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, msg)
	return b.err
}

func (b *recordingBus) Subscribe(context.Context) (<-chan Message, func(), error) {
	return b.ch, func() {}, nil
}

func (b *recordingBus) messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.published...)
}

func TestKeyString(t *testing.T) {
	a := NewKey(EntitySales, "elite_sales", map[string]string{"to": "2024-02-01", "from": "2024-01-01"})
	b := NewKey(EntitySales, "elite_sales", map[string]string{"from": "2024-01-01", "to": "2024-02-01"})
	assert.Equal(t, a.String(), b.String())

	shahi := NewKey(EntitySales, "sales", map[string]string{"from": "2024-01-01", "to": "2024-02-01"})
	assert.NotEqual(t, a.String(), shahi.String())

	assert.Equal(t, "sales|sales", NewKey(EntitySales, "sales", nil).String())
}

func TestExpand(t *testing.T) {
	got := Expand(EntitySales)
	assert.Contains(t, got, EntitySales)
	for _, agg := range aggregates {
		assert.Contains(t, got, agg)
	}

	assert.Equal(t, []string{EntityServiceTypes}, Expand(EntityServiceTypes))

	got = Expand(EntitySales, EntityServices)
	assert.Len(t, got, 2+len(aggregates))
}

func TestFetchIsIdempotent(t *testing.T) {
	c := New(nil, TTLs{})
	ctx := context.Background()
	key := NewKey(EntitySpareParts, "elite_spare_parts", nil)

	var calls int32
	fn := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"filter"}, nil
	}

	first, err := Fetch(ctx, c, key, time.Minute, fn)
	require.NoError(t, err)
	second, err := Fetch(ctx, c, key, time.Minute, fn)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchDeduplicatesConcurrentCallers(t *testing.T) {
	c := New(nil, TTLs{})
	key := NewKey(EntitySales, "elite_sales", nil)

	var calls int32
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, key, time.Minute, fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestFetchExpires(t *testing.T) {
	c := New(nil, TTLs{})
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	key := NewKey(EntityServices, "services", nil)

	var calls int
	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := Fetch(context.Background(), c, key, time.Minute, fn)
	assert.Equal(t, 1, v)

	now = now.Add(30 * time.Second)
	v, _ = Fetch(context.Background(), c, key, time.Minute, fn)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	v, _ = Fetch(context.Background(), c, key, time.Minute, fn)
	assert.Equal(t, 2, v)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c := New(nil, TTLs{})
	ctx := context.Background()
	other := NewKey(EntityServiceTypes, "service_types", nil)
	_, err := Fetch(ctx, c, other, time.Minute, func(context.Context) (string, error) { return "kept", nil })
	require.NoError(t, err)

	key := NewKey(EntitySales, "sales", nil)
	boom := errors.New("store unavailable")
	_, err = Fetch(ctx, c, key, time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len())

	v, err := Fetch(ctx, c, key, time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestInvalidate(t *testing.T) {
	bus := newRecordingBus()
	c := New(bus, TTLs{})
	ctx := context.Background()

	var salesCalls, typeCalls, dashCalls int
	load := func() {
		_, _ = Fetch(ctx, c, NewKey(EntitySales, "elite_sales", nil), time.Minute, func(context.Context) (int, error) {
			salesCalls++
			return salesCalls, nil
		})
		_, _ = Fetch(ctx, c, NewKey(EntitySales, "sales", "2024"), time.Minute, func(context.Context) (int, error) {
			salesCalls++
			return salesCalls, nil
		})
		_, _ = Fetch(ctx, c, NewKey(EntityServiceTypes, "elite_service_types", nil), time.Minute, func(context.Context) (int, error) {
			typeCalls++
			return typeCalls, nil
		})
		_, _ = Fetch(ctx, c, NewKey(EntityDashboardStats, "elite", nil), time.Minute, func(context.Context) (int, error) {
			dashCalls++
			return dashCalls, nil
		})
	}

	load()
	require.Equal(t, 4, c.Len())

	c.Invalidate(ctx, EntitySales)
	assert.Equal(t, 1, c.Len())

	load()
	assert.Equal(t, 4, salesCalls, "every sales variant refetched across tenants")
	assert.Equal(t, 2, dashCalls, "dependent aggregate refetched")
	assert.Equal(t, 1, typeCalls, "unrelated entity untouched")

	msgs := bus.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, c.origin, msgs[0].Origin)
	assert.Contains(t, msgs[0].Entities, EntityDashboardStats)
}

func TestInvalidateAll(t *testing.T) {
	bus := newRecordingBus()
	c := New(bus, TTLs{})
	ctx := context.Background()

	_, _ = Fetch(ctx, c, NewKey(EntitySales, "elite_sales", nil), time.Minute, func(context.Context) (int, error) { return 1, nil })
	_, _ = Fetch(ctx, c, NewKey(EntityShowroomCars, "elite_showroom_cars", nil), time.Minute, func(context.Context) (int, error) { return 1, nil })

	c.InvalidateAll(ctx)
	assert.Equal(t, 0, c.Len())

	msgs := bus.messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].All)
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	bus := newRecordingBus()
	bus.err = errors.New("redis down")
	c := New(bus, TTLs{})

	assert.NotPanics(t, func() {
		c.Invalidate(context.Background(), EntitySales)
	})
}

func TestInFlightFetchDoesNotStoreAfterInvalidation(t *testing.T) {
	c := New(nil, TTLs{})
	ctx := context.Background()
	key := NewKey(EntitySales, "elite_sales", nil)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)

	go func() {
		v, _ := Fetch(ctx, c, key, time.Minute, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	c.InvalidateAll(ctx)

	fresh, err := Fetch(ctx, c, key, time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh, "post-invalidation read never joins the older fetch")

	close(release)
	assert.Equal(t, "stale", <-done, "older caller still receives its own result")

	again, err := Fetch(ctx, c, key, time.Minute, func(context.Context) (string, error) {
		return "unexpected", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", again)
}

func TestListenAppliesRemoteInvalidations(t *testing.T) {
	bus := newRecordingBus()
	c := New(bus, TTLs{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Listen(ctx))

	_, _ = Fetch(ctx, c, NewKey(EntityServiceTypes, "service_types", nil), time.Minute, func(context.Context) (int, error) { return 1, nil })

	bus.ch <- Message{Origin: c.origin, Entities: []string{EntityServiceTypes}}
	bus.ch <- Message{Origin: "other-instance", Entities: []string{EntitySales}}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, c.Len(), "own and unrelated messages leave entry intact")

	bus.ch <- Message{Origin: "other-instance", Entities: []string{EntityServiceTypes}}
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNewAppliesDefaultTTLs(t *testing.T) {
	c := New(nil, TTLs{Reports: 20 * time.Minute})
	assert.Equal(t, DefaultTTLs.Transactional, c.TTLs().Transactional)
	assert.Equal(t, DefaultTTLs.Dashboard, c.TTLs().Dashboard)
	assert.Equal(t, 20*time.Minute, c.TTLs().Reports)
}
