package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGetLoadsThroughOnce(t *testing.T) {
	c := NewCache(time.Minute)
	calls := 0
	load := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Get(context.Background(), c, Users, "", load)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d items", len(got))
		}
	}
	if calls != 1 {
		t.Fatalf("loader ran %d times, want 1", calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := NewCache(time.Minute)
	calls := 0
	load := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if v, _ := Get(context.Background(), c, Orders, "", load); v != 1 {
		t.Fatalf("first read = %d, want 1", v)
	}
	c.Invalidate(Orders)
	if v, _ := Get(context.Background(), c, Orders, "", load); v != 2 {
		t.Fatalf("read after invalidate = %d, want 2", v)
	}
}

func TestInvalidateCoversAllParams(t *testing.T) {
	c := NewCache(time.Minute)
	calls := map[string]int{}
	loader := func(params string) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			calls[params]++
			return params, nil
		}
	}

	if _, err := Get(context.Background(), c, Orders, "service_id=1", loader("service_id=1")); err != nil {
		t.Fatal(err)
	}
	if _, err := Get(context.Background(), c, Orders, "service_id=2", loader("service_id=2")); err != nil {
		t.Fatal(err)
	}

	// One write discards every cached view of the collection.
	c.Invalidate(Orders)

	if _, err := Get(context.Background(), c, Orders, "service_id=1", loader("service_id=1")); err != nil {
		t.Fatal(err)
	}
	if calls["service_id=1"] != 2 {
		t.Fatalf("parameterised view not invalidated: %v", calls)
	}
}

func TestInvalidateLeavesOtherCollections(t *testing.T) {
	c := NewCache(time.Minute)
	calls := 0
	load := func(ctx context.Context) (int, error) { calls++; return calls, nil }

	if _, err := Get(context.Background(), c, Users, "", load); err != nil {
		t.Fatal(err)
	}
	c.Invalidate(Orders)
	if _, err := Get(context.Background(), c, Users, "", load); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("unrelated collection reloaded, calls = %d", calls)
	}
}

func TestFailedLoadIsNotCached(t *testing.T) {
	c := NewCache(time.Minute)
	calls := 0
	load := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("backend down")
		}
		return 42, nil
	}

	if _, err := Get(context.Background(), c, Reviews, "", load); err == nil {
		t.Fatal("expected first load to fail")
	}
	v, err := Get(context.Background(), c, Reviews, "", load)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if v != 42 {
		t.Fatalf("retry = %d, want 42", v)
	}
}

func TestExpiredEntryReloads(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	calls := 0
	load := func(ctx context.Context) (int, error) { calls++; return calls, nil }

	if _, err := Get(context.Background(), c, Games, "", load); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if v, _ := Get(context.Background(), c, Games, "", load); v != 2 {
		t.Fatalf("stale entry served, got %d", v)
	}
}

func TestConcurrentReadersShareOneLoad(t *testing.T) {
	c := NewCache(time.Minute)
	var mu sync.Mutex
	calls := 0
	gate := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-gate
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Get(context.Background(), c, Products, "", load)
			if err != nil || v != "shared" {
				t.Errorf("get: %v %q", err, v)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond) // let every reader queue up
	close(gate)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("loader ran %d times, want 1", calls)
	}
}

func TestWaiterHonorsContextCancellation(t *testing.T) {
	c := NewCache(time.Minute)
	gate := make(chan struct{})
	go func() {
		_, _ = Get(context.Background(), c, TopUps, "", func(ctx context.Context) (int, error) {
			<-gate
			return 1, nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Get(ctx, c, TopUps, "", func(ctx context.Context) (int, error) { return 2, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(gate)
}
