package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKey_String(t *testing.T) {
	a := NewKey("bitbucket", "repositories", 1, 10, "updated_on", "")
	b := NewKey("bitbucket", "repositories", 2, 10, "updated_on", "")
	if a.String() == b.String() {
		t.Errorf("distinct keys render equal: %s", a)
	}
	if a.String() != NewKey("bitbucket", "repositories", 1, 10, "updated_on", "").String() {
		t.Error("equal keys render differently")
	}
	// "1" and 1 are different parameters.
	if NewKey("x", "1").String() == NewKey("x", 1).String() {
		t.Error("string and int parameters collide")
	}
}

func TestCache_CoalescesInFlight(t *testing.T) {
	cache := NewCache()
	release := make(chan struct{})
	var calls int32

	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cache.Fetch(context.Background(), NewKey("k"), fn)
			if err != nil {
				t.Errorf("Fetch() error = %v", err)
			}
			results[i] = v
		}(i)
	}

	// Give the goroutines a chance to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fn calls = %d, want 1", got)
	}
	for i, v := range results {
		if v != "value" {
			t.Errorf("result[%d] = %v", i, v)
		}
	}
}

func TestCache_MemoizesSuccess(t *testing.T) {
	cache := NewCache()
	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	cache.Fetch(context.Background(), NewKey("a", 1), fn)
	v, _ := cache.Fetch(context.Background(), NewKey("a", 1), fn)
	cache.Fetch(context.Background(), NewKey("a", 2), fn)

	if v != 1 {
		t.Errorf("second Fetch() = %v, want memoized 1", v)
	}
	if calls != 2 {
		t.Errorf("fn calls = %d, want 2", calls)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	cache := NewCache()
	boom := errors.New("boom")
	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := cache.Fetch(context.Background(), NewKey("k"), fn); !errors.Is(err, boom) {
		t.Fatalf("first Fetch() error = %v, want boom", err)
	}
	v, err := cache.Fetch(context.Background(), NewKey("k"), fn)
	if err != nil || v != "ok" {
		t.Fatalf("second Fetch() = %v, %v", v, err)
	}
}

func TestCache_CallerCancellationDropsResult(t *testing.T) {
	cache := NewCache()
	release := make(chan struct{})
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		_, err := cache.Fetch(ctx, NewKey("slow"), func(fctx context.Context) (any, error) {
			<-release
			if fctx.Err() != nil {
				t.Errorf("shared fetch saw cancellation: %v", fctx.Err())
			}
			return "late", nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Fetch() error = %v, want context.Canceled", err)
		}
	}()

	cancel()
	<-done
	close(release)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if v, ok := cache.Peek(NewKey("slow")); ok {
			if v != "late" {
				t.Errorf("Peek() = %v, want late", v)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("detached fetch never populated the cache")
}

func TestCache_Invalidate(t *testing.T) {
	cache := NewCache()
	fn := func(ctx context.Context) (any, error) { return 1, nil }

	cache.Fetch(context.Background(), NewKey("bitbucket", "search", "a"), fn)
	cache.Fetch(context.Background(), NewKey("bitbucket", "search", "b"), fn)
	cache.Fetch(context.Background(), NewKey("bitbucket", "user"), fn)

	if n := cache.Invalidate("bitbucket", "search"); n != 2 {
		t.Errorf("Invalidate(search) = %d, want 2", n)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if n := cache.Invalidate(); n != 1 {
		t.Errorf("Invalidate() = %d, want 1", n)
	}
}
