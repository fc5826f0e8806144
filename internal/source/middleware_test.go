package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"vouch/internal/model"
)

// flaky fails a set number of times before succeeding.
type flaky struct {
	failures int
	calls    int
}

func (f *flaky) Name() string { return "flaky" }

func (f *flaky) Fetch(ctx context.Context, q Query) (model.Evidence, error) {
	f.calls++
	if f.calls <= f.failures {
		return model.Evidence{}, errors.New("transient failure")
	}
	return model.Evidence{
		Source: f.Name(),
		Search: &model.SearchResults{Results: []model.SearchResult{{Title: "hit"}}},
	}, nil
}

func swapSleep(t *testing.T, fn func(context.Context, time.Duration) error) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = fn
	t.Cleanup(func() { sleepFunc = orig })
}

func testQuery() Query {
	return Query{BusinessName: "Acme Ltd", LegalForm: model.FormLimitedCompany}
}

func TestWrap_RetriesOnce(t *testing.T) {
	var slept []time.Duration
	swapSleep(t, func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})

	inner := &flaky{failures: 1}
	src := Wrap(inner, Options{RetryBackoff: 250 * time.Millisecond})

	ev, err := src.Fetch(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if ev.Degraded {
		t.Error("evidence degraded despite successful retry")
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls)
	}
	if len(slept) != 1 || slept[0] != 250*time.Millisecond {
		t.Errorf("slept %v, want one backoff of 250ms", slept)
	}
}

func TestWrap_DegradesAfterRetry(t *testing.T) {
	swapSleep(t, func(ctx context.Context, d time.Duration) error { return nil })

	inner := &flaky{failures: 5}
	src := Wrap(inner, Options{})

	ev, err := src.Fetch(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("degraded evidence must not surface as an error, got %v", err)
	}
	if !ev.Degraded {
		t.Error("evidence not marked degraded")
	}
	if ev.Failure == "" {
		t.Error("degraded evidence missing failure detail")
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want exactly one retry", inner.calls)
	}
}

func TestWrap_CancelDuringBackoff(t *testing.T) {
	swapSleep(t, func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	})

	inner := &flaky{failures: 5}
	src := Wrap(inner, Options{RetryBackoff: time.Second})

	ev, err := src.Fetch(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !ev.Degraded {
		t.Error("cancelled backoff should yield degraded evidence")
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1: the retry was cancelled", inner.calls)
	}
}

func TestWrap_CachesSuccess(t *testing.T) {
	inner := &flaky{}
	src := Wrap(inner, Options{CacheTTL: time.Minute})

	first, err := src.Fetch(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := src.Fetch(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1 (second call served from cache)", inner.calls)
	}
	if first.Search == nil || second.Search == nil {
		t.Error("cached evidence lost its payload")
	}
}

func TestWrap_DoesNotCacheDegraded(t *testing.T) {
	swapSleep(t, func(ctx context.Context, d time.Duration) error { return nil })

	inner := &flaky{failures: 2}
	src := Wrap(inner, Options{CacheTTL: time.Minute})

	ev, _ := src.Fetch(context.Background(), testQuery())
	if !ev.Degraded {
		t.Fatal("first fetch should degrade (two failures, one retry)")
	}

	ev, _ = src.Fetch(context.Background(), testQuery())
	if ev.Degraded {
		t.Error("second fetch should succeed, not replay the degraded result")
	}
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3", inner.calls)
	}
}

func TestWrap_LimiterRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := Wrap(&flaky{}, Options{RequestsPerSecond: 0.001, Burst: 1})
	// Drain the burst token on a live context first.
	_, _ = src.Fetch(context.Background(), testQuery())

	ev, err := src.Fetch(ctx, testQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !ev.Degraded {
		t.Error("limiter wait on a cancelled context should degrade")
	}
}

func TestWrapSet_WrapsEverySource(t *testing.T) {
	set := Set{
		"a": &Static{SourceName: "a"},
		"b": &Static{SourceName: "b"},
	}
	wrappedSet := WrapSet(set, Options{})
	if len(wrappedSet) != 2 {
		t.Fatalf("got %d sources, want 2", len(wrappedSet))
	}
	for name, src := range wrappedSet {
		if _, ok := src.(*wrapped); !ok {
			t.Errorf("source %s not wrapped", name)
		}
	}
}

func TestCacheKey_SeparatesForms(t *testing.T) {
	q1 := Query{BusinessName: "Acme", LegalForm: model.FormLimitedCompany}
	q2 := Query{BusinessName: "Acme", LegalForm: model.FormSoleTrader}
	if cacheKey("registry", q1) == cacheKey("registry", q2) {
		t.Error("cache key must include the legal form")
	}
}
