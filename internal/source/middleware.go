package source

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"vouch/internal/model"
)

// sleepFunc is the delay used before the retry (injectable for tests).
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Options configures the call discipline one wrapped source follows.
type Options struct {
	// Timeout bounds each individual Fetch attempt.
	Timeout time.Duration
	// RetryBackoff is slept between the first attempt and the retry.
	RetryBackoff time.Duration
	// RequestsPerSecond and Burst feed the per-source rate limiter.
	// Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	// CacheTTL keeps successful evidence for repeat queries. Zero
	// disables caching.
	CacheTTL time.Duration
}

// OptionsFromConfig builds wrapper options from engine configuration.
func OptionsFromConfig(cfg model.SourceConfig) Options {
	return Options{
		Timeout:           cfg.Timeout,
		RetryBackoff:      cfg.RetryBackoff,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		CacheTTL:          cfg.CacheTTL,
	}
}

// wrapped decorates a Source with timeout, one retry, rate limiting and
// caching. A call that still fails after the retry returns the degraded
// envelope with a nil error: source failure is evidence-level data, not
// a pipeline error.
type wrapped struct {
	inner   Source
	opts    Options
	limiter *rate.Limiter
	cache   *gocache.Cache
}

// Wrap applies the call discipline to a source.
func Wrap(inner Source, opts Options) Source {
	w := &wrapped{inner: inner, opts: opts}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		w.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	if opts.CacheTTL > 0 {
		w.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return w
}

// WrapSet applies the same options to every source in the set.
func WrapSet(set Set, opts Options) Set {
	out := make(Set, len(set))
	for name, src := range set {
		out[name] = Wrap(src, opts)
	}
	return out
}

func (w *wrapped) Name() string { return w.inner.Name() }

func (w *wrapped) Fetch(ctx context.Context, q Query) (model.Evidence, error) {
	key := cacheKey(w.inner.Name(), q)
	if w.cache != nil {
		if hit, ok := w.cache.Get(key); ok {
			return hit.(model.Evidence), nil
		}
	}

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return Degraded(w.inner.Name(), err), nil
		}
	}

	ev, err := w.attempt(ctx, q)
	if err != nil {
		// One retry with backoff; cancellation aborts it.
		if sleepErr := sleepFunc(ctx, w.opts.RetryBackoff); sleepErr != nil {
			return Degraded(w.inner.Name(), err), nil
		}
		ev, err = w.attempt(ctx, q)
	}
	if err != nil {
		return Degraded(w.inner.Name(), err), nil
	}

	if w.cache != nil {
		w.cache.Set(key, ev, w.opts.CacheTTL)
	}
	return ev, nil
}

func (w *wrapped) attempt(ctx context.Context, q Query) (model.Evidence, error) {
	if w.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.opts.Timeout)
		defer cancel()
	}
	return w.inner.Fetch(ctx, q)
}

func cacheKey(name string, q Query) string {
	return fmt.Sprintf("%s|%s|%s", name, q.BusinessName, q.LegalForm)
}
