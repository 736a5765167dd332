// Package resolver orchestrates the provider fallback chain.
//
// Providers are consulted strictly in priority order, one at a time: a later
// provider is never contacted when an earlier one already succeeded, both to
// respect upstream rate limits and to avoid wasted calls. The first success
// wins; every failure kind degrades to "try the next one" after logging.
package resolver

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"lyricsync/circuitbreaker"
	"lyricsync/logcolors"
	"lyricsync/query"
	"lyricsync/services/providers"
)

// NotFoundMessage is the human-readable text returned in place of lyrics
// when every provider has been exhausted. It rides in the same field real
// lyrics use so clients render it uniformly as text.
const NotFoundMessage = "Sorry, lyrics for this song could not be found on any provider."

const cacheKeyPrefix = "lyrics:"

// Store is the slice of the cache the resolver needs. *cache.PersistentCache
// satisfies it; tests supply an in-memory fake.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Config assembles a Resolver.
type Config struct {
	// Providers in strict priority order.
	Providers []providers.Provider

	// Store memoizes outcomes keyed by normalized query. Nil disables caching.
	Store Store

	// Timeout bounds each individual provider fetch so one slow upstream
	// cannot stall the whole chain. Zero means no per-provider timeout.
	Timeout time.Duration

	// Circuit breaker settings, applied per provider.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// Resolver resolves lyrics through an ordered provider chain with a
// read-through cache. Construct it once and inject it; it has no global
// state.
type Resolver struct {
	providers []providers.Provider
	store     Store
	timeout   time.Duration
	breakers  map[string]*circuitbreaker.CircuitBreaker
}

// New creates a Resolver from the given configuration.
func New(cfg Config) *Resolver {
	breakers := make(map[string]*circuitbreaker.CircuitBreaker, len(cfg.Providers))
	for _, p := range cfg.Providers {
		breakers[p.Name()] = circuitbreaker.New(circuitbreaker.Config{
			Name:      p.Name(),
			Threshold: cfg.BreakerThreshold,
			Cooldown:  cfg.BreakerCooldown,
		})
	}

	return &Resolver{
		providers: cfg.Providers,
		store:     cfg.Store,
		timeout:   cfg.Timeout,
		breakers:  breakers,
	}
}

// Resolve walks the provider chain for the given query and returns the first
// success, or the terminal not-found result when the chain is exhausted.
// The second return value reports whether the result came from cache.
//
// Provider-level failures never escape this method; they are logged and the
// chain continues as if the provider had reported NotFound.
func (r *Resolver) Resolve(ctx context.Context, artist, title string) (providers.Result, bool) {
	cacheKey := cacheKeyPrefix + query.Key(artist, title)

	if cached, ok := r.fromCache(cacheKey); ok {
		log.Infof("%s Cache hit for: %s - %s (source: %s)", logcolors.LogCacheLyrics, artist, title, cached.Source)
		return cached, true
	}

	for _, p := range r.providers {
		breaker := r.breakers[p.Name()]
		if breaker != nil && !breaker.Allow() {
			log.Warnf("%s Skipping %s: circuit open", logcolors.LogResolve, p.Name())
			continue
		}

		outcome := r.fetch(ctx, p, artist, title)

		switch outcome.Kind {
		case providers.OutcomeSuccess:
			if breaker != nil {
				breaker.RecordSuccess()
			}
			log.Infof("%s Resolved via %s (synced: %v)", logcolors.LogResolve, p.Name(), outcome.Result.Synced)
			r.toCache(cacheKey, *outcome.Result)
			return *outcome.Result, false

		case providers.OutcomeNotFound:
			// The provider worked; it just has nothing. Keeps the breaker closed.
			if breaker != nil {
				breaker.RecordSuccess()
			}
			log.Infof("%s %s has no lyrics, trying next provider", logcolors.LogResolve, p.Name())

		case providers.OutcomeAuthMissing:
			log.Warnf("%s %s credential missing, trying next provider: %v", logcolors.LogResolve, p.Name(), outcome.Err)

		case providers.OutcomeParseError:
			if breaker != nil {
				breaker.RecordFailure()
			}
			log.Errorf("%s %s extraction failed (site layout changed?): %v", logcolors.LogResolve, p.Name(), outcome.Err)

		case providers.OutcomeNetworkError:
			if breaker != nil {
				breaker.RecordFailure()
			}
			log.Warnf("%s %s transport failure, trying next provider: %v", logcolors.LogResolve, p.Name(), outcome.Err)
		}
	}

	log.Warnf("%s Chain exhausted for: %s - %s", logcolors.LogResolve, artist, title)

	terminal := providers.Result{
		Source: providers.SourceNone,
		Synced: false,
		Lyrics: NotFoundMessage,
	}
	r.toCache(cacheKey, terminal)
	return terminal, false
}

// fetch runs one provider under the per-provider timeout.
func (r *Resolver) fetch(ctx context.Context, p providers.Provider, artist, title string) providers.Outcome {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return p.Fetch(ctx, artist, title)
}

func (r *Resolver) fromCache(key string) (providers.Result, bool) {
	if r.store == nil {
		return providers.Result{}, false
	}
	raw, ok := r.store.Get(key)
	if !ok {
		return providers.Result{}, false
	}

	var result providers.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Warnf("%s Dropping malformed cache entry for key %s: %v", logcolors.LogCache, key, err)
		return providers.Result{}, false
	}
	return result, true
}

func (r *Resolver) toCache(key string, result providers.Result) {
	if r.store == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		log.Errorf("%s Failed to marshal result for caching: %v", logcolors.LogCache, err)
		return
	}
	if err := r.store.Set(key, string(data)); err != nil {
		log.Errorf("%s Failed to cache result: %v", logcolors.LogCache, err)
	}
}

// BreakerStats reports each provider's circuit breaker state for the health
// endpoint.
func (r *Resolver) BreakerStats() map[string]string {
	states := make(map[string]string, len(r.breakers))
	for name, cb := range r.breakers {
		state, _, _ := cb.Stats()
		states[name] = state.String()
	}
	return states
}

// ProviderNames returns the chain's provider identifiers in priority order.
func (r *Resolver) ProviderNames() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}
