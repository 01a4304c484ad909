package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Method is the plugin interface for a credential source. Acquire returns
// the full header value to inject (e.g. "Basic ..." or "Bearer ...").
type Method interface {
	Acquire(ctx context.Context) (value string, err error)
}

// Factory builds a Method from a loosely-typed spec map. Decoding the map
// into a concrete config struct is the factory's responsibility.
type Factory func(spec map[string]interface{}) (Method, error)

var (
	mu        sync.RWMutex
	providers = map[string]Factory{}
)

func normalizeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register registers a credential provider factory under a type key
// (e.g. "oauth2", "basic"). The key is normalized to lower-case.
func Register(typ string, f Factory) {
	key := normalizeKey(typ)
	if key == "" || f == nil {
		return
	}
	mu.Lock()
	providers[key] = f
	mu.Unlock()
}

// Acquire builds a Method for the provider type from spec and acquires the
// header value once.
func Acquire(ctx context.Context, typ string, spec map[string]interface{}) (string, error) {
	mu.RLock()
	f, ok := providers[normalizeKey(typ)]
	mu.RUnlock()
	if !ok {
		return "", errors.New("auth: unsupported provider type: " + typ)
	}
	m, err := f(spec)
	if err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return m.Acquire(ctx)
}
