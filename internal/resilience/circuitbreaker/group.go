package circuitbreaker

import (
	"sort"
	"sync"
)

// Group lazily creates one circuit breaker per key, typically a feed host.
type Group struct {
	mu        sync.Mutex
	newConfig func(key string) Config
	breakers  map[string]*CircuitBreaker
}

// NewGroup returns a Group that builds each breaker from newConfig(key).
func NewGroup(newConfig func(key string) Config) *Group {
	return &Group{
		newConfig: newConfig,
		breakers:  make(map[string]*CircuitBreaker),
	}
}

// Get returns the breaker for key, creating it on first use.
func (g *Group) Get(key string) *CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	cb, ok := g.breakers[key]
	if !ok {
		cb = New(g.newConfig(key))
		g.breakers[key] = cb
	}
	return cb
}

// Execute runs fn through the breaker for key.
func (g *Group) Execute(key string, fn func() (interface{}, error)) (interface{}, error) {
	return g.Get(key).Execute(fn)
}

// OpenKeys returns the sorted keys whose breaker is currently open.
func (g *Group) OpenKeys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var keys []string
	for key, cb := range g.breakers {
		if cb.IsOpen() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
