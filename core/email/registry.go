package email

import (
	"fmt"
	"slices"
	"sync"
)

// MailableFactory builds a sample mailable, for example to preview a
// template from an admin screen.
type MailableFactory func() Mailable

// Registry maps template keys to mailable factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]MailableFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]MailableFactory)}
}

// Register binds key to factory, replacing any previous binding.
func (r *Registry) Register(key string, factory MailableFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// New builds the mailable registered for key.
func (r *Registry) New(key string) (Mailable, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrMailableNotFound, key)
	}
	return factory(), nil
}

// Keys returns the registered template keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
