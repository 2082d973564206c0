package emailtemplate

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Compile-time checks.
var (
	_ Repository      = (*MemoryRepository)(nil)
	_ ThemeRepository = (*MemoryRepository)(nil)
)

// MemoryRepository stores templates and themes in memory. It is intended for
// tests and local development.
type MemoryRepository struct {
	mu        sync.RWMutex
	templates map[uuid.UUID]*Template
	themes    map[uuid.UUID]*Theme
	now       func() time.Time
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		templates: make(map[uuid.UUID]*Template),
		themes:    make(map[uuid.UUID]*Theme),
		now:       time.Now,
	}
}

// FindByKey implements Repository.
func (m *MemoryRepository) FindByKey(_ context.Context, key string, locales ...string) (*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		best     *Template
		bestRank = len(locales)
	)
	for _, t := range m.templates {
		if t.IsDeleted() || t.Key != key {
			continue
		}
		rank := slices.Index(locales, t.Language)
		if rank < 0 || rank >= bestRank {
			continue
		}
		best, bestRank = t, rank
	}
	if best == nil {
		return nil, fmt.Errorf("%w: key %q in %v", ErrNotFound, key, locales)
	}
	return best.Clone(), nil
}

// FindByID implements Repository.
func (m *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.templates[id]
	if !ok || t.IsDeleted() {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return t.Clone(), nil
}

// Create implements Repository.
func (m *MemoryRepository) Create(_ context.Context, t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.duplicate(t) {
		return fmt.Errorf("%w: key %q already exists for %s", ErrInvalidTemplate, t.Key, t.Language)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := m.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	stored := t.Clone()
	stored.Theme = nil
	m.templates[t.ID] = stored
	return nil
}

// Update implements Repository.
func (m *MemoryRepository) Update(_ context.Context, t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.templates[t.ID]
	if !ok || prev.IsDeleted() {
		return fmt.Errorf("%w: id %s", ErrNotFound, t.ID)
	}
	if m.duplicate(t) {
		return fmt.Errorf("%w: key %q already exists for %s", ErrInvalidTemplate, t.Key, t.Language)
	}

	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = m.now()

	stored := t.Clone()
	stored.Theme = nil
	m.templates[t.ID] = stored
	return nil
}

// Delete implements Repository.
func (m *MemoryRepository) Delete(_ context.Context, t *Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.templates[t.ID]
	if !ok || stored.IsDeleted() {
		return fmt.Errorf("%w: id %s", ErrNotFound, t.ID)
	}
	now := m.now()
	stored.DeletedAt = &now
	t.DeletedAt = &now
	return nil
}

// duplicate reports whether another live template uses t's key and language.
// Must be called with m.mu held.
func (m *MemoryRepository) duplicate(t *Template) bool {
	for id, other := range m.templates {
		if id != t.ID && !other.IsDeleted() && other.Key == t.Key && other.Language == t.Language {
			return true
		}
	}
	return false
}

// SaveTheme creates or replaces a theme.
func (m *MemoryRepository) SaveTheme(_ context.Context, th *Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if th.ID == uuid.Nil {
		th.ID = uuid.New()
	}
	now := m.now()
	if th.CreatedAt.IsZero() {
		th.CreatedAt = now
	}
	th.UpdatedAt = now
	m.themes[th.ID] = th.Clone()
	return nil
}

// ThemeByID implements ThemeRepository.
func (m *MemoryRepository) ThemeByID(_ context.Context, id uuid.UUID) (*Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	th, ok := m.themes[id]
	if !ok || th.DeletedAt != nil {
		return nil, fmt.Errorf("%w: id %s", ErrThemeNotFound, id)
	}
	return th.Clone(), nil
}

// DefaultTheme implements ThemeRepository.
func (m *MemoryRepository) DefaultTheme(_ context.Context) (*Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var best *Theme
	for _, th := range m.themes {
		if !th.IsDefault || th.DeletedAt != nil {
			continue
		}
		if best == nil || th.CreatedAt.Before(best.CreatedAt) ||
			(th.CreatedAt.Equal(best.CreatedAt) && th.ID.String() < best.ID.String()) {
			best = th
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no default theme", ErrThemeNotFound)
	}
	return best.Clone(), nil
}
