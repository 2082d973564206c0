package emailtemplate

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists templates. Implementations must be safe for
// concurrent use and must ignore soft-deleted rows in every read.
type Repository interface {
	// FindByKey returns the template for key whose language comes first in
	// locales. ErrNotFound when none of the locales has a row.
	FindByKey(ctx context.Context, key string, locales ...string) (*Template, error)
	// FindByID returns a template by ID or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	// Create stores a new template, assigning ID and timestamps when empty.
	Create(ctx context.Context, t *Template) error
	// Update overwrites the stored template with the same ID.
	Update(ctx context.Context, t *Template) error
	// Delete soft deletes the template with t.ID.
	Delete(ctx context.Context, t *Template) error
}

// ThemeRepository reads themes.
type ThemeRepository interface {
	// ThemeByID returns a theme or ErrThemeNotFound.
	ThemeByID(ctx context.Context, id uuid.UUID) (*Theme, error)
	// DefaultTheme returns the earliest created theme flagged as default,
	// or ErrThemeNotFound when none is.
	DefaultTheme(ctx context.Context) (*Theme, error)
}
