package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
	"github.com/abdosaeedelhassan/email-templates/integration/database/pg"
)

// Compile-time check.
var _ emailtemplate.ThemeRepository = (*ThemeRepository)(nil)

const themeColumns = `id, name, colours, is_default, created_at, updated_at, deleted_at`

// ThemeRepository stores themes in the email_template_themes table.
type ThemeRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewThemes creates a theme repository.
func NewThemes(pool *pgxpool.Pool) *ThemeRepository {
	return &ThemeRepository{pool: pool, now: time.Now}
}

func scanTheme(row pgx.Row) (*emailtemplate.Theme, error) {
	var th emailtemplate.Theme
	if err := row.Scan(&th.ID, &th.Name, &th.Colours, &th.IsDefault, &th.CreatedAt, &th.UpdatedAt, &th.DeletedAt); err != nil {
		return nil, err
	}
	return &th, nil
}

// ThemeByID implements emailtemplate.ThemeRepository.
func (r *ThemeRepository) ThemeByID(ctx context.Context, id uuid.UUID) (*emailtemplate.Theme, error) {
	const q = `SELECT ` + themeColumns + ` FROM email_template_themes WHERE id = $1 AND deleted_at IS NULL`

	th, err := scanTheme(conn(ctx, r.pool).QueryRow(ctx, q, id))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %s", emailtemplate.ErrThemeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find theme %s: %w", id, err)
	}
	return th, nil
}

// DefaultTheme implements emailtemplate.ThemeRepository. With several
// default themes the earliest created one wins.
func (r *ThemeRepository) DefaultTheme(ctx context.Context) (*emailtemplate.Theme, error) {
	const q = `SELECT ` + themeColumns + `
		FROM email_template_themes
		WHERE is_default AND deleted_at IS NULL
		ORDER BY created_at, id
		LIMIT 1`

	th, err := scanTheme(conn(ctx, r.pool).QueryRow(ctx, q))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: no default theme", emailtemplate.ErrThemeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find default theme: %w", err)
	}
	return th, nil
}

// Save creates or replaces a theme.
func (r *ThemeRepository) Save(ctx context.Context, th *emailtemplate.Theme) error {
	if th.ID == uuid.Nil {
		th.ID = uuid.New()
	}
	now := r.now().UTC()
	if th.CreatedAt.IsZero() {
		th.CreatedAt = now
	}
	th.UpdatedAt = now

	const q = `INSERT INTO email_template_themes (` + themeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			colours = EXCLUDED.colours,
			is_default = EXCLUDED.is_default,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`

	_, err := conn(ctx, r.pool).Exec(ctx, q,
		th.ID, th.Name, th.Colours, th.IsDefault, th.CreatedAt, th.UpdatedAt, th.DeletedAt)
	if err != nil {
		return fmt.Errorf("save theme %q: %w", th.Name, err)
	}
	return nil
}
