package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
	"github.com/abdosaeedelhassan/email-templates/integration/database/pg"
)

// Compile-time check.
var _ emailtemplate.Repository = (*Repository)(nil)

const templateColumns = `id, key, language, name, view, from_name, from_email, subject, title,
	preheader, content, logo, theme_id, created_at, updated_at, deleted_at`

// Repository stores templates in the email_templates table.
type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a template repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, now: time.Now}
}

func scanTemplate(row pgx.Row) (*emailtemplate.Template, error) {
	var t emailtemplate.Template
	err := row.Scan(
		&t.ID, &t.Key, &t.Language, &t.Name, &t.View, &t.From.Name, &t.From.Email,
		&t.Subject, &t.Title, &t.Preheader, &t.Content, &t.Logo, &t.ThemeID,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByKey implements emailtemplate.Repository.
func (r *Repository) FindByKey(ctx context.Context, key string, locales ...string) (*emailtemplate.Template, error) {
	const q = `SELECT ` + templateColumns + `
		FROM email_templates
		WHERE key = $1 AND language = ANY($2::text[]) AND deleted_at IS NULL
		ORDER BY array_position($2::text[], language)
		LIMIT 1`

	t, err := scanTemplate(conn(ctx, r.pool).QueryRow(ctx, q, key, locales))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: key %q in %v", emailtemplate.ErrNotFound, key, locales)
	}
	if err != nil {
		return nil, fmt.Errorf("find template %q: %w", key, err)
	}
	return t, nil
}

// FindByID implements emailtemplate.Repository.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*emailtemplate.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM email_templates WHERE id = $1 AND deleted_at IS NULL`

	t, err := scanTemplate(conn(ctx, r.pool).QueryRow(ctx, q, id))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find template %s: %w", id, err)
	}
	return t, nil
}

// Create implements emailtemplate.Repository.
func (r *Repository) Create(ctx context.Context, t *emailtemplate.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := r.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	const q = `INSERT INTO email_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULL)`

	_, err := conn(ctx, r.pool).Exec(ctx, q,
		t.ID, t.Key, t.Language, t.Name, t.View, t.From.Name, t.From.Email,
		t.Subject, t.Title, t.Preheader, t.Content, t.Logo, t.ThemeID,
		t.CreatedAt, t.UpdatedAt,
	)
	return r.writeError(err, t)
}

// Update implements emailtemplate.Repository.
func (r *Repository) Update(ctx context.Context, t *emailtemplate.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = r.now().UTC()

	const q = `UPDATE email_templates SET
			key = $2, language = $3, name = $4, view = $5, from_name = $6, from_email = $7,
			subject = $8, title = $9, preheader = $10, content = $11, logo = $12,
			theme_id = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING created_at`

	err := conn(ctx, r.pool).QueryRow(ctx, q,
		t.ID, t.Key, t.Language, t.Name, t.View, t.From.Name, t.From.Email,
		t.Subject, t.Title, t.Preheader, t.Content, t.Logo, t.ThemeID, t.UpdatedAt,
	).Scan(&t.CreatedAt)
	if pg.IsNotFoundError(err) {
		return fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, t.ID)
	}
	return r.writeError(err, t)
}

// Delete implements emailtemplate.Repository as a soft delete.
func (r *Repository) Delete(ctx context.Context, t *emailtemplate.Template) error {
	now := r.now().UTC()

	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE email_templates SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		t.ID, now)
	if err != nil {
		return fmt.Errorf("delete template %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, t.ID)
	}
	t.DeletedAt = &now
	return nil
}

func (r *Repository) writeError(err error, t *emailtemplate.Template) error {
	switch {
	case err == nil:
		return nil
	case pg.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: key %q already exists for %s", emailtemplate.ErrInvalidTemplate, t.Key, t.Language)
	case pg.IsForeignKeyViolationError(err):
		return errors.Join(emailtemplate.ErrThemeNotFound, err)
	default:
		return fmt.Errorf("save template %q: %w", t.Key, err)
	}
}
