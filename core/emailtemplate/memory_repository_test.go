package emailtemplate_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

func newTemplate(key, lang string) *emailtemplate.Template {
	return &emailtemplate.Template{
		Key:      key,
		Language: lang,
		Name:     key + " " + lang,
		Subject:  "Subject " + lang,
		Content:  "Content " + lang,
	}
}

func TestMemoryRepository_FindByKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, newTemplate("welcome", "en_GB")))
	require.NoError(t, repo.Create(ctx, newTemplate("welcome", "fr")))

	got, err := repo.FindByKey(ctx, "welcome", "fr", "en_GB")
	require.NoError(t, err)
	assert.Equal(t, "fr", got.Language)

	got, err = repo.FindByKey(ctx, "welcome", "de", "en_GB")
	require.NoError(t, err)
	assert.Equal(t, "en_GB", got.Language)

	_, err = repo.FindByKey(ctx, "welcome", "de")
	assert.ErrorIs(t, err, emailtemplate.ErrNotFound)

	_, err = repo.FindByKey(ctx, "missing", "en_GB")
	assert.ErrorIs(t, err, emailtemplate.ErrNotFound)
}

func TestMemoryRepository_CreateAssignsIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	tpl := newTemplate("welcome", "en-gb")
	require.NoError(t, repo.Create(ctx, tpl))

	assert.NotEqual(t, uuid.Nil, tpl.ID)
	assert.Equal(t, "en_GB", tpl.Language)
	assert.False(t, tpl.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.Key, got.Key)
}

func TestMemoryRepository_RejectsDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, newTemplate("welcome", "en_GB")))

	err := repo.Create(ctx, newTemplate("welcome", "en_GB"))
	assert.ErrorIs(t, err, emailtemplate.ErrInvalidTemplate)

	err = repo.Create(ctx, newTemplate("bad key!", "en_GB"))
	assert.ErrorIs(t, err, emailtemplate.ErrInvalidTemplate)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	tpl := newTemplate("welcome", "en_GB")
	require.NoError(t, repo.Create(ctx, tpl))

	got, err := repo.FindByKey(ctx, "welcome", "en_GB")
	require.NoError(t, err)
	got.Subject = "changed"

	again, err := repo.FindByKey(ctx, "welcome", "en_GB")
	require.NoError(t, err)
	assert.Equal(t, "Subject en_GB", again.Subject)
}

func TestMemoryRepository_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	tpl := newTemplate("welcome", "en_GB")
	require.NoError(t, repo.Create(ctx, tpl))

	tpl.Subject = "Updated"
	require.NoError(t, repo.Update(ctx, tpl))

	got, err := repo.FindByKey(ctx, "welcome", "en_GB")
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Subject)

	require.NoError(t, repo.Delete(ctx, tpl))
	assert.True(t, tpl.IsDeleted())

	_, err = repo.FindByKey(ctx, "welcome", "en_GB")
	assert.ErrorIs(t, err, emailtemplate.ErrNotFound)
	_, err = repo.FindByID(ctx, tpl.ID)
	assert.ErrorIs(t, err, emailtemplate.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, tpl), emailtemplate.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, tpl), emailtemplate.ErrNotFound)

	// The key can be reused once the old row is deleted.
	require.NoError(t, repo.Create(ctx, newTemplate("welcome", "en_GB")))
}

func TestMemoryRepository_DefaultTheme(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	_, err := repo.DefaultTheme(ctx)
	assert.ErrorIs(t, err, emailtemplate.ErrThemeNotFound)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := &emailtemplate.Theme{Name: "later", IsDefault: true, CreatedAt: base.Add(time.Hour)}
	earliest := &emailtemplate.Theme{Name: "earliest", IsDefault: true, CreatedAt: base}
	plain := &emailtemplate.Theme{Name: "plain", CreatedAt: base.Add(-time.Hour)}
	for _, th := range []*emailtemplate.Theme{later, earliest, plain} {
		require.NoError(t, repo.SaveTheme(ctx, th))
	}

	got, err := repo.DefaultTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "earliest", got.Name)

	byID, err := repo.ThemeByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.Equal(t, "plain", byID.Name)

	_, err = repo.ThemeByID(ctx, uuid.New())
	assert.ErrorIs(t, err, emailtemplate.ErrThemeNotFound)
}
