package mongostore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

const (
	TemplatesCollection = "email_templates"
	ThemesCollection    = "email_template_themes"
)

// Compile-time checks.
var (
	_ emailtemplate.Repository      = (*Store)(nil)
	_ emailtemplate.ThemeRepository = (*Store)(nil)
)

// Store keeps templates and themes in two MongoDB collections.
type Store struct {
	templates *mongo.Collection
	themes    *mongo.Collection
	now       func() time.Time
}

// New creates a store over db.
func New(db *mongo.Database) *Store {
	return &Store{
		templates: db.Collection(TemplatesCollection),
		themes:    db.Collection(ThemesCollection),
		now:       time.Now,
	}
}

// EnsureIndexes creates the lookup indexes. Live (key, language) pairs are
// unique; soft-deleted documents are excluded from the constraint.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.templates.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "key", Value: 1}, {Key: "language", Value: 1}},
			Options: options.Index().
				SetName("key_language_live").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "deleted", Value: false}}),
		},
	})
	if err != nil {
		return fmt.Errorf("create template indexes: %w", err)
	}

	_, err = s.themes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "is_default", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("default_created"),
	})
	if err != nil {
		return fmt.Errorf("create theme indexes: %w", err)
	}
	return nil
}

// FindByKey implements emailtemplate.Repository. All candidate languages are
// fetched in one query and the earliest locale in the list wins.
func (s *Store) FindByKey(ctx context.Context, key string, locales ...string) (*emailtemplate.Template, error) {
	filter := bson.D{
		{Key: "key", Value: key},
		{Key: "language", Value: bson.D{{Key: "$in", Value: locales}}},
		{Key: "deleted", Value: false},
	}
	cur, err := s.templates.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find template %q: %w", key, err)
	}

	var docs []templateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read template %q: %w", key, err)
	}

	best := -1
	for i, d := range docs {
		rank := slices.Index(locales, d.Language)
		if rank < 0 {
			continue
		}
		if best < 0 || rank < slices.Index(locales, docs[best].Language) {
			best = i
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("%w: key %q in %v", emailtemplate.ErrNotFound, key, locales)
	}
	return docs[best].template()
}

// FindByID implements emailtemplate.Repository.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*emailtemplate.Template, error) {
	var d templateDoc
	err := s.templates.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "deleted", Value: false}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find template %s: %w", id, err)
	}
	return d.template()
}

// Create implements emailtemplate.Repository.
func (s *Store) Create(ctx context.Context, t *emailtemplate.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := s.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if _, err := s.templates.InsertOne(ctx, toTemplateDoc(t)); err != nil {
		return writeError(err, t)
	}
	return nil
}

// Update implements emailtemplate.Repository.
func (s *Store) Update(ctx context.Context, t *emailtemplate.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var prev templateDoc
	err := s.templates.FindOne(ctx, bson.D{{Key: "_id", Value: t.ID.String()}, {Key: "deleted", Value: false}}).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, t.ID)
	}
	if err != nil {
		return fmt.Errorf("find template %s: %w", t.ID, err)
	}

	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now().UTC()
	t.DeletedAt = nil

	res, err := s.templates.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: t.ID.String()}, {Key: "deleted", Value: false}},
		toTemplateDoc(t))
	if err != nil {
		return writeError(err, t)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, t.ID)
	}
	return nil
}

// Delete implements emailtemplate.Repository as a soft delete.
func (s *Store) Delete(ctx context.Context, t *emailtemplate.Template) error {
	now := s.now().UTC()
	res, err := s.templates.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: t.ID.String()}, {Key: "deleted", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "deleted", Value: true}, {Key: "deleted_at", Value: now}}}})
	if err != nil {
		return fmt.Errorf("delete template %s: %w", t.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id %s", emailtemplate.ErrNotFound, t.ID)
	}
	t.DeletedAt = &now
	return nil
}

// ThemeByID implements emailtemplate.ThemeRepository.
func (s *Store) ThemeByID(ctx context.Context, id uuid.UUID) (*emailtemplate.Theme, error) {
	var d themeDoc
	err := s.themes.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "deleted", Value: false}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id %s", emailtemplate.ErrThemeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find theme %s: %w", id, err)
	}
	return d.theme()
}

// DefaultTheme implements emailtemplate.ThemeRepository.
func (s *Store) DefaultTheme(ctx context.Context) (*emailtemplate.Theme, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	var d themeDoc
	err := s.themes.FindOne(ctx, bson.D{{Key: "is_default", Value: true}, {Key: "deleted", Value: false}}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: no default theme", emailtemplate.ErrThemeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find default theme: %w", err)
	}
	return d.theme()
}

// SaveTheme creates or replaces a theme.
func (s *Store) SaveTheme(ctx context.Context, th *emailtemplate.Theme) error {
	if th.ID == uuid.Nil {
		th.ID = uuid.New()
	}
	now := s.now().UTC()
	if th.CreatedAt.IsZero() {
		th.CreatedAt = now
	}
	th.UpdatedAt = now

	_, err := s.themes.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: th.ID.String()}},
		toThemeDoc(th),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save theme %q: %w", th.Name, err)
	}
	return nil
}

func writeError(err error, t *emailtemplate.Template) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: key %q already exists for %s", emailtemplate.ErrInvalidTemplate, t.Key, t.Language)
	}
	return fmt.Errorf("save template %q: %w", t.Key, err)
}
