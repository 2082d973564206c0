package emailtemplate

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
	"github.com/abdosaeedelhassan/email-templates/core/logger"
)

// RenderData is a template with every text field resolved against a data
// context, ready for the HTML layout.
type RenderData struct {
	User          any
	Content       string
	Subject       string
	PreHeaderText string
	Title         string
	Theme         Colours
	Logo          string
	Language      string
	View          string
}

// RecipientFunc returns the sample recipient used for previews.
type RecipientFunc func(ctx context.Context) (any, error)

// Service is the entry point for finding, maintaining and rendering email
// templates.
type Service struct {
	cfg       Config
	repo      Repository
	themes    ThemeRepository
	resolver  *Resolver
	assets    AssetResolver
	recipient RecipientFunc
	now       func() time.Time
	logger    *slog.Logger
	views     map[string]ViewFunc

	resolverOpts []ResolverOption
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithResolverOptions passes options to the token resolver.
func WithResolverOptions(opts ...ResolverOption) ServiceOption {
	return func(s *Service) {
		s.resolverOpts = append(s.resolverOpts, opts...)
	}
}

// WithAssetResolver sets how relative logo paths become URLs. The default
// joins them onto Config.AppURL.
func WithAssetResolver(a AssetResolver) ServiceOption {
	return func(s *Service) {
		if a != nil {
			s.assets = a
		}
	}
}

// WithPreviewRecipient sets the recipient shown in previews.
func WithPreviewRecipient(fn RecipientFunc) ServiceOption {
	return func(s *Service) {
		s.recipient = fn
	}
}

// WithClock overrides the time source used for preview data.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service. Wrap repo in a CachedRepository to cache
// lookups; ClearCache is a no-op otherwise.
func NewService(cfg Config, repo Repository, themes ThemeRepository, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:    cfg,
		repo:   repo,
		themes: themes,
		assets: BaseURLAssets(cfg.AppURL),
		now:    time.Now,
		logger: logger.Nop(),
		views:  builtinViews(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = NewResolver(cfg, s.resolverOpts...)
	return s
}

// Resolver returns the token resolver used for rendering.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// FindByKey returns the template for key in locale, falling back to the
// default locale, with its theme attached. An empty locale means the default.
func (s *Service) FindByKey(ctx context.Context, key, locale string) (*Template, error) {
	locales := candidateLocales(locale, s.cfg.DefaultLocale)

	t, err := s.repo.FindByKey(ctx, key, locales...)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.DebugContext(ctx, "email template not found",
				logger.Component("emailtemplate"), logger.TemplateKey(key), logger.Locale(locale))
		}
		return nil, err
	}

	theme, err := s.resolveTheme(ctx, t)
	if err != nil {
		return nil, err
	}
	t.Theme = theme
	return t, nil
}

// resolveTheme returns the template's own theme when it still exists, else
// the default theme.
func (s *Service) resolveTheme(ctx context.Context, t *Template) (*Theme, error) {
	if t.ThemeID != nil {
		th, err := s.themes.ThemeByID(ctx, *t.ThemeID)
		switch {
		case err == nil:
			return th, nil
		case !errors.Is(err, ErrThemeNotFound):
			return nil, err
		}
		s.logger.WarnContext(ctx, "template theme missing, using default",
			logger.Component("emailtemplate"), logger.TemplateKey(t.Key),
			slog.String("theme_id", t.ThemeID.String()))
	}

	th, err := s.themes.DefaultTheme(ctx)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.Key, err)
	}
	return th, nil
}

// Create validates and stores a new template.
func (s *Service) Create(ctx context.Context, t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, t)
}

// Update validates and stores changes to an existing template.
func (s *Service) Update(ctx context.Context, t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

// Delete soft deletes a template.
func (s *Service) Delete(ctx context.Context, t *Template) error {
	return s.repo.Delete(ctx, t)
}

// ClearCache evicts every cached locale of key.
func (s *Service) ClearCache(ctx context.Context, key string) error {
	if c, ok := s.repo.(*CachedRepository); ok {
		return c.Evict(ctx, key)
	}
	return nil
}

// RenderData resolves the template's text fields against data. The template
// is available to tokens as emailTemplate unless data supplies its own.
func (s *Service) RenderData(ctx context.Context, t *Template, data any) (RenderData, error) {
	if t == nil {
		return RenderData{}, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return RenderData{}, err
	}

	scope := withTemplate{data: data, tpl: t}
	user, _ := Lookup(data, []string{"user"})

	logo := t.Logo
	if logo == "" {
		logo = s.cfg.DefaultLogo
	}

	return RenderData{
		User:          user,
		Content:       s.resolver.Resolve(t.Content, scope),
		Subject:       s.resolver.Resolve(t.Subject, scope),
		PreHeaderText: s.resolver.Resolve(t.Preheader, scope),
		Title:         s.resolver.Resolve(t.Title, scope),
		Theme:         themeColours(t.Theme),
		Logo:          s.assets.AssetURL(logo),
		Language:      t.Language,
		View:          t.View,
	}, nil
}

// RenderHTML renders resolved data with the view it names. An empty view
// means DefaultView; an unregistered one returns ErrViewNotFound.
func (s *Service) RenderHTML(ctx context.Context, rd RenderData) (string, error) {
	layout, err := s.view(rd.View)
	if err != nil {
		s.logger.WarnContext(ctx, "email template view not registered",
			logger.Component("emailtemplate"), slog.String("view", rd.View))
		return "", fmt.Errorf("%w: %q", err, rd.View)
	}
	return templates.Render(ctx, layout(templates.LayoutData{
		Language:      rd.Language,
		Title:         rd.Title,
		PreHeaderText: rd.PreHeaderText,
		Content:       rd.Content,
		Logo:          rd.Logo,
		LogoAlt:       s.cfg.AppName,
		Footer:        s.cfg.Footer,
		Palette:       rd.Theme.Palette(),
	}))
}

// PreviewData builds a sample context for previews.
func (s *Service) PreviewData(ctx context.Context) (Data, error) {
	var user any
	if s.recipient != nil {
		u, err := s.recipient(ctx)
		if err != nil {
			return nil, fmt.Errorf("preview recipient: %w", err)
		}
		user = u
	}

	return Data{
		"user":            user,
		"tokenUrl":        s.cfg.AppURL,
		"verificationUrl": s.cfg.AppURL,
		"expiresAt":       s.now(),
		"plainText":       strings.ReplaceAll(uuid.NewString(), "-", ""),
	}, nil
}

// Preview renders t with sample data and returns the HTML base64 encoded.
func (s *Service) Preview(ctx context.Context, t *Template) (string, error) {
	data, err := s.PreviewData(ctx)
	if err != nil {
		return "", err
	}
	rd, err := s.RenderData(ctx, t, data)
	if err != nil {
		return "", err
	}
	html, err := s.RenderHTML(ctx, rd)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(html)), nil
}
