package emailtemplate

import (
	"github.com/a-h/templ"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
)

// ViewFunc builds the HTML document for a resolved template.
type ViewFunc func(templates.LayoutData) templ.Component

// Built-in view names. A template with an empty View uses DefaultView.
const (
	DefaultView = "default"
	PlainView   = "plain"
)

func builtinViews() map[string]ViewFunc {
	return map[string]ViewFunc{
		DefaultView: templates.Layout,
		PlainView:   templates.PlainLayout,
	}
}

// WithView registers fn under name, replacing any view already registered
// with that name, the built-ins included.
func WithView(name string, fn ViewFunc) ServiceOption {
	return func(s *Service) {
		if name != "" && fn != nil {
			s.views[name] = fn
		}
	}
}

// view returns the layout registered for name.
func (s *Service) view(name string) (ViewFunc, error) {
	if name == "" {
		name = DefaultView
	}
	fn, ok := s.views[name]
	if !ok {
		return nil, ErrViewNotFound
	}
	return fn, nil
}
