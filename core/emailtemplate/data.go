package emailtemplate

// TemplateMember is the context member that exposes the active template to
// tokens and the button macro.
const TemplateMember = "emailTemplate"

// Data is an open-ended data context for token resolution.
type Data map[string]any

// withTemplate overlays the active template onto a caller's context, unless
// the context already carries one.
type withTemplate struct {
	data any
	tpl  *Template
}

// Member implements Indexable.
func (w withTemplate) Member(name string) (any, bool) {
	if v, ok := Lookup(w.data, []string{name}); ok {
		return v, true
	}
	if name == TemplateMember && w.tpl != nil {
		return w.tpl, true
	}
	return nil, false
}

// templateFrom extracts the active template from a context.
func templateFrom(data any) (*Template, bool) {
	v, ok := Lookup(data, []string{TemplateMember})
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case *Template:
		return t, t != nil
	case Template:
		return &t, true
	default:
		return nil, false
	}
}
