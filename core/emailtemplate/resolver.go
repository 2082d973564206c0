package emailtemplate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const configPrefix = "config."

// Resolver replaces ##token## placeholders in template text. It is safe for
// concurrent use once constructed.
type Resolver struct {
	knownTokens []string
	configKeys  map[string]struct{}
	config      ConfigSource
	button      ButtonRenderer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithConfigSource sets where ##config.<key>## values come from.
// Without one, config tokens are always left in place.
func WithConfigSource(src ConfigSource) ResolverOption {
	return func(r *Resolver) {
		r.config = src
	}
}

// WithButtonRenderer replaces the markup used for ##button## macros.
func WithButtonRenderer(fn ButtonRenderer) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.button = fn
		}
	}
}

// NewResolver creates a resolver with the known-token and config-key
// whitelists from cfg.
func NewResolver(cfg Config, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		knownTokens: append([]string(nil), cfg.KnownTokens...),
		configKeys:  make(map[string]struct{}, len(cfg.ConfigKeys)),
		button:      DefaultButtonRenderer,
	}
	for _, k := range cfg.ConfigKeys {
		r.configKeys[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve substitutes tokens in content using data as the context. Passes
// run in a fixed order and each sees the output of the previous one:
//
//  1. known tokens: ##name## for whitelisted flat members of data
//  2. path tokens: ##a.b.c##, replaced by the value or "" when unresolved
//  3. config tokens: ##config.key##, replaced only for whitelisted keys with
//     a non-nil value, otherwise left verbatim
//  4. button macros, when data carries an emailTemplate member
//
// Within a pass, substituted text is never scanned again. Resolve never
// fails; text without placeholders is returned unchanged.
func (r *Resolver) Resolve(content string, data any) string {
	if !strings.Contains(content, "##") {
		return content
	}

	for _, name := range r.knownTokens {
		token := "##" + name + "##"
		if !strings.Contains(content, token) {
			continue
		}
		if v, ok := Lookup(data, []string{name}); ok {
			content = strings.ReplaceAll(content, token, formatValue(v))
		}
	}

	content = replaceTokens(content, func(inner string) (string, bool) {
		if strings.HasPrefix(inner, configPrefix) {
			return "", false
		}
		v, ok := Lookup(data, strings.Split(inner, "."))
		if !ok {
			return "", true
		}
		return formatValue(v), true
	})

	content = replaceTokens(content, func(inner string) (string, bool) {
		key, found := strings.CutPrefix(inner, configPrefix)
		if !found || r.config == nil {
			return "", false
		}
		if _, allowed := r.configKeys[key]; !allowed {
			return "", false
		}
		v, ok := r.config.Get(key)
		if !ok || isNil(v) {
			return "", false
		}
		return formatValue(v), true
	})

	if tpl, ok := templateFrom(data); ok {
		content = replaceButtons(content, tpl.Theme, r.button)
	}

	return content
}

// replaceTokens calls fn for every ##inner## token outside button macros,
// scanning left to right. When fn reports false the token is kept verbatim.
// Tokens cannot span lines.
func replaceTokens(content string, fn func(inner string) (string, bool)) string {
	var b strings.Builder
	b.Grow(len(content))

	i := 0
	for i < len(content) {
		j := strings.Index(content[i:], "##")
		if j < 0 {
			break
		}
		start := i + j

		if m, ok := buttonAt(content, start); ok {
			b.WriteString(content[i:m.end])
			i = m.end
			continue
		}

		innerStart := start + 2
		k := strings.Index(content[innerStart:], "##")
		if k < 0 {
			break
		}
		inner := content[innerStart : innerStart+k]
		if strings.ContainsRune(inner, '\n') {
			// Not a token; retry from the next character.
			b.WriteString(content[i : start+1])
			i = start + 1
			continue
		}
		end := innerStart + k + 2

		b.WriteString(content[i:start])
		if repl, ok := fn(inner); ok {
			b.WriteString(repl)
		} else {
			b.WriteString(content[start:end])
		}
		i = end
	}
	b.WriteString(content[i:])
	return b.String()
}

// formatValue renders a resolved value as token text. Composite values have
// no text form and become "".
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.DateTime)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(time.DateTime)
	case fmt.Stringer:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return ""
	case []byte:
		return string(t)
	case error:
		return t.Error()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		if rv.Bool() {
			return "1"
		}
		return ""
	default:
		return ""
	}
}
