package emailtemplate

import (
	"reflect"
	"strconv"
	"strings"
)

// Indexable is implemented by values that expose named members to token
// paths. Member reports false when the member does not exist or holds no
// value.
//
// Maps, struct fields and slices are adapted automatically. Methods are
// never called during lookup; implement Indexable to expose computed values.
type Indexable interface {
	Member(name string) (any, bool)
}

// Lookup walks path segment by segment starting at root and returns the value
// at the end. It never panics: a missing member, a nil value or a terminal
// value in the middle of the path yields (nil, false).
func Lookup(root any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	cur := root
	for _, seg := range path {
		idx, ok := indexableOf(cur)
		if !ok {
			return nil, false
		}
		next, ok := idx.Member(seg)
		if !ok || isNil(next) {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// indexableOf adapts v to Indexable, or reports false for terminal values.
func indexableOf(v any) (Indexable, bool) {
	if v == nil {
		return nil, false
	}
	if idx, ok := v.(Indexable); ok {
		return idx, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		return mapMembers{rv: rv}, true
	case reflect.Struct:
		return recordMembers{rv: rv}, true
	case reflect.Slice, reflect.Array:
		return listMembers{rv: rv}, true
	default:
		return nil, false
	}
}

// mapMembers exposes string-keyed map entries.
type mapMembers struct {
	rv reflect.Value
}

func (m mapMembers) Member(name string) (any, bool) {
	key := reflect.ValueOf(name).Convert(m.rv.Type().Key())
	val := m.rv.MapIndex(key)
	if !val.IsValid() || !val.CanInterface() {
		return nil, false
	}
	return val.Interface(), true
}

// listMembers exposes slice and array elements by numeric index.
type listMembers struct {
	rv reflect.Value
}

func (l listMembers) Member(name string) (any, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || i >= l.rv.Len() {
		return nil, false
	}
	val := l.rv.Index(i)
	if !val.CanInterface() {
		return nil, false
	}
	return val.Interface(), true
}

// recordMembers exposes exported struct fields. A segment matches, in
// order: a json tag name, the exact field name, then a field whose name
// equals the segment ignoring case and underscores (so first_name finds
// FirstName). Methods are never called; types that need computed members
// implement Indexable.
type recordMembers struct {
	rv reflect.Value // struct value
}

func (r recordMembers) Member(name string) (any, bool) {
	if name == "" {
		return nil, false
	}

	fields := reflect.VisibleFields(r.rv.Type())

	for _, f := range fields {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if tag := jsonName(f); tag != "" && tag == name {
			return r.field(f)
		}
	}

	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && f.Name == name {
			return r.field(f)
		}
	}

	folded := foldName(name)
	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && foldName(f.Name) == folded {
			return r.field(f)
		}
	}
	return nil, false
}

func (r recordMembers) field(f reflect.StructField) (any, bool) {
	val, err := r.rv.FieldByIndexErr(f.Index)
	if err != nil || !val.CanInterface() {
		return nil, false
	}
	return val.Interface(), true
}

func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
