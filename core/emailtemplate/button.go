package emailtemplate

import (
	"context"
	"strings"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
)

const buttonMarker = "##button"

// buttonMacro is one ##button url='…' title='…'## occurrence.
// start and end delimit the whole span to replace, terminators included.
type buttonMacro struct {
	start, end int
	url, title string
	ok         bool // both attributes present
}

// buttonAt reports whether a button macro starts at content[pos:] and
// returns its span. The marker must be followed by whitespace or '#'
// (the bare ##button## splice point), so tokens such as ##buttonText## are
// not macros. The attribute region runs to the next '#'; the span then ends
// after the closing "##" and swallows one more "##" when the author wrote
// the "####" form.
func buttonAt(content string, pos int) (buttonMacro, bool) {
	if !strings.HasPrefix(content[pos:], buttonMarker) {
		return buttonMacro{}, false
	}

	regionStart := pos + len(buttonMarker)
	if regionStart >= len(content) {
		return buttonMacro{}, false
	}
	if c := content[regionStart]; c != '#' && c != ' ' && c != '\t' {
		return buttonMacro{}, false
	}

	hash := strings.IndexByte(content[regionStart:], '#')
	if hash < 0 {
		return buttonMacro{}, false
	}
	regionEnd := regionStart + hash
	region := content[regionStart:regionEnd]
	if strings.ContainsRune(region, '\n') {
		return buttonMacro{}, false
	}

	closing := strings.Index(content[regionEnd:], "##")
	if closing < 0 {
		return buttonMacro{}, false
	}
	end := regionEnd + closing + 2
	if strings.ContainsRune(content[regionEnd:end], '\n') {
		return buttonMacro{}, false
	}
	if strings.HasPrefix(content[end:], "##") {
		end += 2
	}

	m := buttonMacro{start: pos, end: end}
	url, okURL := attribute(region, "url")
	title, okTitle := attribute(region, "title")
	if okURL && okTitle {
		m.url, m.title, m.ok = url, title, true
	}
	return m, true
}

// attribute extracts name='value' from region. The name must start the
// region or follow whitespace, and the value must be closed by a quote.
func attribute(region, name string) (string, bool) {
	needle := name + "='"
	for from := 0; from < len(region); {
		i := strings.Index(region[from:], needle)
		if i < 0 {
			return "", false
		}
		i += from
		if i == 0 || region[i-1] == ' ' || region[i-1] == '\t' {
			valStart := i + len(needle)
			j := strings.IndexByte(region[valStart:], '\'')
			if j < 0 {
				return "", false
			}
			return region[valStart : valStart+j], true
		}
		from = i + len(needle)
	}
	return "", false
}

// findButtons returns every button macro in content, left to right.
func findButtons(content string) []buttonMacro {
	var out []buttonMacro
	for pos := 0; pos < len(content); {
		i := strings.Index(content[pos:], buttonMarker)
		if i < 0 {
			break
		}
		i += pos
		if m, ok := buttonAt(content, i); ok {
			out = append(out, m)
			pos = m.end
			continue
		}
		pos = i + len(buttonMarker)
	}
	return out
}

// ButtonRenderer turns a parsed button into markup.
type ButtonRenderer func(title, url string, colours Colours) string

// DefaultButtonRenderer renders buttons with the templates.Button component.
// Render errors produce an empty fragment.
func DefaultButtonRenderer(title, url string, colours Colours) string {
	html, err := templates.Render(context.Background(), templates.Button(title, url, colours.Palette()))
	if err != nil {
		return ""
	}
	return html
}

// ExpandButton renders the first button macro in content with the theme's
// colours. It returns "" when content has no macro or the macro lacks a url
// or title attribute.
func ExpandButton(content string, theme *Theme) string {
	return expandButtonWith(content, theme, DefaultButtonRenderer)
}

func expandButtonWith(content string, theme *Theme, render ButtonRenderer) string {
	macros := findButtons(content)
	if len(macros) == 0 || !macros[0].ok {
		return ""
	}
	return render(macros[0].title, macros[0].url, themeColours(theme))
}

// replaceButtons substitutes every macro span with its rendered button, or
// with "" when the macro is malformed.
func replaceButtons(content string, theme *Theme, render ButtonRenderer) string {
	macros := findButtons(content)
	if len(macros) == 0 {
		return content
	}

	colours := themeColours(theme)
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range macros {
		b.WriteString(content[last:m.start])
		if m.ok {
			b.WriteString(render(m.title, m.url, colours))
		}
		last = m.end
	}
	b.WriteString(content[last:])
	return b.String()
}

func themeColours(theme *Theme) Colours {
	if theme == nil {
		return Colours{}
	}
	return theme.Colours
}
