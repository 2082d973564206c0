package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
)

func TestButton(t *testing.T) {
	t.Parallel()

	t.Run("renders url title and colours", func(t *testing.T) {
		html, err := templates.Render(context.Background(), templates.Button("Go", "https://x", templates.Palette{
			ButtonBackground: "#123456",
			ButtonText:       "white",
		}))
		require.NoError(t, err)
		assert.Contains(t, html, `href="https://x"`)
		assert.Contains(t, html, ">Go</a>")
		assert.Contains(t, html, "background-color:#123456")
		assert.Contains(t, html, "color:white")
	})

	t.Run("escapes title", func(t *testing.T) {
		html, err := templates.Render(context.Background(), templates.Button("<b>Go</b>", "https://x", templates.Palette{}))
		require.NoError(t, err)
		assert.Contains(t, html, "&lt;b&gt;Go&lt;/b&gt;")
		assert.NotContains(t, html, "<b>")
	})

	t.Run("rejects unsafe url", func(t *testing.T) {
		html, err := templates.Render(context.Background(), templates.Button("Go", "javascript:alert(1)", templates.Palette{}))
		require.NoError(t, err)
		assert.NotContains(t, html, "javascript:")
	})

	t.Run("falls back on invalid colours", func(t *testing.T) {
		html, err := templates.Render(context.Background(), templates.Button("Go", "https://x", templates.Palette{
			ButtonBackground: "red;}body{display:none",
		}))
		require.NoError(t, err)
		assert.NotContains(t, html, "display:none")
		assert.Contains(t, html, templates.DefaultPalette.ButtonBackground)
	})
}

func TestLayout(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Layout(templates.LayoutData{
		Language:      "en_GB",
		Title:         "Welcome & hello",
		PreHeaderText: "Preview text",
		Content:       "<p>Hello Ann</p>",
		Logo:          "https://cdn.example.com/logo.png",
		LogoAlt:       "Acme",
		Footer:        "Acme Ltd",
		Palette:       templates.Palette{HeaderBackground: "#000000"},
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `<html lang="en-GB">`)
	assert.Contains(t, html, "Welcome &amp; hello")
	assert.Contains(t, html, "Preview text")
	assert.Contains(t, html, "<p>Hello Ann</p>")
	assert.Contains(t, html, `src="https://cdn.example.com/logo.png"`)
	assert.Contains(t, html, "background-color:#000000")
	assert.Contains(t, html, "Acme Ltd")
}

func TestLayout_Minimal(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Layout(templates.LayoutData{Content: "body"}))
	require.NoError(t, err)
	assert.Contains(t, html, `<html lang="en">`)
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<h1")
	assert.NotContains(t, html, "background-color:"+templates.DefaultPalette.FooterBackground)
}

func TestRender_Nil(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestPlainLayout(t *testing.T) {
	t.Parallel()

	d := templates.LayoutData{
		Language: "fr",
		Title:    "Bienvenue",
		Content:  "<p>Bonjour</p>",
		Logo:     "https://cdn.example.com/logo.png",
		Footer:   "Acme SAS",
		Palette:  templates.Palette{HeaderBackground: "#010203", FooterBackground: "#040506"},
	}

	plain, err := templates.Render(context.Background(), templates.PlainLayout(d))
	require.NoError(t, err)
	full, err := templates.Render(context.Background(), templates.Layout(d))
	require.NoError(t, err)

	assert.NotEqual(t, full, plain)
	assert.Contains(t, plain, `<html lang="fr">`)
	assert.Contains(t, plain, "<p>Bonjour</p>")
	assert.Contains(t, plain, "Acme SAS")
	assert.NotContains(t, plain, "<img")
	assert.NotContains(t, plain, "#010203")
	assert.NotContains(t, plain, "#040506")
	assert.Contains(t, full, "#010203")
	assert.Contains(t, full, "#040506")
}
