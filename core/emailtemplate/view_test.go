package emailtemplate_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

func TestService_RenderHTMLViews(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newServiceFixture(t)

	render := func(view string) (string, error) {
		tpl := &emailtemplate.Template{
			Key:      "welcome",
			Language: "en_GB",
			View:     view,
			Title:    "Welcome",
			Content:  "<p>Body</p>",
			Theme:    f.theme,
		}
		rd, err := f.svc.RenderData(ctx, tpl, nil)
		require.NoError(t, err)
		assert.Equal(t, view, rd.View)
		return f.svc.RenderHTML(ctx, rd)
	}

	implicit, err := render("")
	require.NoError(t, err)
	explicit, err := render(emailtemplate.DefaultView)
	require.NoError(t, err)
	plain, err := render(emailtemplate.PlainView)
	require.NoError(t, err)

	assert.Equal(t, implicit, explicit)
	assert.NotEqual(t, explicit, plain)
	assert.Contains(t, explicit, "background-color:#101010")
	assert.NotContains(t, plain, "background-color:#101010")
	assert.Contains(t, plain, "<p>Body</p>")

	_, err = render("missing")
	assert.ErrorIs(t, err, emailtemplate.ErrViewNotFound)
}

func TestService_WithView(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	receipt := func(d templates.LayoutData) templ.Component {
		return templ.Raw("<main data-view=\"receipt\">" + d.Content + "</main>")
	}
	f := newServiceFixture(t, emailtemplate.WithView("receipt", receipt))

	tpl := &emailtemplate.Template{Key: "order", Language: "en_GB", View: "receipt", Content: "Track ##tokenUrl##"}
	encoded, err := f.svc.Preview(ctx, tpl)
	require.NoError(t, err)

	html, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, `<main data-view="receipt">Track https://acme.test</main>`, string(html))
}
