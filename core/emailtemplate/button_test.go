package emailtemplate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

func TestExpandButton(t *testing.T) {
	t.Parallel()

	theme := &emailtemplate.Theme{Colours: emailtemplate.Colours{
		ButtonBackground: "#112233",
		ButtonText:       "#ffffff",
	}}

	t.Run("renders themed button", func(t *testing.T) {
		t.Parallel()

		html := emailtemplate.ExpandButton("##button url='https://acme.test/verify' title='Verify & go'####", theme)
		assert.Contains(t, html, `href="https://acme.test/verify"`)
		assert.Contains(t, html, "Verify &amp; go")
		assert.Contains(t, html, "background-color:#112233")
		assert.Contains(t, html, "color:#ffffff")
	})

	t.Run("missing url", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, emailtemplate.ExpandButton("##button title='Go'####", theme))
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, emailtemplate.ExpandButton("##button url='https://acme.test'####", theme))
	})

	t.Run("no macro", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, emailtemplate.ExpandButton("just text", theme))
	})

	t.Run("nil theme uses default colours", func(t *testing.T) {
		t.Parallel()

		html := emailtemplate.ExpandButton("##button url='https://acme.test' title='Go'####", nil)
		assert.Contains(t, html, "background-color:#FFC145")
	})

	t.Run("unsafe url is neutralised", func(t *testing.T) {
		t.Parallel()

		html := emailtemplate.ExpandButton("##button url='javascript:alert(1)' title='Go'####", theme)
		assert.NotContains(t, html, "javascript:")
	})

	t.Run("unsafe colour falls back", func(t *testing.T) {
		t.Parallel()

		bad := &emailtemplate.Theme{Colours: emailtemplate.Colours{ButtonBackground: "red;display:none"}}
		html := emailtemplate.ExpandButton("##button url='https://acme.test' title='Go'####", bad)
		assert.NotContains(t, html, "display:none")
		assert.Contains(t, html, "background-color:#FFC145")
	})
}
