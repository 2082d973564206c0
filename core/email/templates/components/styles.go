package components

import (
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// colourRegex accepts hex colours and plain CSS colour names.
var colourRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// safeColour returns c when it is a plain colour value, fallback otherwise.
// Colours come from stored themes and end up inside style attributes.
func safeColour(c, fallback string) string {
	if colourRegex.MatchString(c) {
		return c
	}
	return fallback
}

// colours is a palette whose every field passed safeColour.
type colours Palette

func resolve(p Palette) colours {
	p = p.withDefaults()
	d := DefaultPalette
	return colours{
		HeaderBackground:  safeColour(p.HeaderBackground, d.HeaderBackground),
		BodyBackground:    safeColour(p.BodyBackground, d.BodyBackground),
		ContentBackground: safeColour(p.ContentBackground, d.ContentBackground),
		FooterBackground:  safeColour(p.FooterBackground, d.FooterBackground),
		CalloutBackground: safeColour(p.CalloutBackground, d.CalloutBackground),
		ButtonBackground:  safeColour(p.ButtonBackground, d.ButtonBackground),
		BodyText:          safeColour(p.BodyText, d.BodyText),
		CalloutText:       safeColour(p.CalloutText, d.CalloutText),
		ButtonText:        safeColour(p.ButtonText, d.ButtonText),
		AnchorText:        safeColour(p.AnchorText, d.AnchorText),
	}
}

// headStyle is the <style> block for rules that cannot be inlined.
func headStyle(p Palette) string {
	c := resolve(p)
	return `<style>a{color:` + c.AnchorText + `;}` +
		`.callout{background-color:` + c.CalloutBackground + `;color:` + c.CalloutText + `;padding:12px;}` +
		`@media only screen and (max-width:620px){.content{padding:16px !important;}}</style>`
}

func bodyStyle(p Palette) templ.SafeCSS {
	c := resolve(p)
	return templ.SafeCSS("margin:0;padding:0;background-color:" + c.BodyBackground + ";color:" + c.BodyText + ";font-family:Arial,sans-serif;")
}

func headerCellStyle(p Palette) templ.SafeCSS {
	return templ.SafeCSS("padding:24px;background-color:" + resolve(p).HeaderBackground + ";")
}

func contentCellStyle(p Palette) templ.SafeCSS {
	return templ.SafeCSS("padding:32px;background-color:" + resolve(p).ContentBackground + ";")
}

func footerCellStyle(p Palette) templ.SafeCSS {
	return templ.SafeCSS("padding:16px;font-size:12px;color:#ffffff;background-color:" + resolve(p).FooterBackground + ";")
}

func buttonCellStyle(p Palette) templ.SafeCSS {
	return templ.SafeCSS("border-radius:4px;background-color:" + resolve(p).ButtonBackground + ";")
}

func buttonStyle(p Palette) templ.SafeCSS {
	c := resolve(p)
	return templ.SafeCSS("display:inline-block;padding:12px 24px;font-family:Arial,sans-serif;font-size:16px;font-weight:bold;" +
		"text-decoration:none;border-radius:4px;color:" + c.ButtonText + ";background-color:" + c.ButtonBackground + ";")
}

// htmlLang converts a stored locale such as en_GB into a BCP 47 tag.
func htmlLang(locale string) string {
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
