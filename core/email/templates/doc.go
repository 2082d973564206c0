// Package templates renders the HTML pieces of a themed email: the
// call-to-action button produced by the ##button## macro and the layouts
// wrapping resolved template content.
//
// Layouts and the button are templ components composed from the components
// subpackage, so they render through Render like any other templ code:
//
//	btn := templates.Button("Verify email", verifyURL, palette)
//	html, err := templates.Render(ctx, btn)
//
//	page := templates.Layout(templates.LayoutData{
//		Language:      "en_GB",
//		Title:         "Welcome",
//		PreHeaderText: "Thanks for joining",
//		Content:       resolvedBody,
//		Logo:          "https://cdn.example.com/logo.png",
//		Palette:       palette,
//	})
//	html, err := templates.Render(ctx, page)
//
// Layout draws the header band, content row and footer row. PlainLayout
// draws the content row only.
//
// # Escaping
//
// Titles, preheaders, footers and button labels are HTML-escaped. URLs pass
// through templ's URL sanitizer, which rejects javascript: and similar
// schemes. Theme colours must be hex values or plain colour names; anything
// else falls back to DefaultPalette. LayoutData.Content is written verbatim
// because it is the already-resolved template body.
//
// Edit the .templ files and run templ generate to refresh the _templ.go
// files.
package templates
