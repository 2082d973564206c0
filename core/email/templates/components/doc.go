// Package components provides the templ building blocks for themed HTML
// emails. Every colour comes from a Palette argument, so one set of
// components renders any stored theme.
//
// Compose them inside Layout; its children are table rows:
//
//	templ Welcome(d Data) {
//		@components.Layout(components.LayoutProps{Language: d.Locale, Title: d.Title, Palette: d.Palette}) {
//			@components.Logo(d.LogoURL, "Acme", d.Palette)
//			@components.Body(d.Palette) {
//				@components.Header(d.Title, "Thanks for joining")
//				@components.Text() {
//					Confirm your address to get started.
//				}
//				@components.ButtonGroup() {
//					@components.PrimaryButton("Confirm", d.ConfirmURL, d.Palette)
//				}
//			}
//			@components.Footer(d.Palette) {
//				Acme Ltd
//			}
//		}
//	}
//
// # Available Components
//
//   - Layout(props) - document shell with head styles and the preheader
//   - Logo(logoURL, alt, palette) - header band row, image optional
//   - Body(palette) - content row
//   - Footer(palette) - footer row
//   - Header(title, subtitle) - main heading with optional subtitle
//   - Text() and TextSecondary() - paragraph blocks
//   - ButtonGroup() - centred row for buttons
//   - PrimaryButton(text, url, palette) - button cell in the palette's colours
//
// # Email Client Compatibility
//
// Layout is table based and styles are inline, apart from the anchor and
// .callout rules in the head. Colours that are not hex values or plain
// colour names are replaced by DefaultPalette values before they reach a
// style attribute.
package components
