package components

// LayoutProps configures the document shell rendered by Layout.
type LayoutProps struct {
	Language  string
	Title     string
	PreHeader string
	Palette   Palette
}

// Palette holds the colours a theme contributes to the email layout.
// Empty fields fall back to DefaultPalette values.
type Palette struct {
	HeaderBackground  string
	BodyBackground    string
	ContentBackground string
	FooterBackground  string
	CalloutBackground string
	ButtonBackground  string
	BodyText          string
	CalloutText       string
	ButtonText        string
	AnchorText        string
}

// DefaultPalette is used for any colour a theme leaves unset.
var DefaultPalette = Palette{
	HeaderBackground:  "#B8B8D1",
	BodyBackground:    "#f4f4f4",
	ContentBackground: "#FFFFFF",
	FooterBackground:  "#5B5F97",
	CalloutBackground: "#FF6B6C",
	ButtonBackground:  "#FFC145",
	BodyText:          "#333333",
	CalloutText:       "#FFFFFF",
	ButtonText:        "#5B5F97",
	AnchorText:        "#4c4e87",
}

// withDefaults returns p with empty fields filled from DefaultPalette.
func (p Palette) withDefaults() Palette {
	d := DefaultPalette
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Palette{
		HeaderBackground:  pick(p.HeaderBackground, d.HeaderBackground),
		BodyBackground:    pick(p.BodyBackground, d.BodyBackground),
		ContentBackground: pick(p.ContentBackground, d.ContentBackground),
		FooterBackground:  pick(p.FooterBackground, d.FooterBackground),
		CalloutBackground: pick(p.CalloutBackground, d.CalloutBackground),
		ButtonBackground:  pick(p.ButtonBackground, d.ButtonBackground),
		BodyText:          pick(p.BodyText, d.BodyText),
		CalloutText:       pick(p.CalloutText, d.CalloutText),
		ButtonText:        pick(p.ButtonText, d.ButtonText),
		AnchorText:        pick(p.AnchorText, d.AnchorText),
	}
}
