package templates

import "github.com/abdosaeedelhassan/email-templates/core/email/templates/components"

// Palette holds the colours a theme contributes to the email layout.
// Empty fields fall back to DefaultPalette values.
type Palette = components.Palette

// DefaultPalette is used for any colour a theme leaves unset.
var DefaultPalette = components.DefaultPalette
