package templates

import "github.com/abdosaeedelhassan/email-templates/core/email/templates/components"

// LayoutData is everything the email layout needs. Content is trusted HTML
// produced by token resolution; every other string is escaped.
type LayoutData struct {
	Language      string
	Title         string
	PreHeaderText string
	Content       string
	Logo          string
	LogoAlt       string
	Footer        string
	Palette       Palette
}

func (d LayoutData) props() components.LayoutProps {
	return components.LayoutProps{
		Language:  d.Language,
		Title:     d.Title,
		PreHeader: d.PreHeaderText,
		Palette:   d.Palette,
	}
}
