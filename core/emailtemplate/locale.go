package emailtemplate

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLocale converts locale spellings such as "en-gb", "EN_gb" or
// "en_GB" into the stored form "en_GB". A bare language stays bare ("fr").
// An explicit script is kept between language and region ("zh_Hant_TW");
// scripts implied by the region are not added.
// Unparseable input is returned trimmed but otherwise unchanged.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return locale
	}

	base, _ := tag.Base()
	out := base.String()
	if script, conf := tag.Script(); conf == language.Exact {
		out += "_" + script.String()
	}
	if region, conf := tag.Region(); conf == language.Exact {
		out += "_" + region.String()
	}
	return out
}

// candidateLocales returns the lookup order for a request: the requested
// locale first, then the default, without duplicates.
func candidateLocales(requested, fallback string) []string {
	requested = NormalizeLocale(requested)
	fallback = NormalizeLocale(fallback)

	if requested == "" {
		requested = fallback
	}
	if fallback == "" || fallback == requested {
		return []string{requested}
	}
	return []string{requested, fallback}
}
