package emailtemplate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"en_GB":   "en_GB",
		"en-gb":   "en_GB",
		"EN_gb":   "en_GB",
		" de-AT ": "de_AT",
		"fr":      "fr",
		"":        "",

		"zh_Hant_TW": "zh_Hant_TW",
		"zh-hant":    "zh_Hant",
		"zh_TW":      "zh_TW",
		"sr-latn-rs": "sr_Latn_RS",
	}
	for in, want := range tests {
		assert.Equal(t, want, emailtemplate.NormalizeLocale(in), in)
	}
}
