package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a lowercase ASCII slug from the given text. Portuguese
// diacritics are transliterated so category names and search text produce
// stable identifiers.
//
// Examples:
//   - "Calçados" → "calcados"
//   - "Moda Íntima" → "moda-intima"
//   - "São  Paulo!" → "sao-paulo"
func Generate(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "ô", "o", "õ", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
	s = replacer.Replace(s)

	s = slugRegexp.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return s
}
