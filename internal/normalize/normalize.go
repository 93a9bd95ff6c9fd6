package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Cleaning rules fire in declaration order. Later rules assume earlier ones
// already ran: space collapsing only works once punctuation became spaces.
// Token removal matches case-insensitively so a second pass over an already
// lowercased value changes nothing.
var cleanRules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\n`), " "},
	{regexp.MustCompile(`(?i)\bn/a\b`), ""},
	{regexp.MustCompile(`(?i)\bna\b`), ""},
	{regexp.MustCompile(`/`), " "},
	{regexp.MustCompile(`-`), " "},
	{regexp.MustCompile(`'`), ""},
	{regexp.MustCompile(`,`), ""},
	{regexp.MustCompile(`:`), " "},
	{regexp.MustCompile(`(?i)\blocal\b`), ""},
	{regexp.MustCompile(`  +`), " "},
}

// asciiFold strips combining marks after NFD decomposition, approximating
// unidecode for the Latin-script names this tool sees.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean canonicalizes a raw field value. The empty string means the value is
// missing: inputs that reduce to nothing after cleanup never come back as "".
// Clean is pure and idempotent.
func Clean(raw string) string {
	value, _, err := transform.String(asciiFold, raw)
	if err != nil {
		value = raw
	}

	for _, rule := range cleanRules {
		value = rule.pattern.ReplaceAllString(value, rule.replacement)
	}

	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	value = strings.Trim(value, `'`)
	value = strings.ToLower(value)
	value = strings.TrimSpace(value)

	tokens := strings.Fields(value)
	kept := tokens[:0]
	for _, token := range tokens {
		token = strings.TrimLeft(token, "0")
		if token == "" {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// Row cleans every value of a parsed CSV row. Missing values are dropped from
// the result so record fields carry only present data.
func Row(header []string, values []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i >= len(values) {
			break
		}
		if cleaned := Clean(values[i]); cleaned != "" {
			fields[name] = cleaned
		}
	}
	return fields
}
