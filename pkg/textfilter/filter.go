// Package textfilter keeps generated prose family friendly. Provider
// output is not fully controllable, so text shown to players passes
// through a replacement filter first.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps disallowed words to tame alternatives. Words with no
// workable alternative are censored outright.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"goddamn":      "gosh-dang",
	"hell":         "heck",
	"ass":          "butt",
	"asshole":      "jerk",
	"bastard":      "jerk",
	"bitch":        "jerk",
	"bullshit":     "baloney",
	"crap":         "crud",
	"piss":         "ticked",
	"prick":        "jerk",
	"motherfucker": "mother-trucker",
	"whore":        "[censored]",
	"slut":         "[censored]",
}

// Filter replaces disallowed words in prose with tame alternatives.
type Filter struct {
	regexes map[string]*regexp.Regexp
}

// New compiles the word boundary patterns once.
func New() *Filter {
	f := &Filter{
		regexes: make(map[string]*regexp.Regexp, len(replacements)),
	}
	for word := range replacements {
		f.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// Clean returns text with every disallowed word replaced, preserving the
// case of the original match.
func (f *Filter) Clean(text string) string {
	result := text
	for word, replacement := range replacements {
		result = f.regexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// Contains reports whether text has any disallowed word.
func (f *Filter) Contains(text string) bool {
	for _, regex := range f.regexes {
		if regex.MatchString(text) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case, mirror it character by character.
	originalRunes := []rune(original)
	result := make([]rune, 0, len(replacement))
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}
