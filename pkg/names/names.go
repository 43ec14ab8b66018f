// Package names splits a free-text full name into given name, family name
// and salutation.
//
// Splitting is deliberately simple: the name is tokenized on whitespace and
// the first and last tokens become the given and family names, in an order
// that depends on the locale. Middle names, compound surnames and particles
// are not interpreted.
//
//	p := names.Split("Kim Minjun", "ko_KR", "")
//	// p.Given == "Minjun", p.Family == "Kim", p.Salutation == "Minjun"
package names

import "strings"

// Parts holds the three values derived from a full name.
type Parts struct {
	Given      string `json:"given" yaml:"given"`
	Family     string `json:"family" yaml:"family"`
	Salutation string `json:"salutation" yaml:"salutation"`
}

// Split derives the given name, family name and salutation from fullName.
// In a reverse-order locale the family name is the first token and the given
// name the last; everywhere else it is the other way around. A single token
// is used for both. Split never fails: an empty name yields empty parts and
// an unknown locale gets given-first ordering.
func Split(fullName, locale, title string) Parts {
	tokens := strings.Fields(fullName)

	var given, family string
	if len(tokens) > 0 {
		first, last := tokens[0], tokens[len(tokens)-1]
		if IsReverseOrder(locale) {
			given, family = last, first
		} else {
			given, family = first, last
		}
	}

	return Parts{
		Given:      given,
		Family:     family,
		Salutation: Salutation(title, given, family),
	}
}

// Salutation returns "{title} {family}" when title is non-empty and the given
// name otherwise.
func Salutation(title, given, family string) string {
	title = strings.TrimSpace(title)
	if title != "" {
		return title + " " + family
	}
	return given
}

// Splitter splits names with a default locale applied when the caller
// passes none.
type Splitter struct {
	DefaultLocale string
}

// Split resolves locale against the splitter's default and splits fullName.
func (s Splitter) Split(fullName, locale, title string) Parts {
	return Split(fullName, ResolveLocale(locale, "", s.DefaultLocale).String(), title)
}
