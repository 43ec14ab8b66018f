package names

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a language tag in ll_RR form, e.g. "zh_CN" or "en_US".
type Locale string

// String returns the string representation of a locale.
func (l Locale) String() string {
	return string(l)
}

// reverseOrder lists locales where the family name precedes the given name
// in running text.
var reverseOrder = map[Locale]struct{}{
	"zh_CN": {}, // Chinese (Simplified)
	"zh_TW": {}, // Chinese (Traditional)
	"ko_KR": {}, // Korean
	"ja_JP": {}, // Japanese
	"vi_VN": {}, // Vietnamese
	"hu_HU": {}, // Hungarian
	"mn_MN": {}, // Mongolian
}

// IsReverseOrder reports whether locale puts the family name first.
func IsReverseOrder(locale string) bool {
	_, ok := reverseOrder[NormalizeLocale(locale)]
	return ok
}

// ReverseOrderLocales returns the family-name-first locales, sorted.
func ReverseOrderLocales() []string {
	out := make([]string, 0, len(reverseOrder))
	for l := range reverseOrder {
		out = append(out, l.String())
	}
	sort.Strings(out)
	return out
}

// NormalizeLocale canonicalizes a language tag to ll_RR form. It accepts
// "zh_CN", "zh-CN", "ZH-cn" and script-qualified tags such as "zh-Hans-CN".
// The region is only kept when the tag states it; "ja" stays "ja". Input the
// tag parser rejects comes back trimmed but otherwise unchanged.
func NormalizeLocale(tag string) Locale {
	raw := strings.TrimSpace(tag)
	if raw == "" {
		return ""
	}

	t, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return Locale(raw)
	}

	base, baseConf := t.Base()
	if baseConf != language.Exact {
		return Locale(raw)
	}

	out := base.String()
	if region, conf := t.Region(); conf == language.Exact {
		out += "_" + region.String()
	}
	return Locale(out)
}

// ResolveLocale picks the first non-empty of the explicit argument, the
// record's own locale and the fallback, and normalizes it.
func ResolveLocale(explicit, record, fallback string) Locale {
	for _, candidate := range []string{explicit, record, fallback} {
		if l := NormalizeLocale(candidate); l != "" {
			return l
		}
	}
	return ""
}
