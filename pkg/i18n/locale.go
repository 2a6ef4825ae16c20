package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale used when nothing else matches.
const DefaultLocale = "en"

// Regions maps each supported locale to the regions it can be formatted for.
// The first region of every entry is the locale's default region.
var Regions = map[string][]string{
	"en":    {"US", "GB", "AU", "CA"},
	"zh-CN": {"CN", "HK", "TW", "SG"},
}

// Locales returns the supported locales with DefaultLocale first and
// the rest in alphabetical order.
func Locales() []string {
	out := make([]string, 0, len(Regions))
	for locale := range Regions {
		if locale != DefaultLocale {
			out = append(out, locale)
		}
	}
	slices.Sort(out)
	return append([]string{DefaultLocale}, out...)
}

// Supported reports whether the locale has an entry in Regions.
func Supported(locale string) bool {
	_, ok := Regions[locale]
	return ok
}

// RegionsFor returns a copy of the regions configured for locale.
func RegionsFor(locale string) []string {
	return slices.Clone(Regions[locale])
}

// DefaultRegion returns the first region configured for locale, or an empty
// string when the locale is not in the table.
func DefaultRegion(locale string) string {
	if regions := Regions[locale]; len(regions) > 0 {
		return regions[0]
	}
	return ""
}

// ValidRegion reports whether region is listed for locale.
func ValidRegion(locale, region string) bool {
	return slices.Contains(Regions[locale], region)
}

// Tag composes the formatting tag for a locale and an optional region.
// Without a region the locale is used as is. With a region, the region
// of the locale is replaced: "en"+"US" gives en-US, "zh-CN"+"TW" gives zh-TW.
func Tag(locale, region string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return tag
	}
	r, err := language.ParseRegion(region)
	if err != nil {
		return tag
	}
	base, _ := tag.Base()
	parts := []any{base, r}
	if script, confidence := tag.Script(); confidence == language.Exact {
		parts = append(parts, script)
	}
	composed, err := language.Compose(parts...)
	if err != nil {
		return tag
	}
	return composed
}

// LocaleTag is Tag rendered as a BCP 47 string.
func LocaleTag(locale, region string) string {
	return Tag(locale, region).String()
}

var localeMatcher = newLocaleMatcher()

func newLocaleMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(Regions))
	for _, locale := range Locales() {
		tags = append(tags, language.MustParse(locale))
	}
	return language.NewMatcher(tags)
}

// MatchLocale picks the supported locale that best matches an
// Accept-Language header. An empty or unparseable header yields DefaultLocale.
func MatchLocale(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return Locales()[index]
}
