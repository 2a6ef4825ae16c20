package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Plural category names as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// IsPluralCategory reports whether s is one of the CLDR category names.
func IsPluralCategory(s string) bool {
	switch s {
	case PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther:
		return true
	}
	return false
}

// PluralCategory returns the CLDR cardinal category of count for locale.
// Negative counts are categorised by their absolute value.
func PluralCategory(locale string, count int) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if count < 0 {
		count = -count
	}
	// Integers only: no visible fraction digits.
	return formName(plural.Cardinal.MatchPlural(tag, count, 0, 0, 0, 0))
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}
