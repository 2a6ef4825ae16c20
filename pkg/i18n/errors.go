package i18n

import "errors"

var (
	ErrEmptyLocale    = errors.New("i18n: locale cannot be empty")
	ErrUnknownLocale  = errors.New("i18n: locale is not supported")
	ErrUnknownRegion  = errors.New("i18n: region is not valid for locale")
	ErrInvalidValue   = errors.New("i18n: invalid dictionary value")
	ErrInvalidFile    = errors.New("i18n: invalid translation file")
	ErrFetchFailed    = errors.New("i18n: translation fetch failed")
	ErrNoFetcher      = errors.New("i18n: provider has no fetcher")
	ErrProviderClosed = errors.New("i18n: provider is stopped")
)
