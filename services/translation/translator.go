// Package translation resolves user-facing messages by key and domain.
package translation

import (
	"fmt"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

// Message domains.
const (
	DomainReview      = "review"
	DomainBreadcrumbs = "breadcrumbs"
)

// Translator looks messages up in per-locale catalogs.
type Translator struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

type validatorRegistrar func(v *validator.Validate, trans ut.Translator) error

var supported = map[string]struct {
	locale    locales.Translator
	validator validatorRegistrar
}{
	"en": {en.New(), en_translations.RegisterDefaultTranslations},
	"fr": {fr.New(), fr_translations.RegisterDefaultTranslations},
}

// New builds a Translator whose Trans method answers in defaultLocale.
func New(defaultLocale string) (*Translator, error) {
	if _, ok := supported[defaultLocale]; !ok {
		return nil, fmt.Errorf("translation: unsupported locale %q", defaultLocale)
	}

	uni := ut.New(supported[defaultLocale].locale, en.New(), fr.New())
	for name, catalog := range catalogs {
		trans, found := uni.GetTranslator(name)
		if !found {
			return nil, fmt.Errorf("translation: locale %q not registered", name)
		}
		for domain, messages := range catalog {
			for key, text := range messages {
				if err := trans.Add(domainKey(key, domain), text, false); err != nil {
					return nil, fmt.Errorf("translation: adding %s/%s for %s: %w", domain, key, name, err)
				}
			}
		}
	}
	return &Translator{uni: uni, defaultLocale: defaultLocale}, nil
}

func domainKey(key, domain string) string {
	return domain + "/" + key
}

// Trans translates key from domain into the default locale. Unknown keys are returned unchanged.
func (t *Translator) Trans(key, domain string, params ...string) string {
	return t.TransIn(t.defaultLocale, key, domain, params...)
}

// TransIn translates key from domain into locale, falling back to the default locale.
func (t *Translator) TransIn(locale, key, domain string, params ...string) string {
	trans := t.For(locale)
	text, err := trans.T(domainKey(key, domain), params...)
	if err != nil || text == "" {
		return key
	}
	return text
}

// For returns the translator for locale, or the default one when locale is unknown.
func (t *Translator) For(locale string) ut.Translator {
	if trans, found := t.uni.GetTranslator(locale); found {
		return trans
	}
	trans, _ := t.uni.GetTranslator(t.defaultLocale)
	return trans
}

// RegisterValidator installs validation error messages for every supported locale.
func (t *Translator) RegisterValidator(v *validator.Validate) error {
	for name, s := range supported {
		if err := s.validator(v, t.For(name)); err != nil {
			return fmt.Errorf("translation: registering validator messages for %s: %w", name, err)
		}
	}
	return nil
}

// DefaultLocale returns the locale Trans answers in.
func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}
