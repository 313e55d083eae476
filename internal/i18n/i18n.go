// Package i18n resolves UI strings for the supported languages.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en"

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed translations.yaml
var translationsYAML []byte

var catalogs = mustLoad(translationsYAML)

func mustLoad(raw []byte) map[string]map[string]string {
	c, err := load(raw)
	if err != nil {
		panic(fmt.Sprintf("i18n: %v", err))
	}
	return c
}

func load(raw []byte) (map[string]map[string]string, error) {
	var c map[string]map[string]string
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}
	if _, ok := c[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("translations missing %q", DefaultLanguage)
	}
	return c, nil
}

// Normalize lowercases and trims a language tag.
func Normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

func Supported(lang string) bool {
	_, ok := catalogs[Normalize(lang)]
	return ok
}

// Lookup returns the translation of key, or the key itself when the
// language or the key is unknown.
func Lookup(lang, key string) string {
	if v, ok := catalogs[Normalize(lang)][key]; ok && v != "" {
		return v
	}
	return key
}

// Catalog returns a copy of every string for lang.
func Catalog(lang string) (map[string]string, error) {
	c, ok := catalogs[Normalize(lang)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", lang, ErrUnsupportedLanguage)
	}
	return maps.Clone(c), nil
}
