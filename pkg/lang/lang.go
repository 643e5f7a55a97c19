// Package lang provides language code normalisation and the localized
// string catalog for the image details dialog.
package lang

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Default represents the fallback language code used when no explicit
// language is configured. The value follows BCP 47 conventions.
const Default = "en"

var errEmptyCode = errors.New("language code cannot be empty")

// Normalize validates the provided language code and returns it in a
// canonicalised form (lowercase language, uppercase region). Supported
// formats follow the common `ll` or `ll-RR` pattern where `l` is an
// alphabetic character and `R` is the region designator.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", errEmptyCode
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid language code %q", code)
	}

	language := strings.ToLower(parts[0])
	if len(language) < 2 || len(language) > 8 {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	for _, r := range language {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language code %q", code)
		}
	}

	if len(parts) == 1 {
		return language, nil
	}

	region := parts[1]
	if len(region) < 2 || len(region) > 3 {
		return "", fmt.Errorf("invalid language region in %q", code)
	}
	for _, r := range region {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language region in %q", code)
		}
	}

	region = strings.ToUpper(region)
	return language + "-" + region, nil
}

// Base strips the region designator from a normalised code ("pt-BR" ->
// "pt"). Used to fall back to the bare language before falling back to
// the default catalog.
func Base(code string) string {
	if idx := strings.Index(code, "-"); idx > 0 {
		return code[:idx]
	}
	return code
}
