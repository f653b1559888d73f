package domain

import "strings"

// diacriticLanguages lists languages whose learners depend on full vowel
// marking. All of them are also written right-to-left.
var diacriticLanguages = []string{"arabic", "hebrew", "persian", "farsi", "urdu"}

// RequiresDiacritics reports whether generated text in lang must carry full
// diacritical marking. Matching is a case-insensitive substring test so that
// names like "Classical Arabic" or "Quranic Arabic" are recognized.
func RequiresDiacritics(lang string) bool {
	l := strings.ToLower(lang)
	for _, name := range diacriticLanguages {
		if strings.Contains(l, name) {
			return true
		}
	}
	return false
}

// IsRightToLeft reports whether lang is written right-to-left.
func IsRightToLeft(lang string) bool {
	return RequiresDiacritics(lang)
}

// IsArabic reports whether lang names a variety of Arabic.
func IsArabic(lang string) bool {
	return strings.Contains(strings.ToLower(lang), "arabic")
}
