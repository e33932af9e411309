// Package models defines the client-side data of the text desk form.
package models

import (
	"errors"
	"fmt"
)

// Language is a language code understood by the translation endpoint.
type Language string

const (
	LanguageTelugu  Language = "te_IN"
	LanguageEnglish Language = "en_XX"
)

// Defaults of the two language selectors.
const (
	DefaultSourceLanguage = LanguageTelugu
	DefaultTargetLanguage = LanguageEnglish
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists the selectable codes in display order.
func Languages() []Language {
	return []Language{LanguageTelugu, LanguageEnglish}
}

// ParseLanguage validates a raw selector value.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

func (l Language) Valid() bool {
	return l == LanguageTelugu || l == LanguageEnglish
}

// Label is the human name shown next to the code.
func (l Language) Label() string {
	switch l {
	case LanguageTelugu:
		return "Telugu"
	case LanguageEnglish:
		return "English"
	}
	return string(l)
}
