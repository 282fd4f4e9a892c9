package palindrome

import (
	"errors"
	"fmt"
	"strings"
)

// Language selects the normalization rules applied when comparing characters.
type Language string

const (
	English Language = "EN"
	Spanish Language = "ES"
)

// DefaultLanguage is used when a request does not name a language.
const DefaultLanguage = English

var ErrInvalidLanguage = errors.New("invalid language")

// Languages returns every supported language in a stable order.
func Languages() []Language {
	return []Language{English, Spanish}
}

func (l Language) IsValid() bool {
	return l == English || l == Spanish
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage accepts "EN"/"ES" in any letter case. An empty string is rejected;
// callers that want the default must check for it themselves.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToUpper(strings.TrimSpace(s)))
	if !lang.IsValid() {
		return "", fmt.Errorf("%w: %q (expected EN or ES)", ErrInvalidLanguage, s)
	}
	return lang, nil
}
