// Package palindrome decides whether a piece of text reads the same in both
// directions once punctuation, whitespace and letter case are ignored.
//
// Spanish text additionally folds the accented vowels á é í ó ú to their base
// letters. Other diacritics (ñ, ü, ...) are compared literally in every language.
//
// # Usage
//
//	palindrome.IsPalindrome("Able was I ere I saw Elba", palindrome.English) // true
//	palindrome.IsPalindrome("Dábale arroz a la zorra el abad", palindrome.Spanish) // true
package palindrome

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// skippable holds the ASCII punctuation set plus the whitespace characters
// space, \t, \n, \r, \f and \v.
var skippable = func() (table [utf8.RuneSelf]bool) {
	for _, r := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\f\v" {
		table[r] = true
	}
	return table
}()

func isSkippable(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && skippable[r]
}

// Checker is the value form of IsPalindrome, for callers that take the check
// as a dependency.
type Checker struct{}

func NewChecker() Checker {
	return Checker{}
}

func (Checker) Check(text string, lang Language) bool {
	return IsPalindrome(text, lang)
}

// IsPalindrome reports whether text is a palindrome under the rules of lang.
// It never fails: the empty string, a single character and text made only of
// punctuation or whitespace are all palindromes.
func IsPalindrome(text string, lang Language) bool {
	if text == "" {
		return true
	}

	// Both cursors are byte offsets of rune starts.
	left := 0
	right, _ := lastRuneStart(text, len(text))

	for left < right {
		leftRune, leftSize := utf8.DecodeRuneInString(text[left:])
		for left < right && isSkippable(leftRune) {
			left += leftSize
			leftRune, leftSize = utf8.DecodeRuneInString(text[left:])
		}

		rightRune, _ := utf8.DecodeRuneInString(text[right:])
		for left < right && isSkippable(rightRune) {
			right, rightRune = lastRuneStart(text, right)
		}

		if fold(leftRune, lang) != fold(rightRune, lang) {
			return false
		}

		left += leftSize
		right, _ = lastRuneStart(text, right)
	}
	return true
}

// lastRuneStart returns the offset and value of the rune ending right before end.
// For end == 0 it returns -1 so that the cursors are considered crossed.
func lastRuneStart(text string, end int) (int, rune) {
	if end <= 0 {
		return -1, utf8.RuneError
	}
	r, size := utf8.DecodeLastRuneInString(text[:end])
	return end - size, r
}

func fold(r rune, lang Language) rune {
	r = unicode.ToLower(r)
	if lang == Spanish {
		r = foldAccentedVowel(r)
	}
	return r
}

// foldAccentedVowel maps á é í ó ú to a e i o u by keeping the base letter of the
// canonical decomposition. Every other rune is returned unchanged.
func foldAccentedVowel(r rune) rune {
	switch r {
	case 'á', 'é', 'í', 'ó', 'ú':
		base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
		return base
	}
	return r
}
