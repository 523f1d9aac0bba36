package domain

import (
	"fmt"
	"regexp"
)

const _maxPhraseSyllables = 10

var (
	wordPattern        = regexp.MustCompile(`\w+`)
	vowelPattern       = regexp.MustCompile(`[aeiou]`)
	doubleVowelPattern = regexp.MustCompile(`[aeiou]{2}`)
)

// Syllables estimates the syllable count of a phrase: vowels minus vowel
// pairs, per word.
func Syllables(phrase string) int {
	count := 0
	for _, word := range wordPattern.FindAllString(NormalizePhrase(phrase), -1) {
		count += len(vowelPattern.FindAllString(word, -1)) - len(doubleVowelPattern.FindAllString(word, -1))
	}
	return count
}

// PhraseThreshold returns the keyword spotting threshold exponent used in
// the recognizer keyword list ("phrase /1e-N/").
func PhraseThreshold(phrase string) (int, error) {
	syllables := Syllables(phrase)
	switch {
	case syllables == 0:
		return 0, fmt.Errorf("%w: %q has no syllables", ErrInvalidPhrase, phrase)
	case syllables == 1:
		return 1, nil
	case syllables <= _maxPhraseSyllables:
		return syllables * 5, nil
	default:
		return 0, fmt.Errorf("%w: %q has more than %d syllables", ErrInvalidPhrase, phrase, _maxPhraseSyllables)
	}
}
