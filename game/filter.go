package game

import (
	"regexp"
	"strings"
)

// leetDecoder maps the digit substitutions the filter knows about. The
// table is deliberately just these three; anything else passes through.
var leetDecoder = strings.NewReplacer("3", "e", "0", "o", "1", "i")

// ContainsTargetWord reports whether text contains the target as a whole
// word, case-insensitively. "cat" matches in "I saw a cat" but not in
// "concatenate".
func ContainsTargetWord(text, target string) bool {
	target = strings.TrimSpace(strings.ToLower(target))
	if target == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(target) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// isCheatAttempt decides whether a describer's message gives the secret
// word away: a literal whole-word match, a whole-word match after decoding
// the known leetspeak digits, or the word spelled out letter by letter with
// single spaces ("c a t" for "cat"). Only ever applied to messages authored
// by the active describer.
func isCheatAttempt(text, target string) bool {
	if ContainsTargetWord(text, target) {
		return true
	}
	decoded := leetDecoder.Replace(strings.ToLower(text))
	if ContainsTargetWord(decoded, target) {
		return true
	}
	return strings.Contains(decoded, spellOut(target))
}

// spellOut spreads the word's letters with single spaces.
func spellOut(word string) string {
	letters := strings.Split(strings.ToLower(word), "")
	return strings.Join(letters, " ")
}
