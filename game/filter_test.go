package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTargetWord(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		target string
		want   bool
	}{
		{"whole word", "I saw a cat yesterday", "cat", true},
		{"substring of longer word", "concatenate", "cat", false},
		{"case insensitive", "the CAT sat", "cat", true},
		{"uppercase target", "the cat sat", "CAT", true},
		{"start of sentence", "cat is my favourite", "cat", true},
		{"end with punctuation", "what a nice cat!", "cat", true},
		{"absent", "a dog walked by", "cat", false},
		{"empty target", "anything", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ContainsTargetWord(tc.text, tc.target))
		})
	}
}

func TestIsCheatAttempt(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		target string
		want   bool
	}{
		{"literal word", "it is a cat obviously", "cat", true},
		{"clean hint", "a small furry animal", "cat", false},
		{"leet digits decode to word", "look, a d0g", "dog", true},
		{"three decodes to e", "b3d time", "bed", true},
		{"one decodes to i", "a b1g p1g", "pig", true},
		{"unmapped digit stays a digit", "c4t", "cat", false},
		{"decoded but different word", "c0t", "cat", false},
		{"letters spaced out", "it spells c a t", "cat", true},
		{"spaced letters after decode", "d 0 g", "dog", true},
		{"double spaced letters do not count", "c  a  t", "cat", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isCheatAttempt(tc.text, tc.target))
		})
	}
}
