// Package words supplies the candidate secret words for a game, drawn
// without replacement from per-difficulty lists embedded at build time.
package words

import (
	"bufio"
	"embed"
	"errors"
	"math/rand"
	"strings"

	"github.com/Taosit/Lingpal-server/game"
	"github.com/Taosit/Lingpal-server/shared/logger"
)

//go:embed easy.txt hard.txt
var listFS embed.FS

var ErrNotEnoughWords = errors.New("not enough words")

type Supplier struct {
	easy []string
	hard []string
}

func NewSupplier() *Supplier {
	s := &Supplier{
		easy: mustReadList("easy.txt"),
		hard: mustReadList("hard.txt"),
	}
	logger.Infof("word lists loaded: %d easy, %d hard", len(s.easy), len(s.hard))
	return s
}

// ChooseWords returns count distinct words of the given difficulty, in
// random order.
func (s *Supplier) ChooseWords(count int, level game.Difficulty) ([]string, error) {
	list := s.easy
	if level == game.DifficultyHard {
		list = s.hard
	}
	if count > len(list) {
		return nil, ErrNotEnoughWords
	}
	chosen := make([]string, 0, count)
	for _, i := range rand.Perm(len(list))[:count] {
		chosen = append(chosen, list[i])
	}
	return chosen, nil
}

func mustReadList(name string) []string {
	file, err := listFS.Open(name)
	if err != nil {
		logger.Fatalf("could not open word list %s: %v", name, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		logger.Fatalf("error while reading word list %s: %v", name, err)
	}
	return words
}
