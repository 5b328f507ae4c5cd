package main

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// WordSource supplies target words and validity checks, keyed by word length.
type WordSource interface {
	RandomWord(length int) string
	IsValid(word string) bool
	Lengths() []int
}

// wordListFile is the on-disk JSON structure: word lists keyed by length.
type wordListFile struct {
	Words map[string][]string `json:"words"`
}

// wordLists is the file-backed WordSource used in production.
type wordLists struct {
	lists map[int][]string
	sets  map[int]map[string]struct{}
}

// loadWordLists reads per-length word lists from a JSON file. Words whose
// length does not match their bucket are skipped with a warning.
func loadWordLists(path string) (*wordLists, error) {
	logInfo("Loading words from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file wordListFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	wl := &wordLists{
		lists: make(map[int][]string),
		sets:  make(map[int]map[string]struct{}),
	}
	for key, words := range file.Words {
		length, err := strconv.Atoi(key)
		if err != nil || length <= 0 {
			logWarn("Skipping word list %q: not a valid length", key)
			continue
		}
		valid := lo.FilterMap(words, func(w string, _ int) (string, bool) {
			w = strings.ToUpper(strings.TrimSpace(w))
			if len(w) != length {
				logWarn("Skipping word %q: not %d letters", w, length)
				return "", false
			}
			return w, true
		})
		if len(valid) == 0 {
			logWarn("Word list for length %d is empty after filtering", length)
			continue
		}
		wl.lists[length] = valid
		wl.sets[length] = make(map[string]struct{}, len(valid))
		lo.ForEach(valid, func(w string, _ int) {
			wl.sets[length][w] = struct{}{}
		})
		logInfo("Loaded %d words of length %d", len(valid), length)
	}
	return wl, nil
}

// RandomWord draws a random word of the given length. Unsupported lengths
// fall back to the default list; a failed random draw falls back to the
// first entry rather than erroring.
func (wl *wordLists) RandomWord(length int) string {
	list, ok := wl.lists[length]
	if !ok {
		list = wl.lists[DefaultWordLength]
	}
	if len(list) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		logWarn("Error generating random word index: %v, using fallback", err)
		return list[0]
	}
	return list[n.Int64()]
}

// IsValid reports whether the word appears in the list for its length.
func (wl *wordLists) IsValid(word string) bool {
	word = strings.ToUpper(strings.TrimSpace(word))
	set, ok := wl.sets[len(word)]
	if !ok {
		return false
	}
	_, ok = set[word]
	return ok
}

// Lengths returns the supported word lengths in ascending order.
func (wl *wordLists) Lengths() []int {
	lengths := lo.Keys(wl.lists)
	sort.Ints(lengths)
	return lengths
}
