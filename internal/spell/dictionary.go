package spell

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const maxSuggestions = 5

// Dictionary is the built-in Oracle: an embedded common-word list plus a
// user dictionary persisted as JSON. Suggestions combine edit distance,
// Soundex phonetic matching, and keyboard-adjacency typo candidates, ranked
// by a similarity score.
type Dictionary struct {
	mu     sync.Mutex
	words  map[string]struct{}
	custom map[string]struct{}
	cache  map[string][]string

	// customPath, when non-empty, is where the user dictionary is saved.
	customPath string
}

// NewDictionary builds a Dictionary from the embedded word list. If
// customPath is non-empty an existing user dictionary is loaded from it and
// AddWord persists back to it.
func NewDictionary(customPath string) (*Dictionary, error) {
	d := &Dictionary{
		words:      make(map[string]struct{}),
		custom:     make(map[string]struct{}),
		cache:      make(map[string][]string),
		customPath: customPath,
	}
	for _, w := range strings.Fields(baseWords) {
		d.words[w] = struct{}{}
	}
	if customPath != "" {
		if err := d.loadCustom(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dictionary) loadCustom() error {
	data, err := os.ReadFile(d.customPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("spell: read user dictionary: %w", err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return fmt.Errorf("spell: parse user dictionary: %w", err)
	}
	for _, w := range words {
		d.custom[strings.ToLower(w)] = struct{}{}
	}
	return nil
}

func (d *Dictionary) saveCustomLocked() error {
	if d.customPath == "" {
		return nil
	}
	words := make([]string, 0, len(d.custom))
	for w := range d.custom {
		words = append(words, w)
	}
	sort.Strings(words)
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(d.customPath), 0o755); err != nil {
		return fmt.Errorf("spell: create dictionary dir: %w", err)
	}
	if err := os.WriteFile(d.customPath, data, 0o644); err != nil {
		return fmt.Errorf("spell: save user dictionary: %w", err)
	}
	return nil
}

// CheckWord implements Oracle. Non-alphabetic input is treated as correct.
// Case is folded here; the acronym exemption lives in the engine, which
// still sees the original-case token.
func (d *Dictionary) CheckWord(_ context.Context, word string) (bool, error) {
	if word == "" || !isAlpha(word) {
		return true, nil
	}
	lower := strings.ToLower(word)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.words[lower]; ok {
		return true, nil
	}
	_, ok := d.custom[lower]
	return ok, nil
}

// Suggestions implements Oracle: candidates from edit distance (≤2),
// Soundex match, and keyboard-adjacent substitutions, scored and capped.
func (d *Dictionary) Suggestions(_ context.Context, word string) ([]string, error) {
	lower := strings.ToLower(word)

	d.mu.Lock()
	if cached, ok := d.cache[lower]; ok {
		d.mu.Unlock()
		return append([]string(nil), cached...), nil
	}
	all := make([]string, 0, len(d.words)+len(d.custom))
	for w := range d.words {
		all = append(all, w)
	}
	for w := range d.custom {
		all = append(all, w)
	}
	d.mu.Unlock()

	seen := make(map[string]struct{})
	var candidates []string
	add := func(w string) {
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		candidates = append(candidates, w)
	}

	target := soundex(lower)
	for _, w := range all {
		if abs(len(lower)-len(w)) <= 2 && levenshtein(lower, w) <= 2 {
			add(w)
		}
	}
	for _, w := range all {
		if soundex(w) == target {
			add(w)
		}
	}
	for _, w := range keyboardCandidates(lower) {
		if _, ok := seen[w]; ok {
			continue
		}
		d.mu.Lock()
		_, known := d.words[w]
		if !known {
			_, known = d.custom[w]
		}
		d.mu.Unlock()
		if known {
			add(w)
		}
	}

	type scored struct {
		word  string
		score int
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{word: c, score: similarity(lower, c)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].word < ranked[j].word
	})

	out := make([]string, 0, maxSuggestions)
	for _, s := range ranked {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, s.word)
	}

	d.mu.Lock()
	d.cache[lower] = out
	d.mu.Unlock()
	return append([]string(nil), out...), nil
}

// AddWord implements Oracle: records the word in the user dictionary and
// invalidates the suggestion cache so the new word can be suggested.
func (d *Dictionary) AddWord(word string) error {
	if word == "" || !isAlpha(word) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.custom[strings.ToLower(word)] = struct{}{}
	d.cache = make(map[string][]string)
	return d.saveCustomLocked()
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 0; i < len(a); i++ {
		cur[0] = i + 1
		for j := 0; j < len(b); j++ {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}
			cur[j+1] = min(prev[j+1]+1, min(cur[j]+1, prev[j]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

var soundexCodes = map[byte]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// soundex returns the classic 4-character phonetic code.
func soundex(word string) string {
	if word == "" {
		return "0000"
	}
	upper := strings.ToUpper(word)
	code := []byte{upper[0]}
	for i := 1; i < len(upper); i++ {
		v, ok := soundexCodes[upper[i]]
		if !ok {
			continue
		}
		if code[len(code)-1] != v {
			code = append(code, v)
		}
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code[:4])
}

// QWERTY neighbours for single-substitution typo candidates.
var keyboardNeighbours = map[byte]string{
	'q': "wa", 'w': "qes", 'e': "wrd", 'r': "etf", 't': "ryg",
	'y': "tuh", 'u': "yij", 'i': "uok", 'o': "ipl", 'p': "ol",
	'a': "qsz", 's': "awdx", 'd': "sefc", 'f': "drgv", 'g': "fthb",
	'h': "gynj", 'j': "hukm", 'k': "jilm", 'l': "kop",
	'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

func keyboardCandidates(word string) []string {
	var out []string
	for i := 0; i < len(word); i++ {
		neighbours, ok := keyboardNeighbours[word[i]]
		if !ok {
			continue
		}
		for j := 0; j < len(neighbours); j++ {
			out = append(out, word[:i]+string(neighbours[j])+word[i+1:])
		}
	}
	return out
}

// similarity scores a candidate against the misspelled word: similar length
// and few edits score high, with bonuses for a shared two-letter prefix and
// for transpositions (same letters, different order).
func similarity(word, candidate string) int {
	score := 100 - abs(len(word)-len(candidate))*5 - levenshtein(word, candidate)*10
	if len(word) >= 2 && len(candidate) >= 2 && word[:2] == candidate[:2] {
		score += 10
	}
	if word != candidate && sortLetters(word) == sortLetters(candidate) {
		score += 25
	}
	if score < 0 {
		score = 0
	}
	return score
}

func sortLetters(s string) string {
	b := []byte(s)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}
