// Package spell provides word tokenization, the dictionary oracle contract,
// a built-in dictionary implementation, and the annotation engine that marks
// misspelled words inside a document tree.
package spell

// TokenKind classifies a token.
type TokenKind int

const (
	// Word is a maximal run of ASCII letters, the only alphabet the
	// dictionary oracle supports.
	Word TokenKind = iota
	// Other covers everything else: digits, punctuation, whitespace.
	Other
)

// Token is a half-open byte span [Start,End) of the tokenized text.
type Token struct {
	Start int
	End   int
	Kind  TokenKind
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Tokenize splits text into Word and Other tokens, left to right,
// non-overlapping. Concatenating the spans in order reproduces the input
// exactly; an empty input yields no tokens.
func Tokenize(text string) []Token {
	var out []Token
	i := 0
	for i < len(text) {
		start := i
		if isLetter(text[i]) {
			for i < len(text) && isLetter(text[i]) {
				i++
			}
			out = append(out, Token{Start: start, End: i, Kind: Word})
			continue
		}
		for i < len(text) && !isLetter(text[i]) {
			i++
		}
		out = append(out, Token{Start: start, End: i, Kind: Other})
	}
	return out
}
