package spell

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/D3nams/Notepad/internal/document"
)

// lookupConcurrency bounds the oracle lookup fan-out per pass.
const lookupConcurrency = 8

// Engine runs annotation passes: it tokenizes the text of a document,
// queries the oracle for every distinct word, and repartitions text runs
// into annotation spans. It holds only the oracle capability and the user
// allow-list; no ambient state.
type Engine struct {
	oracle Oracle

	mu    sync.Mutex
	allow map[string]struct{}
}

// NewEngine creates an annotation engine over the given oracle.
func NewEngine(oracle Oracle) *Engine {
	return &Engine{oracle: oracle, allow: make(map[string]struct{})}
}

// Oracle returns the underlying oracle capability.
func (e *Engine) Oracle() Oracle { return e.oracle }

func (e *Engine) allowed(word string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.allow[word]
	return ok
}

// Annotate returns a copy of doc with misspelled words wrapped in annotation
// spans. Existing spans are flattened first, so the pass is idempotent and
// format attributes survive repeated passes. All distinct-word lookups are
// issued concurrently and the structural rewrite happens in one synchronous
// step after every lookup has settled. A failed lookup counts as correct.
func (e *Engine) Annotate(ctx context.Context, doc document.Document) document.Document {
	flat := doc.Flatten()

	words := collectWords(flat)
	if len(words) == 0 {
		return flat
	}
	misspelled := e.lookupAll(ctx, words)
	if len(misspelled) == 0 {
		return flat
	}

	out := flat.Clone()
	for bi := range out.Blocks {
		for ii, item := range out.Blocks[bi].Items {
			out.Blocks[bi].Items[ii] = annotateItem(item, misspelled)
		}
	}
	return out.Normalize()
}

// collectWords returns the distinct lower-cased words of the document.
// Collecting before any rewrite guarantees every occurrence of a word is
// treated the same within a single pass. Acronyms are exempt, so the
// original-case check happens here, before lower-casing.
func collectWords(doc document.Document) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range doc.Blocks {
		for _, item := range b.Items {
			text := document.ItemText(item)
			for _, tok := range Tokenize(text) {
				if tok.Kind != Word || isAcronym(text[tok.Start:tok.End]) {
					continue
				}
				w := strings.ToLower(text[tok.Start:tok.End])
				if _, ok := seen[w]; ok {
					continue
				}
				seen[w] = struct{}{}
				out = append(out, w)
			}
		}
	}
	return out
}

// lookupAll checks every word against the allow-list, then the oracle, with
// bounded concurrency. The scatter/gather barrier means the caller never
// observes a half-checked pass.
func (e *Engine) lookupAll(ctx context.Context, words []string) map[string]struct{} {
	results := make([]bool, len(words))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, w := range words {
		if e.allowed(w) {
			results[i] = true
			continue
		}
		g.Go(func() error {
			ok, err := e.oracle.CheckWord(gctx, w)
			if err != nil {
				ok = true // fail-open: a lookup failure must not mark the word
			}
			results[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	misspelled := make(map[string]struct{})
	for i, ok := range results {
		if !ok {
			misspelled[words[i]] = struct{}{}
		}
	}
	return misspelled
}

// isAcronym reports whether the original-case token is an all-caps
// abbreviation of two letters or more. Acronyms are never flagged, and the
// exemption must see the token before lower-casing folds "NASA" into a
// lookup for "nasa".
func isAcronym(word string) bool {
	return len(word) > 1 && word == strings.ToUpper(word) && word != strings.ToLower(word)
}

// annotateItem repartitions one inline sequence so that every Word token
// whose lower-cased text is in misspelled becomes an annotation span. Runs
// are split at token boundaries; the concatenated text is unchanged.
func annotateItem(item []document.Inline, misspelled map[string]struct{}) []document.Inline {
	text := document.ItemText(item)
	type interval struct {
		start, end int
		word       string
	}
	var marks []interval
	for _, tok := range Tokenize(text) {
		if tok.Kind != Word || isAcronym(text[tok.Start:tok.End]) {
			continue
		}
		w := strings.ToLower(text[tok.Start:tok.End])
		if _, ok := misspelled[w]; ok {
			marks = append(marks, interval{start: tok.Start, end: tok.End, word: w})
		}
	}
	if len(marks) == 0 {
		return item
	}

	var out []document.Inline
	pos := 0
	mi := 0
	for _, in := range item {
		runStart := pos
		runEnd := pos + len(in.Text)
		pos = runEnd
		cut := runStart
		for cut < runEnd {
			// Skip marks that end before the cursor.
			for mi < len(marks) && marks[mi].end <= cut {
				mi++
			}
			if mi >= len(marks) || marks[mi].start >= runEnd {
				out = append(out, fragment(in, runStart, cut, runEnd, false, ""))
				break
			}
			m := marks[mi]
			if m.start > cut {
				out = append(out, fragment(in, runStart, cut, m.start, false, ""))
				cut = m.start
			}
			hi := min(m.end, runEnd)
			out = append(out, fragment(in, runStart, cut, hi, true, m.word))
			cut = hi
		}
	}
	return out
}

// fragment slices in's text to [lo,hi) of item coordinates and applies the
// annotation attributes. runStart is the run's item offset.
func fragment(in document.Inline, runStart, lo, hi int, misspelled bool, word string) document.Inline {
	out := in
	out.Text = in.Text[lo-runStart : hi-runStart]
	out.Misspelled = misspelled
	out.Word = word
	return out
}

// AddToDictionary records the word in the user allow-list and the oracle,
// then strips every span matching it from doc in one rewrite, without a
// full re-annotation pass.
func (e *Engine) AddToDictionary(word string, doc document.Document) document.Document {
	lower := strings.ToLower(word)

	e.mu.Lock()
	e.allow[lower] = struct{}{}
	e.mu.Unlock()
	_ = e.oracle.AddWord(lower)

	out := doc.Clone()
	for bi := range out.Blocks {
		for _, item := range out.Blocks[bi].Items {
			for ri := range item {
				if item[ri].Misspelled && item[ri].Word == lower {
					item[ri].Misspelled = false
					item[ri].Word = ""
				}
			}
		}
	}
	return out.Normalize()
}
