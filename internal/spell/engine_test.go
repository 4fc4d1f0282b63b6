package spell

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/D3nams/Notepad/internal/document"
)

// fakeOracle marks a fixed set of words as misspelled and records lookups.
type fakeOracle struct {
	mu      sync.Mutex
	bad     map[string]bool
	failing bool
	lookups []string
	added   []string
}

func (f *fakeOracle) CheckWord(_ context.Context, word string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, word)
	if f.failing {
		return false, errors.New("oracle unavailable")
	}
	return !f.bad[word], nil
}

func (f *fakeOracle) Suggestions(_ context.Context, word string) ([]string, error) {
	if f.failing {
		return nil, errors.New("oracle unavailable")
	}
	return []string{word + "1", word + "2"}, nil
}

func (f *fakeOracle) AddWord(word string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, word)
	return nil
}

func plainDoc(texts ...string) document.Document {
	d := document.Document{Title: "t"}
	for _, text := range texts {
		d.Blocks = append(d.Blocks, document.Block{
			Kind:  document.Paragraph,
			Items: [][]document.Inline{{{Text: text}}},
		})
	}
	return d
}

func TestAnnotate_MarksMisspelledWords(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"teh": true}}
	e := NewEngine(oracle)

	got := e.Annotate(context.Background(), plainDoc("see teh cat"))

	if text := got.PlainText(); text != "see teh cat" {
		t.Fatalf("text changed: %q", text)
	}
	words := got.MisspelledWords()
	if !reflect.DeepEqual(words, []string{"teh"}) {
		t.Fatalf("misspelled = %v", words)
	}
	runs := got.Blocks[0].Items[0]
	if len(runs) != 3 {
		t.Fatalf("runs = %#v", runs)
	}
	if runs[0].Misspelled || !runs[1].Misspelled || runs[2].Misspelled {
		t.Errorf("wrong runs flagged: %#v", runs)
	}
	if runs[1].Word != "teh" {
		t.Errorf("span word = %q", runs[1].Word)
	}
}

func TestAnnotate_RepeatedWordAnnotatedEverywhere(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"teh": true}}
	e := NewEngine(oracle)

	got := e.Annotate(context.Background(), plainDoc("teh start", "and teh end"))

	count := 0
	for _, b := range got.Blocks {
		for _, item := range b.Items {
			for _, run := range item {
				if run.Misspelled {
					count++
				}
			}
		}
	}
	if count != 2 {
		t.Errorf("flagged %d occurrences, want 2", count)
	}
}

func TestAnnotate_AllCapsAcronymsExempt(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"nasa": true}}
	e := NewEngine(oracle)

	// The exemption is decided on the original-case token: "NASA" passes
	// even though the lower-cased lookup would flag it, while a lower-case
	// "nasa" in the same pass is still marked.
	got := e.Annotate(context.Background(), plainDoc("NASA and nasa"))

	words := got.MisspelledWords()
	if !reflect.DeepEqual(words, []string{"nasa"}) {
		t.Fatalf("misspelled = %v", words)
	}
	runs := got.Blocks[0].Items[0]
	if runs[0].Text != "NASA and " || runs[0].Misspelled {
		t.Errorf("acronym flagged: %#v", runs)
	}
	if last := runs[len(runs)-1]; last.Text != "nasa" || !last.Misspelled {
		t.Errorf("lower-case occurrence not flagged: %#v", last)
	}
}

func TestAnnotate_DistinctWordsLookedUpOnce(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{}}
	e := NewEngine(oracle)

	e.Annotate(context.Background(), plainDoc("the cat and the dog and THE"))

	seen := make(map[string]int)
	for _, w := range oracle.lookups {
		seen[w]++
	}
	for w, n := range seen {
		if n != 1 {
			t.Errorf("word %q looked up %d times", w, n)
		}
	}
	if len(seen) != 4 { // the, cat, and, dog — case-folded before lookup
		t.Errorf("distinct lookups = %v", seen)
	}
}

func TestAnnotate_Idempotent(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"wrold": true}}
	e := NewEngine(oracle)
	ctx := context.Background()

	once := e.Annotate(ctx, plainDoc("hello wrold"))
	twice := e.Annotate(ctx, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the document:\n once: %#v\ntwice: %#v", once, twice)
	}
}

func TestAnnotate_FailOpen(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"teh": true}, failing: true}
	e := NewEngine(oracle)

	got := e.Annotate(context.Background(), plainDoc("teh cat"))
	if words := got.MisspelledWords(); len(words) != 0 {
		t.Errorf("oracle errors must not flag words, got %v", words)
	}
	if text := got.PlainText(); text != "teh cat" {
		t.Errorf("text changed: %q", text)
	}
}

func TestAnnotate_PreservesFormats(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"teh": true}}
	e := NewEngine(oracle)

	d := document.Document{Blocks: []document.Block{{
		Kind:  document.Paragraph,
		Items: [][]document.Inline{{{Text: "teh plan", Format: document.Bold}}},
	}}}
	got := e.Annotate(context.Background(), d)

	for _, run := range got.Blocks[0].Items[0] {
		if !run.Format.Has(document.Bold) {
			t.Errorf("run %q lost bold", run.Text)
		}
	}
}

func TestAddToDictionary_StripsSpansWithoutFullPass(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"golang": true, "teh": true}}
	e := NewEngine(oracle)
	ctx := context.Background()

	annotated := e.Annotate(ctx, plainDoc("golang and teh rest"))
	if n := len(annotated.MisspelledWords()); n != 2 {
		t.Fatalf("setup: %d misspelled words", n)
	}
	before := len(oracle.lookups)

	got := e.AddToDictionary("golang", annotated)

	if words := got.MisspelledWords(); !reflect.DeepEqual(words, []string{"teh"}) {
		t.Errorf("misspelled after add = %v", words)
	}
	if text := got.PlainText(); text != "golang and teh rest" {
		t.Errorf("text changed: %q", text)
	}
	if len(oracle.lookups) != before {
		t.Error("AddToDictionary must not trigger oracle lookups")
	}
	if !reflect.DeepEqual(oracle.added, []string{"golang"}) {
		t.Errorf("oracle.added = %v", oracle.added)
	}
}

func TestAddToDictionary_AllowListWinsOverOracle(t *testing.T) {
	oracle := &fakeOracle{bad: map[string]bool{"golang": true}}
	e := NewEngine(oracle)
	ctx := context.Background()

	_ = e.AddToDictionary("Golang", document.New("", ""))
	got := e.Annotate(ctx, plainDoc("golang rocks"))
	if words := got.MisspelledWords(); len(words) != 0 {
		t.Errorf("allow-listed word flagged: %v", words)
	}
}
