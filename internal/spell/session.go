package spell

import (
	"context"
	"sync"
)

// State names a suggestion-flow state.
type State string

const (
	Idle               State = "idle"
	WordSelected       State = "word_selected"
	SuggestionsLoading State = "suggestions_loading"
	SuggestionsReady   State = "suggestions_ready"
	SuggestionsFailed  State = "suggestions_failed"
)

// Anchor addresses the exact bounds of the selected annotation span:
// block index plus byte offsets into the block text.
type Anchor struct {
	Block int `json:"block"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Session is the suggestion-flow state machine. Clicking a span selects a
// word and starts a suggestion fetch; resolving the fetch moves to Ready or
// Failed; cancellation is synchronous and unconditional, and any in-flight
// fetch result arriving after cancellation is discarded by selection-token
// comparison.
type Session struct {
	oracle Oracle

	mu          sync.Mutex
	state       State
	word        string
	anchor      Anchor
	revision    uint64
	token       uint64
	suggestions []string
}

// NewSession creates an idle suggestion session over the oracle.
func NewSession(oracle Oracle) *Session {
	return &Session{oracle: oracle, state: Idle}
}

// State returns the current state with its word and suggestion list.
func (s *Session) State() (State, string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.word, append([]string(nil), s.suggestions...)
}

// Anchor returns the span bounds of the current selection.
func (s *Session) Anchor() Anchor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor
}

// Select enters WordSelected for the given span and moves straight to
// SuggestionsLoading. revision is the editor revision the anchor was read
// at; Accept hands it back so the caller can reject a selection whose
// document has since moved. Select returns the selection token the
// eventual Resolve must present.
func (s *Session) Select(word string, anchor Anchor, revision uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.state = SuggestionsLoading
	s.word = word
	s.anchor = anchor
	s.revision = revision
	s.suggestions = nil
	return s.token
}

// Resolve commits a fetched suggestion list. A stale token (selection moved
// or cancelled) is discarded and Resolve reports false. A fetch error moves
// to SuggestionsFailed, which renders as an empty list, not an error.
func (s *Session) Resolve(token uint64, list []string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || s.state != SuggestionsLoading {
		return false
	}
	if err != nil {
		s.state = SuggestionsFailed
		s.suggestions = nil
		return true
	}
	s.state = SuggestionsReady
	s.suggestions = list
	return true
}

// Fetch performs the oracle suggestion call for the current selection and
// resolves it. Intended to run on its own goroutine; safe to race with
// Cancel or a newer Select.
func (s *Session) Fetch(ctx context.Context, token uint64) {
	s.mu.Lock()
	word := s.word
	s.mu.Unlock()
	list, err := s.oracle.Suggestions(ctx, word)
	s.Resolve(token, list, err)
}

// Cancel returns to Idle from any state, discarding pending suggestion
// state. In-flight fetches resolve against a stale token and are dropped.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.state = Idle
	s.word = ""
	s.anchor = Anchor{}
	s.revision = 0
	s.suggestions = nil
}

// Accept consumes the current selection for a suggestion application and
// returns to Idle. It reports the span bounds the replacement applies to
// and the editor revision the span was anchored at, or ok=false when no
// suggestion flow is active. The caller must compare revision against the
// live document before editing; a moved revision means the anchor bytes
// no longer address the selected word.
func (s *Session) Accept() (word string, anchor Anchor, revision uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SuggestionsReady && s.state != SuggestionsFailed {
		return "", Anchor{}, 0, false
	}
	word, anchor, revision = s.word, s.anchor, s.revision
	s.token++
	s.state = Idle
	s.word = ""
	s.anchor = Anchor{}
	s.revision = 0
	s.suggestions = nil
	return word, anchor, revision, true
}
