package spell

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSession_SelectThenResolveReady(t *testing.T) {
	s := NewSession(&fakeOracle{})

	anchor := Anchor{Block: 1, Start: 4, End: 7}
	token := s.Select("teh", anchor, 1)

	state, word, _ := s.State()
	if state != SuggestionsLoading || word != "teh" {
		t.Fatalf("after select: %v %q", state, word)
	}

	if !s.Resolve(token, []string{"the", "ten"}, nil) {
		t.Fatal("resolve discarded")
	}
	state, word, list := s.State()
	if state != SuggestionsReady || word != "teh" {
		t.Errorf("after resolve: %v %q", state, word)
	}
	if !reflect.DeepEqual(list, []string{"the", "ten"}) {
		t.Errorf("suggestions = %v", list)
	}
	if got := s.Anchor(); got != anchor {
		t.Errorf("anchor = %+v", got)
	}
}

func TestSession_FetchErrorRendersAsEmptyList(t *testing.T) {
	s := NewSession(&fakeOracle{})

	token := s.Select("teh", Anchor{}, 1)
	if !s.Resolve(token, nil, errors.New("oracle down")) {
		t.Fatal("resolve discarded")
	}
	state, _, list := s.State()
	if state != SuggestionsFailed {
		t.Errorf("state = %v", state)
	}
	if len(list) != 0 {
		t.Errorf("failed fetch must present an empty list, got %v", list)
	}
}

func TestSession_CancelDiscardsInFlightFetch(t *testing.T) {
	s := NewSession(&fakeOracle{})

	token := s.Select("teh", Anchor{Block: 2}, 1)
	s.Cancel()

	if state, word, _ := s.State(); state != Idle || word != "" {
		t.Fatalf("after cancel: %v %q", state, word)
	}
	// The fetch started before Cancel arrives late and must be dropped.
	if s.Resolve(token, []string{"the"}, nil) {
		t.Error("stale resolve accepted")
	}
	if state, _, list := s.State(); state != Idle || len(list) != 0 {
		t.Errorf("stale resolve mutated session: %v %v", state, list)
	}
}

func TestSession_NewSelectionInvalidatesOldToken(t *testing.T) {
	s := NewSession(&fakeOracle{})

	old := s.Select("recieve", Anchor{Block: 0}, 1)
	s.Select("teh", Anchor{Block: 3}, 2)

	if s.Resolve(old, []string{"receive"}, nil) {
		t.Fatal("resolve for superseded selection accepted")
	}
	_, word, _ := s.State()
	if word != "teh" {
		t.Errorf("word = %q", word)
	}
}

func TestSession_FetchResolvesThroughOracle(t *testing.T) {
	s := NewSession(&fakeOracle{})

	token := s.Select("teh", Anchor{}, 1)
	s.Fetch(context.Background(), token)

	state, _, list := s.State()
	if state != SuggestionsReady {
		t.Fatalf("state = %v", state)
	}
	if !reflect.DeepEqual(list, []string{"teh1", "teh2"}) {
		t.Errorf("suggestions = %v", list)
	}
}

func TestSession_AcceptConsumesSelection(t *testing.T) {
	s := NewSession(&fakeOracle{})

	anchor := Anchor{Block: 1, Start: 4, End: 7}
	token := s.Select("teh", anchor, 7)
	s.Resolve(token, []string{"the"}, nil)

	word, got, rev, ok := s.Accept()
	if !ok || word != "teh" || got != anchor || rev != 7 {
		t.Fatalf("accept = %q %+v %d %v", word, got, rev, ok)
	}
	if state, _, _ := s.State(); state != Idle {
		t.Errorf("state after accept = %v", state)
	}
	// A second accept has nothing to consume.
	if _, _, _, ok := s.Accept(); ok {
		t.Error("accept with no active flow")
	}
}

func TestSession_AcceptRequiresSettledFetch(t *testing.T) {
	s := NewSession(&fakeOracle{})

	s.Select("teh", Anchor{}, 1)
	if _, _, _, ok := s.Accept(); ok {
		t.Error("accept during loading")
	}
}
