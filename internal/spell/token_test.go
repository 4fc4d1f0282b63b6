package spell

import "testing"

func TestTokenize_Coverage(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"hello world",
		"  leading and trailing  ",
		"digits123mix ed-words, punct!",
		"über non-ascii stays Other for its bytes",
	}
	for _, in := range inputs {
		var rebuilt string
		prev := 0
		for _, tok := range Tokenize(in) {
			if tok.Start != prev {
				t.Fatalf("%q: gap/overlap at %d", in, tok.Start)
			}
			prev = tok.End
			rebuilt += in[tok.Start:tok.End]
		}
		if rebuilt != in {
			t.Errorf("rebuilt %q != input %q", rebuilt, in)
		}
	}
}

func TestTokenize_Classification(t *testing.T) {
	toks := Tokenize("ab1 cd")
	want := []Token{
		{Start: 0, End: 2, Kind: Word},
		{Start: 2, End: 4, Kind: Other},
		{Start: 4, End: 6, Kind: Word},
	}
	if len(toks) != len(want) {
		t.Fatalf("tokens = %+v", toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestTokenize_MaximalWordRuns(t *testing.T) {
	toks := Tokenize("abcDEF")
	if len(toks) != 1 || toks[0].Kind != Word {
		t.Errorf("tokens = %+v, want one Word token", toks)
	}
}
