package editor

import (
	"reflect"
	"testing"

	"github.com/D3nams/Notepad/internal/document"
)

func para(text string) document.Block {
	return document.Block{Kind: document.Paragraph, Items: [][]document.Inline{{{Text: text}}}}
}

func doc(blocks ...document.Block) document.Document {
	return document.Document{ID: "n1", Title: "t", Blocks: blocks}.Normalize()
}

func sel(sb, so, eb, eo int) Selection {
	return Selection{StartBlock: sb, StartOffset: so, EndBlock: eb, EndOffset: eo}
}

func TestToggleFormat_SplitsRuns(t *testing.T) {
	d := doc(para("hello world"))
	next, _, applied := Apply(d, Command{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 6, 0, 11)})
	if !applied {
		t.Fatal("not applied")
	}
	item := next.Blocks[0].Items[0]
	if len(item) != 2 {
		t.Fatalf("runs = %+v", item)
	}
	if item[0].Text != "hello " || item[0].Format != 0 {
		t.Errorf("left run = %+v", item[0])
	}
	if item[1].Text != "world" || !item[1].Format.Has(document.Bold) {
		t.Errorf("right run = %+v", item[1])
	}
	if next.PlainText() != d.PlainText() {
		t.Errorf("text changed: %q -> %q", d.PlainText(), next.PlainText())
	}
}

func TestToggleFormat_FlipsExisting(t *testing.T) {
	d := doc(document.Block{Kind: document.Paragraph, Items: [][]document.Inline{{
		{Text: "abc", Format: document.Bold},
	}}})
	next, _, _ := Apply(d, Command{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 0, 0, 3)})
	if next.Blocks[0].Items[0][0].Format.Has(document.Bold) {
		t.Error("bold not removed")
	}
}

func TestToggleFormat_CaretIsNoOp(t *testing.T) {
	d := doc(para("abc"))
	next, _, applied := Apply(d, Command{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 1, 0, 1)})
	if applied {
		t.Error("caret toggle should be a no-op")
	}
	if !reflect.DeepEqual(next, d) {
		t.Error("document changed")
	}
}

func TestToggleFormat_InvalidSelectionIsNoOp(t *testing.T) {
	d := doc(para("abc"))
	_, _, applied := Apply(d, Command{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 0, 5, 2)})
	if applied {
		t.Error("out-of-range selection should be a no-op")
	}
}

func TestSetBlockKind_PreservesInlineContent(t *testing.T) {
	d := doc(para("heading text"))
	next, _, _ := Apply(d, Command{Kind: CmdSetBlockKind, BlockKind: document.Heading1, Selection: sel(0, 0, 0, 0)})
	if next.Blocks[0].Kind != document.Heading1 {
		t.Errorf("kind = %q", next.Blocks[0].Kind)
	}
	if next.PlainText() != "heading text" {
		t.Errorf("text = %q", next.PlainText())
	}
}

func TestSetBlockKind_ParagraphToListSplitsAtNewlines(t *testing.T) {
	d := doc(para("one\ntwo\nthree"))
	next, _, _ := Apply(d, Command{Kind: CmdSetBlockKind, BlockKind: document.BulletList, Selection: sel(0, 0, 0, 0)})
	if got := len(next.Blocks[0].Items); got != 3 {
		t.Fatalf("items = %d, want 3", got)
	}
	if next.PlainText() != "one\ntwo\nthree" {
		t.Errorf("text = %q", next.PlainText())
	}
}

func TestSetBlockKind_ListToParagraphJoins(t *testing.T) {
	d := doc(document.Block{Kind: document.BulletList, Items: [][]document.Inline{
		{{Text: "one"}}, {{Text: "two"}},
	}})
	next, _, _ := Apply(d, Command{Kind: CmdSetBlockKind, BlockKind: document.Paragraph, Selection: sel(0, 0, 0, 0)})
	if len(next.Blocks[0].Items) != 1 {
		t.Fatalf("items = %d, want 1", len(next.Blocks[0].Items))
	}
	if next.PlainText() != "one\ntwo" {
		t.Errorf("text = %q", next.PlainText())
	}
}

func TestInsertText_MidRun(t *testing.T) {
	d := doc(para("hello"))
	next, _, _ := Apply(d, Command{Kind: CmdInsertText, Text: "XY", Selection: sel(0, 3, 0, 3)})
	if got := next.PlainText(); got != "helXYlo" {
		t.Errorf("text = %q", got)
	}
}

func TestInsertText_UnwrapsAnnotationSpan(t *testing.T) {
	d := doc(document.Block{Kind: document.Paragraph, Items: [][]document.Inline{{
		{Text: "see "},
		{Text: "teh", Misspelled: true, Word: "teh"},
	}}})
	next, _, _ := Apply(d, Command{Kind: CmdInsertText, Text: "x", Selection: sel(0, 5, 0, 5)})
	for _, in := range next.Blocks[0].Items[0] {
		if in.Misspelled {
			t.Errorf("span survived edit: %+v", in)
		}
	}
	if got := next.PlainText(); got != "see txeh" {
		t.Errorf("text = %q", got)
	}
}

func TestInsertText_AtItemEndInheritsLastRunFormat(t *testing.T) {
	d := doc(document.Block{Kind: document.Paragraph, Items: [][]document.Inline{{
		{Text: "bold", Format: document.Bold},
	}}})
	next, _, _ := Apply(d, Command{Kind: CmdInsertText, Text: "er", Selection: sel(0, 4, 0, 4)})
	item := next.Blocks[0].Items[0]
	if len(item) != 1 || item[0].Text != "bolder" || !item[0].Format.Has(document.Bold) {
		t.Errorf("runs = %+v, want one bold run %q", item, "bolder")
	}
}

func TestInsertText_SeedFormatsEmptiedItem(t *testing.T) {
	// Replacing an item's sole run: the delete leaves no run to inherit
	// from, so the insert carries the deleted span's format itself.
	d := doc(document.Block{Kind: document.Paragraph, Items: [][]document.Inline{{
		{Text: "teh", Format: document.Bold},
	}}})
	mid, _, applied := Apply(d, Command{Kind: CmdDeleteRange, Selection: sel(0, 0, 0, 3)})
	if !applied {
		t.Fatal("delete not applied")
	}
	next, _, _ := Apply(mid, Command{
		Kind: CmdInsertText, Text: "the", Format: document.Bold, Selection: sel(0, 0, 0, 0),
	})
	item := next.Blocks[0].Items[0]
	if len(item) != 1 || item[0].Text != "the" || !item[0].Format.Has(document.Bold) {
		t.Errorf("runs = %+v, want one bold run %q", item, "the")
	}
}

func TestDeleteRange_WithinBlock(t *testing.T) {
	d := doc(para("hello world"))
	next, _, _ := Apply(d, Command{Kind: CmdDeleteRange, Selection: sel(0, 5, 0, 11)})
	if got := next.PlainText(); got != "hello" {
		t.Errorf("text = %q", got)
	}
}

func TestDeleteRange_AcrossBlocksMerges(t *testing.T) {
	d := doc(para("alpha"), para("beta"), para("gamma"))
	next, _, _ := Apply(d, Command{Kind: CmdDeleteRange, Selection: sel(0, 3, 2, 3)})
	if len(next.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(next.Blocks))
	}
	if got := next.PlainText(); got != "alpma" {
		t.Errorf("text = %q", got)
	}
}

func TestTextPreservation_FormatAndKindCommands(t *testing.T) {
	d := doc(
		para("The quick brown fox"),
		document.Block{Kind: document.BulletList, Items: [][]document.Inline{
			{{Text: "jumps"}}, {{Text: "over"}},
		}},
		para("the lazy dog"),
	)
	before := d.PlainText()
	cmds := []Command{
		{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 4, 1, 3)},
		{Kind: CmdToggleFormat, Format: document.Italic, Selection: sel(1, 0, 2, 7)},
		{Kind: CmdSetBlockKind, BlockKind: document.Quote, Selection: sel(0, 0, 0, 0)},
		{Kind: CmdSetBlockKind, BlockKind: document.Paragraph, Selection: sel(1, 0, 1, 0)},
		{Kind: CmdSetBlockKind, BlockKind: document.NumberedList, Selection: sel(2, 0, 2, 0)},
		{Kind: CmdToggleFormat, Format: document.Underline, Selection: sel(0, 0, 2, 5)},
	}
	cur := d
	for i, cmd := range cmds {
		var applied bool
		cur, _, applied = Apply(cur, cmd)
		if !applied {
			t.Fatalf("cmd %d not applied", i)
		}
		if got := cur.PlainText(); got != before {
			t.Fatalf("cmd %d changed text: %q -> %q", i, before, got)
		}
	}
}

func TestInverseLaw_EveryCommandKind(t *testing.T) {
	base := doc(
		para("hello world"),
		document.Block{Kind: document.BulletList, Items: [][]document.Inline{
			{{Text: "one"}}, {{Text: "two", Format: document.Bold}},
		}},
	)
	cmds := []Command{
		{Kind: CmdToggleFormat, Format: document.Bold, Selection: sel(0, 0, 0, 5)},
		{Kind: CmdSetBlockKind, BlockKind: document.Heading2, Selection: sel(0, 0, 0, 0)},
		{Kind: CmdSetBlockKind, BlockKind: document.Paragraph, Selection: sel(1, 0, 1, 0)},
		{Kind: CmdInsertText, Text: "zzz", Selection: sel(0, 5, 0, 5)},
		{Kind: CmdDeleteRange, Selection: sel(0, 2, 1, 2)},
	}
	for i, cmd := range cmds {
		next, inverse, applied := Apply(base, cmd)
		if !applied {
			t.Fatalf("cmd %d not applied", i)
		}
		back, _, ok := Apply(next, inverse)
		if !ok {
			t.Fatalf("cmd %d inverse not applied", i)
		}
		if !reflect.DeepEqual(back.Blocks, base.Blocks) {
			t.Errorf("cmd %d inverse mismatch:\n got %+v\nwant %+v", i, back.Blocks, base.Blocks)
		}
	}
}
