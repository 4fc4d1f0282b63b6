package document

import (
	"reflect"
	"testing"
)

func TestSerialize_Basic(t *testing.T) {
	d := Document{Blocks: []Block{
		{Kind: Heading1, Items: [][]Inline{{{Text: "Plan"}}}},
		{Kind: Paragraph, Items: [][]Inline{{{Text: "urgent", Format: Bold}}}},
	}}
	want := "<h1>Plan</h1><p><b>urgent</b></p>"
	if got := d.Serialize(); got != want {
		t.Errorf("serialize = %q, want %q", got, want)
	}
}

func TestSerialize_EscapesText(t *testing.T) {
	d := Document{Blocks: []Block{
		{Kind: Paragraph, Items: [][]Inline{{{Text: "a < b & c > d"}}}},
	}}
	want := "<p>a &lt; b &amp; c &gt; d</p>"
	if got := d.Serialize(); got != want {
		t.Errorf("serialize = %q", got)
	}
}

func TestSerialize_FlattensSpans(t *testing.T) {
	d := Document{Blocks: []Block{
		{Kind: Paragraph, Items: [][]Inline{{
			{Text: "see "},
			{Text: "teh", Misspelled: true, Word: "teh"},
		}}},
	}}
	if got := d.Serialize(); got != "<p>see teh</p>" {
		t.Errorf("serialize = %q", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	cases := []string{
		"<p>hello world</p>",
		"<h1>Plan</h1><p><b>urgent</b></p>",
		"<h2>Sub</h2><blockquote>quoted</blockquote><pre>code here</pre>",
		"<ul><li>one</li><li><b>two</b></li></ul>",
		"<ol><li>first</li><li>second</li></ol>",
		"<p><b><i><u>all</u></i></b> plain</p>",
		"<p>a &lt; b &amp; c &gt; d</p>",
	}
	for _, markup := range cases {
		blocks := Parse(markup)
		d := Document{Blocks: blocks}
		if got := d.Serialize(); got != markup {
			t.Errorf("round trip %q -> %q", markup, got)
		}
	}
}

func TestParse_AcceptsAliases(t *testing.T) {
	blocks := Parse("<p><strong>a</strong><em>b</em></p>")
	d := Document{Blocks: blocks}
	if got := d.Serialize(); got != "<p><b>a</b><i>b</i></p>" {
		t.Errorf("serialize = %q", got)
	}
}

func TestParse_BareTextBecomesParagraph(t *testing.T) {
	blocks := Parse("loose text")
	want := []Block{{Kind: Paragraph, Items: [][]Inline{{{Text: "loose text"}}}}}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("blocks = %+v", blocks)
	}
}

func TestParse_UnknownTagsSkipped(t *testing.T) {
	blocks := Parse(`<div class="x"><p>kept</p></div>`)
	d := Document{Blocks: blocks}
	if got := d.Serialize(); got != "<p>kept</p>" {
		t.Errorf("serialize = %q", got)
	}
}

func TestParse_Empty(t *testing.T) {
	blocks := Parse("")
	if len(blocks) != 1 || blocks[0].Kind != Paragraph {
		t.Errorf("blocks = %+v, want one empty paragraph", blocks)
	}
}

func TestParse_BrBecomesNewline(t *testing.T) {
	blocks := Parse("<p>a<br/>b</p>")
	d := Document{Blocks: blocks}
	if got := d.PlainText(); got != "a\nb" {
		t.Errorf("plain text = %q", got)
	}
}
