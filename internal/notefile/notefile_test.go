package notefile

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	meta := Meta{
		ID:         "7f9c24e5",
		Title:      "Groceries",
		Categories: []string{"home", "todo"},
		CreatedAt:  time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
	}
	body := "<h1>Groceries</h1><ul><li>milk</li><li>bread</li></ul>"

	data, err := Encode(meta, body)
	if err != nil {
		t.Fatal(err)
	}
	gotMeta, gotBody, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotMeta, meta) {
		t.Errorf("meta = %+v, want %+v", gotMeta, meta)
	}
	if gotBody != body {
		t.Errorf("body = %q", gotBody)
	}
}

func TestEncode_HeaderIsComment(t *testing.T) {
	data, err := Encode(Meta{ID: "x", Title: "T"}, "<p>y</p>")
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "<!--notepad\n") {
		t.Errorf("missing header open: %q", s)
	}
	if !strings.Contains(s, "\n-->\n<p>y</p>") {
		t.Errorf("body not after header close: %q", s)
	}
}

func TestParse_BareBody(t *testing.T) {
	meta, body, err := Parse([]byte("<h1>Imported</h1><p>text</p>"))
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != "" || meta.Title != "Imported" {
		t.Errorf("meta = %+v", meta)
	}
	if body != "<h1>Imported</h1><p>text</p>" {
		t.Errorf("body = %q", body)
	}
}

func TestParse_TitleFallsBackToFirstLine(t *testing.T) {
	meta, _, err := Parse([]byte("<p>plain start</p><p>more</p>"))
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "plain start" {
		t.Errorf("title = %q", meta.Title)
	}
}

func TestParse_UnterminatedHeader(t *testing.T) {
	in := "<!--notepad\nid: z"
	_, body, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if body != in {
		t.Errorf("body = %q", body)
	}
}

func TestParse_BadHeaderYAML(t *testing.T) {
	_, _, err := Parse([]byte("<!--notepad\n: [ not yaml\n-->\n<p>x</p>"))
	if err == nil {
		t.Error("expected parse error")
	}
}
