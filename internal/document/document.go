// Package document defines the structured rich-text tree: block nodes
// containing inline runs and transient annotation spans. All operations are
// value-based; mutating helpers return new slices so callers can hold frozen
// snapshots.
package document

import "strings"

// Format is a set of inline text formats.
type Format uint8

const (
	Bold Format = 1 << iota
	Italic
	Underline
)

// Has reports whether f contains g.
func (f Format) Has(g Format) bool { return f&g != 0 }

// With returns f with g added. Adding twice is a no-op.
func (f Format) With(g Format) Format { return f | g }

// Without returns f with g removed.
func (f Format) Without(g Format) Format { return f &^ g }

// Toggle returns f with membership of g flipped.
func (f Format) Toggle(g Format) Format { return f ^ g }

// BlockKind tags the structural variant of a Block.
type BlockKind string

const (
	Paragraph    BlockKind = "p"
	Heading1     BlockKind = "h1"
	Heading2     BlockKind = "h2"
	BulletList   BlockKind = "ul"
	NumberedList BlockKind = "ol"
	Quote        BlockKind = "blockquote"
	Code         BlockKind = "pre"
)

// IsList reports whether k is a list kind.
func (k BlockKind) IsList() bool { return k == BulletList || k == NumberedList }

// Inline is a run of text inside a block. When Misspelled is set the run is
// an annotation span; Word carries the lower-cased matched word for later
// suggestion lookup. Spans are derived state and are never persisted.
type Inline struct {
	Text       string `json:"text"`
	Format     Format `json:"format,omitempty"`
	Misspelled bool   `json:"misspelled,omitempty"`
	Word       string `json:"word,omitempty"`
}

// Block is a structural unit of the document. Items holds one inline sequence
// per list entry; non-list kinds always hold exactly one item.
type Block struct {
	Kind  BlockKind  `json:"kind"`
	Items [][]Inline `json:"items"`
}

// Document is an ordered sequence of blocks with a title. A well-formed
// document always contains at least one block.
type Document struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// New returns an empty document: a single empty paragraph.
func New(id, title string) Document {
	return Document{ID: id, Title: title, Blocks: []Block{emptyParagraph()}}
}

func emptyParagraph() Block {
	return Block{Kind: Paragraph, Items: [][]Inline{{}}}
}

// ItemText concatenates the text of one inline sequence.
func ItemText(item []Inline) string {
	var b strings.Builder
	for _, in := range item {
		b.WriteString(in.Text)
	}
	return b.String()
}

// Text returns the plain text of the block: item texts joined with newlines.
func (b Block) Text() string {
	parts := make([]string, len(b.Items))
	for i, item := range b.Items {
		parts[i] = ItemText(item)
	}
	return strings.Join(parts, "\n")
}

// FormatAt returns the format of the run covering the block-text offset
// off, or zero when off falls on an item separator or outside the block.
func (b Block) FormatAt(off int) Format {
	pos := 0
	for ii, item := range b.Items {
		if ii > 0 {
			pos++
		}
		for _, in := range item {
			if off >= pos && off < pos+len(in.Text) {
				return in.Format
			}
			pos += len(in.Text)
		}
	}
	return 0
}

// PlainText returns block texts joined with newlines. This is the single
// definition of "stripped plain text" shared by every exporter.
func (d Document) PlainText() string {
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}

// WordCount splits the plain text on whitespace and counts non-empty tokens.
func (d Document) WordCount() int {
	return len(strings.Fields(d.PlainText()))
}

// CharCount returns the length of the plain text.
func (d Document) CharCount() int {
	return len(d.PlainText())
}

// Clone returns a deep copy. Exporters and annotation passes operate on
// clones so a live document is never observed half-rewritten.
func (d Document) Clone() Document {
	out := Document{ID: d.ID, Title: d.Title, Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	items := make([][]Inline, len(b.Items))
	for i, item := range b.Items {
		items[i] = append([]Inline(nil), item...)
	}
	return Block{Kind: b.Kind, Items: items}
}

// Normalize coalesces adjacent inlines with identical attributes, drops
// empty runs, re-splits list items at embedded newlines, and guarantees the
// at-least-one-block invariant. Text content is preserved exactly.
func (d Document) Normalize() Document {
	out := d
	out.Blocks = make([]Block, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		out.Blocks = append(out.Blocks, b.normalize())
	}
	if len(out.Blocks) == 0 {
		out.Blocks = []Block{emptyParagraph()}
	}
	return out
}

func (b Block) normalize() Block {
	items := make([][]Inline, 0, len(b.Items))
	for _, item := range b.Items {
		if b.Kind.IsList() {
			items = append(items, splitItemAtNewlines(item)...)
		} else {
			items = append(items, coalesce(item))
		}
	}
	if len(items) == 0 {
		items = [][]Inline{{}}
	}
	return Block{Kind: b.Kind, Items: items}
}

// coalesce merges neighbouring runs that share format and annotation state
// and removes zero-length runs.
func coalesce(item []Inline) []Inline {
	out := make([]Inline, 0, len(item))
	for _, in := range item {
		if in.Text == "" {
			continue
		}
		if n := len(out); n > 0 && sameAttrs(out[n-1], in) {
			out[n-1].Text += in.Text
			continue
		}
		out = append(out, in)
	}
	return out
}

func sameAttrs(a, b Inline) bool {
	return a.Format == b.Format && a.Misspelled == b.Misspelled && a.Word == b.Word
}

// splitItemAtNewlines breaks one inline sequence into list items at newline
// characters. The newlines themselves become item boundaries.
func splitItemAtNewlines(item []Inline) [][]Inline {
	var out [][]Inline
	cur := []Inline{}
	for _, in := range item {
		rest := in.Text
		for {
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				break
			}
			if i > 0 {
				cur = append(cur, Inline{Text: rest[:i], Format: in.Format, Misspelled: in.Misspelled, Word: in.Word})
			}
			out = append(out, coalesce(cur))
			cur = []Inline{}
			rest = rest[i+1:]
		}
		if rest != "" {
			cur = append(cur, Inline{Text: rest, Format: in.Format, Misspelled: in.Misspelled, Word: in.Word})
		}
	}
	out = append(out, coalesce(cur))
	return out
}

// Flatten strips every annotation span back into a plain text run,
// preserving format attributes, and coalesces the result. Running an
// annotation pass always starts from flattened runs so stale spans never
// accumulate.
func (d Document) Flatten() Document {
	out := d.Clone()
	for bi := range out.Blocks {
		for ii, item := range out.Blocks[bi].Items {
			flat := make([]Inline, 0, len(item))
			for _, in := range item {
				in.Misspelled = false
				in.Word = ""
				flat = append(flat, in)
			}
			out.Blocks[bi].Items[ii] = coalesce(flat)
		}
	}
	return out
}

// MisspelledWords returns the distinct lower-cased words currently carried
// by annotation spans, in first-occurrence order.
func (d Document) MisspelledWords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range d.Blocks {
		for _, item := range b.Items {
			for _, in := range item {
				if !in.Misspelled {
					continue
				}
				if _, ok := seen[in.Word]; ok {
					continue
				}
				seen[in.Word] = struct{}{}
				out = append(out, in.Word)
			}
		}
	}
	return out
}
