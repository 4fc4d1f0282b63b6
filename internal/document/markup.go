package document

import "strings"

// The persisted body representation is a fixed markup subset:
// p, h1, h2, ul/ol/li, blockquote, pre, b/strong, i/em, u.
// Serialize and Parse must round-trip a document through this string without
// loss (annotation spans excluded: they are flattened before serializing).

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// EscapeText escapes markup metacharacters in free text.
func EscapeText(s string) string { return escaper.Replace(s) }

// Serialize renders the document body as the canonical markup string.
// Annotation spans are flattened first; they are never persisted.
func (d Document) Serialize() string {
	flat := d.Flatten()
	var b strings.Builder
	for _, blk := range flat.Blocks {
		writeBlock(&b, blk)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk Block) {
	if blk.Kind.IsList() {
		tag := string(blk.Kind)
		b.WriteString("<" + tag + ">")
		for _, item := range blk.Items {
			b.WriteString("<li>")
			writeInlines(b, item)
			b.WriteString("</li>")
		}
		b.WriteString("</" + tag + ">")
		return
	}
	tag := string(blk.Kind)
	b.WriteString("<" + tag + ">")
	writeInlines(b, blk.Items[0])
	b.WriteString("</" + tag + ">")
}

func writeInlines(b *strings.Builder, item []Inline) {
	for _, in := range item {
		var open, close string
		if in.Format.Has(Bold) {
			open += "<b>"
			close = "</b>" + close
		}
		if in.Format.Has(Italic) {
			open += "<i>"
			close = "</i>" + close
		}
		if in.Format.Has(Underline) {
			open += "<u>"
			close = "</u>" + close
		}
		b.WriteString(open)
		b.WriteString(EscapeText(in.Text))
		b.WriteString(close)
	}
}

// Parse rebuilds a document body from its markup string. Unknown tags are
// skipped; bare text outside any block is wrapped in a paragraph. An empty
// or whitespace-only input yields a single empty paragraph.
func Parse(markup string) []Block {
	p := &markupParser{src: markup}
	p.run()
	if len(p.blocks) == 0 {
		p.blocks = []Block{emptyParagraph()}
	}
	doc := Document{Blocks: p.blocks}.Normalize()
	return doc.Blocks
}

type markupParser struct {
	src    string
	pos    int
	blocks []Block

	cur      *Block // open block, nil between blocks
	inItem   bool   // inside <li>
	format   Format
	listKind BlockKind
}

func (p *markupParser) run() {
	for p.pos < len(p.src) {
		if p.src[p.pos] == '<' {
			if tag, closing, ok := p.readTag(); ok {
				p.handleTag(tag, closing)
				continue
			}
			// Stray '<' that is not a recognisable tag: literal text.
			p.text("<")
			p.pos++
			continue
		}
		next := strings.IndexByte(p.src[p.pos:], '<')
		if next < 0 {
			next = len(p.src) - p.pos
		}
		p.text(unescaper.Replace(p.src[p.pos : p.pos+next]))
		p.pos += next
	}
	p.closeBlock()
}

// readTag consumes "<name>" or "</name>" at pos. Attributes are not part of
// the contract and are discarded.
func (p *markupParser) readTag() (name string, closing bool, ok bool) {
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return "", false, false
	}
	inner := p.src[p.pos+1 : p.pos+end]
	inner = strings.TrimSuffix(inner, "/")
	if strings.HasPrefix(inner, "/") {
		closing = true
		inner = inner[1:]
	}
	name = strings.ToLower(strings.TrimSpace(inner))
	if i := strings.IndexAny(name, " \t\n"); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", false, false
	}
	p.pos += end + 1
	return name, closing, true
}

func (p *markupParser) handleTag(name string, closing bool) {
	switch name {
	case "p", "h1", "h2", "blockquote", "pre":
		if closing {
			p.closeBlock()
			return
		}
		p.closeBlock()
		p.cur = &Block{Kind: BlockKind(name), Items: [][]Inline{{}}}
	case "ul", "ol":
		if closing {
			p.closeBlock()
			p.listKind = ""
			return
		}
		p.closeBlock()
		p.listKind = BlockKind(name)
		p.cur = &Block{Kind: p.listKind}
	case "li":
		if p.cur == nil || !p.cur.Kind.IsList() {
			return
		}
		if closing {
			p.inItem = false
			return
		}
		p.cur.Items = append(p.cur.Items, []Inline{})
		p.inItem = true
	case "b", "strong":
		p.toggleFormat(Bold, closing)
	case "i", "em":
		p.toggleFormat(Italic, closing)
	case "u":
		p.toggleFormat(Underline, closing)
	case "br":
		p.text("\n")
	default:
		// Outside the contract: ignore the tag, keep its text content.
	}
}

func (p *markupParser) toggleFormat(f Format, closing bool) {
	if closing {
		p.format = p.format.Without(f)
	} else {
		p.format = p.format.With(f)
	}
}

func (p *markupParser) text(s string) {
	if s == "" {
		return
	}
	if p.cur == nil {
		// Bare text between blocks: ignore pure whitespace, otherwise open
		// an implicit paragraph.
		if strings.TrimSpace(s) == "" {
			return
		}
		p.cur = &Block{Kind: Paragraph, Items: [][]Inline{{}}}
	}
	if p.cur.Kind.IsList() && !p.inItem {
		if strings.TrimSpace(s) == "" {
			return
		}
		p.cur.Items = append(p.cur.Items, []Inline{})
		p.inItem = true
	}
	n := len(p.cur.Items) - 1
	p.cur.Items[n] = append(p.cur.Items[n], Inline{Text: s, Format: p.format})
}

func (p *markupParser) closeBlock() {
	if p.cur == nil {
		return
	}
	p.blocks = append(p.blocks, *p.cur)
	p.cur = nil
	p.inItem = false
	p.format = 0
}
