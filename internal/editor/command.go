// Package editor applies user formatting and editing commands to a document,
// producing a new document state plus an inverse command for undo. Malformed
// commands are recovered as no-ops, never as failures.
package editor

import (
	"strings"

	"github.com/D3nams/Notepad/internal/document"
)

// CommandKind tags the command variant.
type CommandKind string

const (
	CmdToggleFormat CommandKind = "toggle_format"
	CmdSetBlockKind CommandKind = "set_block_kind"
	CmdInsertText   CommandKind = "insert_text"
	CmdDeleteRange  CommandKind = "delete_range"
	CmdUndo         CommandKind = "undo"
	CmdRedo         CommandKind = "redo"

	// cmdRestore is the internal inverse variant: it reinstates a snapshot
	// of the block span a command touched.
	cmdRestore CommandKind = "restore"
)

// Selection addresses a text range: byte offsets into each block's text
// (list items joined by newlines). A caret is a selection with equal ends.
type Selection struct {
	StartBlock  int `json:"start_block"`
	StartOffset int `json:"start_offset"`
	EndBlock    int `json:"end_block"`
	EndOffset   int `json:"end_offset"`
}

// IsCaret reports whether the selection is a single insertion point.
func (s Selection) IsCaret() bool {
	return s.StartBlock == s.EndBlock && s.StartOffset == s.EndOffset
}

// Command is the tagged command variant. Fields are interpreted per Kind:
// ToggleFormat uses Format+Selection, SetBlockKind uses BlockKind+Selection,
// InsertText uses Selection start as the caret plus Text (Format, when
// set, seeds an insertion into an item that has no runs left), DeleteRange
// uses Selection.
type Command struct {
	Kind      CommandKind        `json:"kind"`
	Format    document.Format    `json:"format,omitempty"`
	BlockKind document.BlockKind `json:"block_kind,omitempty"`
	Text      string             `json:"text,omitempty"`
	Selection Selection          `json:"selection"`

	// restore payload (internal inverses only).
	restoreAt     int
	restoreCount  int
	restoreBlocks []document.Block
}

// Apply executes cmd against doc. It returns the resulting document, the
// inverse command, and whether the command changed anything. Undo/Redo are
// not handled here; they belong to the Session history.
func Apply(doc document.Document, cmd Command) (document.Document, Command, bool) {
	switch cmd.Kind {
	case CmdToggleFormat:
		return applySpanned(doc, cmd.Selection, func(d *document.Document, sel Selection) bool {
			return toggleFormat(d, sel, cmd.Format)
		})
	case CmdSetBlockKind:
		return applySpanned(doc, cmd.Selection, func(d *document.Document, sel Selection) bool {
			return setBlockKind(d, sel, cmd.BlockKind)
		})
	case CmdInsertText:
		if cmd.Text == "" {
			return doc, Command{}, false
		}
		return applySpanned(doc, caretOnly(cmd.Selection), func(d *document.Document, sel Selection) bool {
			return insertText(d, sel.StartBlock, sel.StartOffset, cmd.Text, cmd.Format)
		})
	case CmdDeleteRange:
		if cmd.Selection.IsCaret() {
			return doc, Command{}, false
		}
		return applySpanned(doc, cmd.Selection, func(d *document.Document, sel Selection) bool {
			return deleteRange(d, sel)
		})
	case cmdRestore:
		return applyRestore(doc, cmd)
	default:
		return doc, Command{}, false
	}
}

func caretOnly(sel Selection) Selection {
	sel.EndBlock = sel.StartBlock
	sel.EndOffset = sel.StartOffset
	return sel
}

// applySpanned clones doc, runs fn over the selected span, and builds the
// inverse as a snapshot restore of the touched block range. Any invalid
// selection makes the command a no-op.
func applySpanned(doc document.Document, sel Selection, fn func(*document.Document, Selection) bool) (document.Document, Command, bool) {
	sel, ok := clampSelection(doc, sel)
	if !ok {
		return doc, Command{}, false
	}
	// Annotation spans are derived state and never belong to undo history;
	// snapshots are taken span-free.
	prev := make([]document.Block, sel.EndBlock-sel.StartBlock+1)
	for i := range prev {
		prev[i] = stripSpans(doc.Blocks[sel.StartBlock+i])
	}
	next := doc.Clone()
	if !fn(&next, sel) {
		return doc, Command{}, false
	}
	next = next.Normalize()
	// The edited span may shrink (cross-block delete merges blocks); blocks
	// outside the span are untouched, so the new width follows from the
	// overall length change.
	span := sel.EndBlock - sel.StartBlock + 1
	span += len(next.Blocks) - len(doc.Blocks)
	inverse := Command{
		Kind:          cmdRestore,
		restoreAt:     sel.StartBlock,
		restoreCount:  span,
		restoreBlocks: prev,
	}
	return next, inverse, true
}

func applyRestore(doc document.Document, cmd Command) (document.Document, Command, bool) {
	if cmd.restoreAt < 0 || cmd.restoreAt+cmd.restoreCount > len(doc.Blocks) {
		return doc, Command{}, false
	}
	prev := make([]document.Block, cmd.restoreCount)
	for i := range prev {
		prev[i] = doc.Blocks[cmd.restoreAt+i].Clone()
	}
	next := doc.Clone()
	restored := make([]document.Block, len(cmd.restoreBlocks))
	for i, b := range cmd.restoreBlocks {
		restored[i] = b.Clone()
	}
	next.Blocks = append(next.Blocks[:cmd.restoreAt],
		append(restored, next.Blocks[cmd.restoreAt+cmd.restoreCount:]...)...)
	inverse := Command{
		Kind:          cmdRestore,
		restoreAt:     cmd.restoreAt,
		restoreCount:  len(cmd.restoreBlocks),
		restoreBlocks: prev,
	}
	return next, inverse, true
}

// clampSelection orders and bounds-checks the selection against doc.
func clampSelection(doc document.Document, sel Selection) (Selection, bool) {
	if len(doc.Blocks) == 0 {
		return sel, false
	}
	if sel.StartBlock > sel.EndBlock ||
		(sel.StartBlock == sel.EndBlock && sel.StartOffset > sel.EndOffset) {
		sel.StartBlock, sel.EndBlock = sel.EndBlock, sel.StartBlock
		sel.StartOffset, sel.EndOffset = sel.EndOffset, sel.StartOffset
	}
	if sel.StartBlock < 0 || sel.EndBlock >= len(doc.Blocks) {
		return sel, false
	}
	if sel.StartOffset < 0 || sel.EndOffset < 0 {
		return sel, false
	}
	if sel.StartOffset > len(doc.Blocks[sel.StartBlock].Text()) {
		return sel, false
	}
	if sel.EndOffset > len(doc.Blocks[sel.EndBlock].Text()) {
		return sel, false
	}
	return sel, true
}

// blockRange returns the selected offset range within block bi, in block
// text coordinates, or ok=false when the block is outside the selection.
func blockRange(doc document.Document, sel Selection, bi int) (start, end int, ok bool) {
	if bi < sel.StartBlock || bi > sel.EndBlock {
		return 0, 0, false
	}
	start, end = 0, len(doc.Blocks[bi].Text())
	if bi == sel.StartBlock {
		start = sel.StartOffset
	}
	if bi == sel.EndBlock {
		end = sel.EndOffset
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

func toggleFormat(d *document.Document, sel Selection, f document.Format) bool {
	if sel.IsCaret() || f == 0 {
		return false
	}
	changed := false
	for bi := sel.StartBlock; bi <= sel.EndBlock; bi++ {
		start, end, ok := blockRange(*d, sel, bi)
		if !ok || start == end {
			continue
		}
		d.Blocks[bi] = mapBlockRange(d.Blocks[bi], start, end, func(in document.Inline) document.Inline {
			in.Format = in.Format.Toggle(f)
			return in
		})
		changed = true
	}
	return changed
}

func setBlockKind(d *document.Document, sel Selection, kind document.BlockKind) bool {
	switch kind {
	case document.Paragraph, document.Heading1, document.Heading2,
		document.BulletList, document.NumberedList, document.Quote, document.Code:
	default:
		return false
	}
	changed := false
	for bi := sel.StartBlock; bi <= sel.EndBlock; bi++ {
		b := d.Blocks[bi]
		if b.Kind == kind {
			continue
		}
		d.Blocks[bi] = reflowKind(b, kind)
		changed = true
	}
	return changed
}

// reflowKind retags a block, re-flowing list item boundaries: converting to
// a non-list kind joins items with newlines into a single run sequence;
// converting to a list kind keeps items (Normalize re-splits at newlines).
func reflowKind(b document.Block, kind document.BlockKind) document.Block {
	out := b.Clone()
	out.Kind = kind
	if kind.IsList() || !b.Kind.IsList() {
		return out
	}
	var joined []document.Inline
	for i, item := range out.Items {
		if i > 0 {
			joined = append(joined, document.Inline{Text: "\n"})
		}
		joined = append(joined, item...)
	}
	out.Items = [][]document.Inline{joined}
	return out
}

// insertText inserts text at a caret. The new run inherits the format of
// the run it lands in; seed applies only when the item holds no run at all
// (right after its sole run was deleted), so a delete-then-insert
// replacement keeps the deleted span's format.
func insertText(d *document.Document, bi, off int, text string, seed document.Format) bool {
	b := d.Blocks[bi]
	item, local, ok := locate(b, off)
	if !ok {
		return false
	}
	runs := b.Items[item]
	ri, runOff := splitPoint(runs, local)
	ins := document.Inline{Text: text}
	if ri < len(runs) {
		// Splitting inside (or at the edge of) an existing run: the run is
		// unwrapped first, and the inserted text inherits its format.
		target := unwrap(runs[ri])
		ins.Format = target.Format
		left := target
		right := target
		left.Text = target.Text[:runOff]
		right.Text = target.Text[runOff:]
		newRuns := make([]document.Inline, 0, len(runs)+2)
		newRuns = append(newRuns, runs[:ri]...)
		newRuns = append(newRuns, left, ins, right)
		newRuns = append(newRuns, runs[ri+1:]...)
		d.Blocks[bi].Items[item] = newRuns
	} else {
		ins.Format = seed
		d.Blocks[bi].Items[item] = append(append([]document.Inline{}, runs...), ins)
	}
	return true
}

func deleteRange(d *document.Document, sel Selection) bool {
	if sel.StartBlock == sel.EndBlock {
		return deleteWithinBlock(d, sel.StartBlock, sel.StartOffset, sel.EndOffset)
	}
	// Trim the boundary blocks, drop the fully covered middle ones, then
	// merge the remainder of the end block into the start block.
	start := d.Blocks[sel.StartBlock]
	end := d.Blocks[sel.EndBlock]
	head := keepBlockRange(start, 0, sel.StartOffset)
	tail := keepBlockRange(end, sel.EndOffset, len(end.Text()))
	merged := head.Clone()
	for i, item := range tail.Items {
		if i == 0 && len(merged.Items) > 0 {
			last := len(merged.Items) - 1
			merged.Items[last] = append(merged.Items[last], item...)
		} else {
			merged.Items = append(merged.Items, item)
		}
	}
	blocks := append([]document.Block{}, d.Blocks[:sel.StartBlock]...)
	blocks = append(blocks, merged)
	blocks = append(blocks, d.Blocks[sel.EndBlock+1:]...)
	d.Blocks = blocks
	return true
}

func deleteWithinBlock(d *document.Document, bi, start, end int) bool {
	if start == end {
		return false
	}
	b := d.Blocks[bi]
	text := b.Text()
	kept := keepBlockRange(b, 0, start)
	rest := keepBlockRange(b, end, len(text))
	merged := kept.Clone()
	for i, item := range rest.Items {
		if i == 0 && len(merged.Items) > 0 {
			last := len(merged.Items) - 1
			merged.Items[last] = append(merged.Items[last], item...)
		} else {
			merged.Items = append(merged.Items, item)
		}
	}
	d.Blocks[bi] = merged
	return true
}

// keepBlockRange returns a copy of b containing only the text in [start,end)
// of block-text coordinates. Item separators inside the range start new
// items; separators outside are dropped with their surroundings. Runs cut at
// a boundary are unwrapped from any annotation span so stale markers never
// survive an edit at their site.
func keepBlockRange(b document.Block, start, end int) document.Block {
	out := document.Block{Kind: b.Kind, Items: [][]document.Inline{{}}}
	pos := 0
	for ii, item := range b.Items {
		if ii > 0 {
			if pos >= start && pos < end {
				out.Items = append(out.Items, []document.Inline{})
			}
			pos++
		}
		for _, in := range item {
			runStart := pos
			runEnd := pos + len(in.Text)
			pos = runEnd
			lo := max(runStart, start)
			hi := min(runEnd, end)
			if lo >= hi {
				continue
			}
			kept := in
			if lo > runStart || hi < runEnd {
				kept = unwrap(kept)
			}
			kept.Text = in.Text[lo-runStart : hi-runStart]
			n := len(out.Items) - 1
			out.Items[n] = append(out.Items[n], kept)
		}
	}
	return out
}

// mapBlockRange applies fn to every run (or run fragment) of b that overlaps
// [start,end) in block-text coordinates, splitting runs at the boundaries.
// Total text is preserved exactly.
func mapBlockRange(b document.Block, start, end int, fn func(document.Inline) document.Inline) document.Block {
	out := document.Block{Kind: b.Kind}
	pos := 0
	for ii, item := range b.Items {
		if ii > 0 {
			pos++
		}
		var runs []document.Inline
		for _, in := range item {
			runStart := pos
			runEnd := pos + len(in.Text)
			pos = runEnd
			lo := max(runStart, start)
			hi := min(runEnd, end)
			if lo >= hi {
				runs = append(runs, in)
				continue
			}
			if lo > runStart {
				left := in
				left.Text = in.Text[:lo-runStart]
				runs = append(runs, left)
			}
			mid := in
			mid.Text = in.Text[lo-runStart : hi-runStart]
			runs = append(runs, fn(mid))
			if hi < runEnd {
				right := in
				right.Text = in.Text[hi-runStart:]
				runs = append(runs, right)
			}
		}
		out.Items = append(out.Items, runs)
	}
	return out
}

// locate maps a block-text offset to (item index, offset within item).
func locate(b document.Block, off int) (item, local int, ok bool) {
	pos := 0
	for ii, it := range b.Items {
		if ii > 0 {
			pos++
		}
		l := len(document.ItemText(it))
		if off >= pos && off <= pos+l {
			return ii, off - pos, true
		}
		pos += l
	}
	return 0, 0, false
}

// splitPoint finds the run index and in-run offset for a local item offset.
// When the offset falls at a run boundary the following run is chosen.
func splitPoint(runs []document.Inline, local int) (int, int) {
	pos := 0
	for i, in := range runs {
		if local <= pos+len(in.Text) {
			if local == pos+len(in.Text) && i+1 < len(runs) {
				return i + 1, 0
			}
			return i, local - pos
		}
		pos += len(in.Text)
	}
	return len(runs), 0
}

// unwrap strips annotation state from a run: edits always invalidate the
// span they land in before the text changes.
func unwrap(in document.Inline) document.Inline {
	in.Misspelled = false
	in.Word = ""
	return in
}

// stripSpans returns a span-free clone of a block.
func stripSpans(b document.Block) document.Block {
	out := b.Clone()
	for ii, item := range out.Items {
		for ri := range item {
			out.Items[ii][ri] = unwrap(out.Items[ii][ri])
		}
	}
	return out
}

// String returns a short human-readable tag for logging.
func (c Command) String() string {
	parts := []string{string(c.Kind)}
	if c.Kind == CmdToggleFormat {
		parts = append(parts, formatName(c.Format))
	}
	if c.Kind == CmdSetBlockKind {
		parts = append(parts, string(c.BlockKind))
	}
	return strings.Join(parts, ":")
}

func formatName(f document.Format) string {
	switch f {
	case document.Bold:
		return "bold"
	case document.Italic:
		return "italic"
	case document.Underline:
		return "underline"
	}
	return "none"
}
