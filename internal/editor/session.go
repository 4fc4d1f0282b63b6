package editor

import (
	"sync"

	"github.com/D3nams/Notepad/internal/document"
)

// Session owns the editing state of one open document: the current tree, a
// monotonically increasing revision, and the undo/redo stacks. One command
// is in flight at a time per session; every public method serializes on the
// session mutex.
type Session struct {
	mu       sync.Mutex
	doc      document.Document
	revision uint64
	undo     []Command
	redo     []Command
}

// NewSession starts an editing session over doc at revision 1.
func NewSession(doc document.Document) *Session {
	return &Session{doc: doc.Normalize(), revision: 1}
}

// Document returns a frozen copy of the current tree with its revision.
func (s *Session) Document() (document.Document, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), s.revision
}

// Revision returns the current revision.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Apply executes a command. Undo/Redo commands are routed to the history
// stacks; anything else goes through the executor, pushes its inverse on the
// undo stack, and clears the redo stack (linear history, no branching).
// The returned bool reports whether the document changed; a malformed
// command is a signaled no-op.
func (s *Session) Apply(cmd Command) (document.Document, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Kind {
	case CmdUndo:
		return s.popLocked(&s.undo, &s.redo)
	case CmdRedo:
		return s.popLocked(&s.redo, &s.undo)
	}

	next, inverse, applied := Apply(s.doc, cmd)
	if !applied {
		return s.doc.Clone(), s.revision, false
	}
	s.doc = next
	s.revision++
	s.undo = append(s.undo, inverse)
	s.redo = nil
	return s.doc.Clone(), s.revision, true
}

// popLocked pops the top of from, applies it, and pushes its inverse onto
// to. Empty stack is a signaled no-op.
func (s *Session) popLocked(from, to *[]Command) (document.Document, uint64, bool) {
	n := len(*from)
	if n == 0 {
		return s.doc.Clone(), s.revision, false
	}
	cmd := (*from)[n-1]
	*from = (*from)[:n-1]
	next, inverse, applied := Apply(s.doc, cmd)
	if !applied {
		return s.doc.Clone(), s.revision, false
	}
	s.doc = next
	s.revision++
	*to = append(*to, inverse)
	return s.doc.Clone(), s.revision, true
}

// Replace swaps in an externally rewritten tree (annotation pass, suggestion
// application) if expectRevision still matches; otherwise the rewrite is
// stale and discarded. Annotation rewrites are derived state and are not
// recorded on the undo stack.
func (s *Session) Replace(doc document.Document, expectRevision uint64, bump bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision != expectRevision {
		return false
	}
	s.doc = doc.Normalize()
	if bump {
		s.revision++
	}
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}
