package sqlgen

import "strings"

// indentUnit is the whitespace emitted per indentation level.
const indentUnit = "    "

// Writer accumulates SQL text while tracking indentation. Leading whitespace
// is emitted only for the first append on a line; a call to Newline arms the
// next append to indent again. Indent and Dedent are explicit, paired
// operations: the recursive render pass already tracks nesting through the
// call stack, so no structured scoping is needed.
//
// The exact line and indent rules are load-bearing: statement builders are
// expected to produce stable, human-readable multi-line SQL, and tests
// assert on the exact text.
type Writer struct {
	sb        strings.Builder
	indent    int
	startLine bool
	debug     bool
}

// newWriter returns a Writer positioned at the start of the first line.
// When debug is true, parameter fragments echo their value as a trailing
// SQL comment next to the placeholder.
func newWriter(debug bool) *Writer {
	return &Writer{startLine: true, debug: debug}
}

// Debug reports whether parameter values should be echoed as comments.
func (w *Writer) Debug() bool { return w.debug }

// Append writes s, indenting first if this is the first append on the line.
func (w *Writer) Append(s string) *Writer {
	if w.startLine {
		for i := 0; i < w.indent; i++ {
			w.sb.WriteString(indentUnit)
		}
	}
	w.startLine = false
	w.sb.WriteString(s)
	return w
}

// Appendln writes s followed by a newline.
func (w *Writer) Appendln(s string) *Writer {
	w.Append(s)
	return w.Newline()
}

// Newline terminates the current line; the next append indents again.
func (w *Writer) Newline() *Writer {
	w.sb.WriteByte('\n')
	w.startLine = true
	return w
}

// Indent increases the indentation level. Every Indent must be paired with
// a Dedent.
func (w *Writer) Indent() { w.indent++ }

// Dedent decreases the indentation level.
func (w *Writer) Dedent() { w.indent-- }

// String returns the accumulated SQL text.
func (w *Writer) String() string { return w.sb.String() }

// frag renders a fragment in place.
func (w *Writer) frag(f Fragment) *Writer {
	f.AppendTo(w)
	return w
}

// fragln renders a fragment followed by a newline.
func (w *Writer) fragln(f Fragment) *Writer {
	f.AppendTo(w)
	return w.Newline()
}
