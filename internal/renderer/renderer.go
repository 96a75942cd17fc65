// Package renderer turns an annotated tree into styled text, either as the
// fully expanded document with a path on every key (pretty mode) or as the
// bare list of key paths (list mode).
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/jqk/internal/annotator"
	"github.com/mcncl/jqk/internal/formatter"
	"github.com/mcncl/jqk/internal/models"
	"github.com/mcncl/jqk/internal/style"
)

// Mode selects the output layout.
type Mode int

const (
	ModePretty Mode = iota
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeList:
		return "list"
	default:
		return "unknown"
	}
}

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Renderer writes annotated trees.
type Renderer struct {
	mode      Mode
	indent    string
	formatter *formatter.Formatter
}

// NewRenderer creates a Renderer. indent is the number of spaces per level;
// values below 1 fall back to DefaultIndent.
func NewRenderer(mode Mode, indent int) *Renderer {
	if indent < 1 {
		indent = DefaultIndent
	}
	return &Renderer{
		mode:      mode,
		indent:    strings.Repeat(" ", indent),
		formatter: formatter.NewFormatter(),
	}
}

// Mode returns the layout the renderer was created with.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Render writes node in the renderer's mode and flushes w. It stops at the
// first write error and returns it.
func (r *Renderer) Render(w *style.Writer, node annotator.Node) error {
	switch r.mode {
	case ModeList:
		return r.RenderList(w, node)
	default:
		return r.RenderPretty(w, node)
	}
}

// RenderPretty writes the expanded, indented document followed by a newline.
func (r *Renderer) RenderPretty(w *style.Writer, node annotator.Node) error {
	r.pretty(w, node, 0)
	w.Newline()
	return w.Flush()
}

// RenderList writes one key path per line in document order.
func (r *Renderer) RenderList(w *style.Writer, node annotator.Node) error {
	r.list(w, node)
	return w.Flush()
}

// String renders node without color. It is meant for tests and debugging.
func (r *Renderer) String(node annotator.Node) string {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail.
	_ = r.Render(style.NewWriter(&buf, style.Palette{}, false), node)
	return buf.String()
}

func (r *Renderer) pretty(w *style.Writer, node annotator.Node, depth int) {
	if w.Err() != nil {
		return
	}
	switch n := node.(type) {
	case *annotator.Container:
		opening, closing := "[", "]"
		if n.Kind == annotator.ObjectContainer {
			opening, closing = "{", "}"
		}
		w.Styled(style.Brace, opening)
		if len(n.Children) == 0 {
			w.Styled(style.Brace, closing)
			return
		}
		w.Newline()
		for i, child := range n.Children {
			r.writeIndent(w, depth+1)
			r.pretty(w, child, depth+1)
			if i < len(n.Children)-1 {
				w.Styled(style.Punctuation, ",")
			}
			w.Newline()
			if w.Err() != nil {
				return
			}
		}
		r.writeIndent(w, depth)
		w.Styled(style.Brace, closing)
	case *annotator.KeyedEntry:
		w.Styled(style.Key, n.Path)
		w.Styled(style.Punctuation, ":")
		w.Plain(" ")
		r.pretty(w, n.Value, depth)
	case *annotator.TypedScalar:
		w.Segment(r.scalar(n))
	default:
		panic(fmt.Sprintf("renderer: unhandled node %T", node))
	}
}

func (r *Renderer) list(w *style.Writer, node annotator.Node) {
	if w.Err() != nil {
		return
	}
	switch n := node.(type) {
	case *annotator.Container:
		for _, child := range n.Children {
			r.list(w, child)
		}
	case *annotator.KeyedEntry:
		w.Styled(style.Key, n.Path)
		w.Newline()
		r.list(w, n.Value)
	case *annotator.TypedScalar:
		// Scalars have no key of their own.
	default:
		panic(fmt.Sprintf("renderer: unhandled node %T", node))
	}
}

func (r *Renderer) scalar(n *annotator.TypedScalar) style.Segment {
	text, err := r.formatter.Literal(n.Value)
	if err != nil {
		panic(fmt.Sprintf("renderer: %v", err))
	}
	return style.Segment{Text: text, Style: scalarStyle(n)}
}

func scalarStyle(n *annotator.TypedScalar) style.Style {
	switch n.Kind {
	case models.KindString:
		return style.String
	case models.KindNumber:
		return style.Number
	case models.KindBool:
		if b, ok := n.Value.(models.Bool); ok && bool(b) {
			return style.True
		}
		return style.False
	case models.KindNull:
		return style.Null
	default:
		return style.Plain
	}
}

func (r *Renderer) writeIndent(w *style.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.Plain(r.indent)
	}
}
