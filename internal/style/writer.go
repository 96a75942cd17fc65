package style

import (
	"bufio"
	"io"
)

// Writer resolves styled segments to bytes on an underlying writer. Output
// is buffered; call Flush when done.
//
// Errors are sticky: after the first failed write every further call is a
// no-op and Err reports the failure.
type Writer struct {
	w       *bufio.Writer
	palette Palette
	color   bool
	err     error
}

// NewWriter creates a Writer. When color is false the palette is ignored and
// text is written plain.
func NewWriter(w io.Writer, palette Palette, color bool) *Writer {
	return &Writer{
		w:       bufio.NewWriter(w),
		palette: palette,
		color:   color,
	}
}

// Color reports whether escape sequences are emitted.
func (w *Writer) Color() bool {
	return w.color
}

// Segment writes one styled segment.
func (w *Writer) Segment(seg Segment) {
	w.Styled(seg.Style, seg.Text)
}

// Styled writes text in style s.
func (w *Writer) Styled(s Style, text string) {
	if w.err != nil || text == "" {
		return
	}
	code := ""
	if w.color {
		code = w.palette.Code(s)
	}
	if code == "" {
		w.write(text)
		return
	}
	w.write(code)
	w.write(text)
	w.write(Reset)
}

// Plain writes unstyled text.
func (w *Writer) Plain(text string) {
	if w.err != nil {
		return
	}
	w.write(text)
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.Plain("\n")
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes any buffered data and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}
