package geojson

import (
	"encoding/json"
	"io"
)

// ArrayWriter streams a single top-level JSON array, one element per call
// to WriteElement, comma-and-newline separated per spec.md §6.
type ArrayWriter struct {
	w     io.Writer
	wrote bool
}

// NewArrayWriter wraps w.
func NewArrayWriter(w io.Writer) *ArrayWriter {
	return &ArrayWriter{w: w}
}

// Open writes the opening bracket. Call once before any WriteElement.
func (a *ArrayWriter) Open() error {
	_, err := io.WriteString(a.w, "[")
	return err
}

// WriteElement appends one already-marshaled JSON value.
func (a *ArrayWriter) WriteElement(raw json.RawMessage) error {
	if a.wrote {
		if _, err := io.WriteString(a.w, ",\n"); err != nil {
			return err
		}
	}
	a.wrote = true
	_, err := a.w.Write(raw)
	return err
}

// Close writes the closing bracket.
func (a *ArrayWriter) Close() error {
	_, err := io.WriteString(a.w, "]\n")
	return err
}
