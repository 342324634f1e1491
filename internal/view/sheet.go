package view

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Sheet is an in-memory Target holding one text per slot. It accepts only
// the ids of its namespace, like a page that exposes exactly those elements.
type Sheet struct {
	ns    Namespace
	texts map[string]string
}

// NewSheet returns an empty sheet for ns.
func NewSheet(ns Namespace) *Sheet {
	texts := make(map[string]string, len(Slots))
	for _, s := range Slots {
		texts[s.ID(ns)] = ""
	}
	return &Sheet{ns: ns, texts: texts}
}

func (s *Sheet) SetText(id, text string) error {
	if _, ok := s.texts[id]; !ok {
		return fmt.Errorf("element %q not found", id)
	}
	s.texts[id] = text
	return nil
}

// Text returns the current text of the slot.
func (s *Sheet) Text(slot Slot) string {
	return s.texts[slot.ID(s.ns)]
}

// WriteTo prints the sheet as an aligned id/text table.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 0, 2, ' ', 0)
	for _, slot := range Slots {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", slot.ID(s.ns), s.Text(slot)); err != nil {
			return cw.n, err
		}
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
