// Package section indexes a note body into addressable, heading-delimited
// spans. Indexing is a pure function of the body text: sections are
// contiguous, non-overlapping, and cover the whole body in ordinal order.
package section

import (
	"fmt"
	"iter"
	"strings"

	"github.com/aguiarsc/numen/internal/apperr"
)

// WholeNote is the ordinal that addresses the entire body regardless of how
// many sections it contains.
const WholeNote = 0

// Section is one heading-delimited span of a note body. Ordinals are
// 1-based. Text includes the heading line itself; Heading is empty for a
// leading span that precedes the first heading.
type Section struct {
	Ordinal int
	Heading string
	Start   int
	End     int
	Text    string
}

// Scan returns a lazy, restartable sequence of the sections of body.
// A new section starts at every line whose first character is '#', at any
// heading depth. Text before the first heading, when present, is section 1
// with no heading title. An empty body yields no sections; a body without
// headings yields exactly one.
func Scan(body string) iter.Seq[Section] {
	return func(yield func(Section) bool) {
		if body == "" {
			return
		}
		ordinal := 0
		start := 0
		emit := func(end int) bool {
			text := body[start:end]
			ordinal++
			s := Section{
				Ordinal: ordinal,
				Heading: headingTitle(text),
				Start:   start,
				End:     end,
				Text:    text,
			}
			start = end
			return yield(s)
		}

		offset := 0
		for offset < len(body) {
			lineEnd := strings.IndexByte(body[offset:], '\n')
			next := len(body)
			if lineEnd >= 0 {
				next = offset + lineEnd + 1
			}
			if body[offset] == '#' && offset > start {
				if !emit(offset) {
					return
				}
			}
			offset = next
		}
		emit(len(body))
	}
}

// Split collects the sections of body into a slice.
func Split(body string) []Section {
	var out []Section
	for s := range Scan(body) {
		out = append(out, s)
	}
	return out
}

// Count returns the number of sections in body.
func Count(body string) int {
	n := 0
	for range Scan(body) {
		n++
	}
	return n
}

// Resolve maps an ordinal to the section it addresses. Ordinal 0 (WholeNote)
// always resolves to a span covering the full body, even when the body is
// empty. Any other ordinal outside [1, section count] fails with
// apperr.ErrSectionNotFound.
func Resolve(body string, ordinal int) (Section, error) {
	if ordinal == WholeNote {
		return Section{Ordinal: WholeNote, Start: 0, End: len(body), Text: body}, nil
	}
	if ordinal < 0 {
		return Section{}, fmt.Errorf("section %d: %w", ordinal, apperr.ErrSectionNotFound)
	}
	count := 0
	for s := range Scan(body) {
		count = s.Ordinal
		if s.Ordinal == ordinal {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("section %d of %d: %w", ordinal, count, apperr.ErrSectionNotFound)
}

// headingTitle extracts the title of the first line when it is a heading
// line, with the marker and surrounding space stripped.
func headingTitle(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if !strings.HasPrefix(line, "#") {
		return ""
	}
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}
