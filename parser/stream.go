package parser

import (
	"sort"
	"strings"
)

// InputStream is a cursor over normalized input. It hands out one rune at
// a time, supports stepping back over the last consumed rune and consuming
// runs of runes in one go, and answers line/column queries for the most
// recently consumed rune.
type InputStream struct {
	data   []rune
	cursor int
	// readEOF is set when the last Consume hit the end of input, so that the
	// matching Unconsume does not move the cursor.
	readEOF bool

	// lineStarts holds the offset of the first rune of every line.
	lineStarts []int

	// nulls holds the offsets of NUL characters that were replaced with
	// U+FFFD. nextNull indexes the first one not yet reported.
	nulls    []int
	nextNull int
	errors   []StreamError
}

// StreamError is a parse error found by the stream itself, with the rune
// offset where it occurred.
type StreamError struct {
	Code   string
	Offset int
}

// NewInputStream creates a stream over already newline-normalized input.
// NUL characters are replaced with U+FFFD here, and each replacement is
// reported as a null-character parse error when the cursor first passes it.
func NewInputStream(input []rune) *InputStream {
	s := &InputStream{
		data:       make([]rune, len(input)),
		lineStarts: []int{0},
	}
	for i, r := range input {
		switch r {
		case '\u0000':
			r = '\uFFFD'
			s.nulls = append(s.nulls, i)
		case '\n':
			s.lineStarts = append(s.lineStarts, i+1)
		}
		s.data[i] = r
	}
	return s
}

// Consume returns the next rune and advances the cursor. At the end of the
// input it returns false and leaves the cursor where it is.
func (s *InputStream) Consume() (rune, bool) {
	if s.cursor >= len(s.data) {
		s.readEOF = true
		return 0, false
	}
	r := s.data[s.cursor]
	s.passed(s.cursor)
	s.cursor++
	s.readEOF = false
	return r, true
}

// Unconsume steps back over the most recently consumed rune. Stepping back
// over an end-of-input read only forgets that read.
func (s *InputStream) Unconsume() {
	if s.readEOF {
		s.readEOF = false
		return
	}
	if s.cursor == 0 {
		panic("parser: unconsume before the start of the input stream")
	}
	s.cursor--
}

// Peek returns the next rune without consuming it.
func (s *InputStream) Peek() (rune, bool) {
	if s.cursor >= len(s.data) {
		return 0, false
	}
	return s.data[s.cursor], true
}

// CharsWhile consumes and returns the longest run of runes found in class.
// A positive n bounds the length of the run.
func (s *InputStream) CharsWhile(class string, n int) string {
	return s.run(n, func(r rune) bool {
		return strings.ContainsRune(class, r)
	})
}

// CharsUntil consumes and returns the longest run of runes not found in stop.
func (s *InputStream) CharsUntil(stop string) string {
	return s.run(0, func(r rune) bool {
		return !strings.ContainsRune(stop, r)
	})
}

// run never crosses a replaced NUL that has not been reported yet: that rune
// has to be consumed on its own so its error lands where it occurred.
func (s *InputStream) run(n int, match func(rune) bool) string {
	limit := len(s.data)
	if s.nextNull < len(s.nulls) && s.nulls[s.nextNull] < limit {
		limit = s.nulls[s.nextNull]
	}
	if n > 0 && s.cursor+n < limit {
		limit = s.cursor + n
	}

	start := s.cursor
	for s.cursor < limit && match(s.data[s.cursor]) {
		s.cursor++
	}
	if s.cursor > start {
		s.readEOF = false
	}
	return string(s.data[start:s.cursor])
}

func (s *InputStream) passed(offset int) {
	if s.nextNull < len(s.nulls) && s.nulls[s.nextNull] == offset {
		s.errors = append(s.errors, StreamError{Code: errNullCharacter, Offset: offset})
		s.nextNull++
	}
}

// TakeErrors returns the parse errors found while consuming input since the
// last call.
func (s *InputStream) TakeErrors() []StreamError {
	if len(s.errors) == 0 {
		return nil
	}
	errs := s.errors
	s.errors = nil
	return errs
}

// LastConsumed returns up to n runes ending with the most recently consumed
// one.
func (s *InputStream) LastConsumed(n int) string {
	start := s.cursor - n
	if start < 0 {
		start = 0
	}
	return string(s.data[start:s.cursor])
}

// Line returns the 1-based line of the most recently consumed rune. A line
// feed belongs to the line it starts.
func (s *InputStream) Line() int {
	line, _ := s.PositionAt(s.cursor)
	return line
}

// Column returns the number of runes consumed since the last line feed.
func (s *InputStream) Column() int {
	_, col := s.PositionAt(s.cursor)
	return col
}

// PositionAt returns what Line and Column would report with the cursor at
// offset.
func (s *InputStream) PositionAt(offset int) (line, column int) {
	line = sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	return line, offset - s.lineStarts[line-1]
}

// Pos returns the cursor as a rune offset.
func (s *InputStream) Pos() int { return s.cursor }

// Len returns the length of the input in runes.
func (s *InputStream) Len() int { return len(s.data) }
