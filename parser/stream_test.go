package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStreamConsume(t *testing.T) {
	s := NewInputStream([]rune("ab"))

	r, ok := s.Consume()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	s.Unconsume()
	r, ok = s.Consume()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	r, _ = s.Consume()
	assert.Equal(t, 'b', r)

	_, ok = s.Consume()
	assert.False(t, ok)
	_, ok = s.Consume()
	assert.False(t, ok)
	assert.Equal(t, 2, s.Pos())

	// stepping back over an end-of-input read leaves the cursor alone.
	s.Unconsume()
	assert.Equal(t, 2, s.Pos())
	s.Unconsume()
	assert.Equal(t, 1, s.Pos())
}

func TestInputStreamUnconsumeUnderflow(t *testing.T) {
	s := NewInputStream([]rune("a"))
	assert.Panics(t, s.Unconsume)

	s.Consume()
	s.Unconsume()
	assert.Panics(t, s.Unconsume)
}

func TestInputStreamRuns(t *testing.T) {
	s := NewInputStream([]rune("abc123;def"))

	assert.Equal(t, "ab", s.CharsWhile(asciiAlpha, 2))
	assert.Equal(t, "c", s.CharsWhile(asciiAlpha, 0))
	assert.Equal(t, "", s.CharsWhile(asciiAlpha, 0))
	assert.Equal(t, "123", s.CharsUntil(";"))
	assert.Equal(t, "", s.CharsUntil(";"))

	r, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, ';', r)
	assert.Equal(t, 6, s.Pos())

	s.Consume()
	assert.Equal(t, "def", s.CharsUntil("<"))
	assert.Equal(t, "", s.CharsUntil("<"))
	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, s.Len(), s.Pos())
	assert.Equal(t, "3;def", s.LastConsumed(5))
	assert.Equal(t, "abc123;def", s.LastConsumed(50))
}

func TestInputStreamNulls(t *testing.T) {
	s := NewInputStream([]rune("a\x00b\x00"))

	// runs stop short of a NUL that has not been reported.
	assert.Equal(t, "a", s.CharsUntil("<"))
	assert.Nil(t, s.TakeErrors())

	r, _ := s.Consume()
	assert.Equal(t, '\uFFFD', r)
	assert.Equal(t, []StreamError{{Code: errNullCharacter, Offset: 1}}, s.TakeErrors())
	assert.Nil(t, s.TakeErrors())

	s.Unconsume()
	r, _ = s.Consume()
	assert.Equal(t, '\uFFFD', r)
	assert.Nil(t, s.TakeErrors(), "a NUL is reported once")

	s.Unconsume()
	assert.Equal(t, "\uFFFDb", s.CharsUntil("<"))
	r, _ = s.Consume()
	assert.Equal(t, '\uFFFD', r)
	assert.Equal(t, []StreamError{{Code: errNullCharacter, Offset: 3}}, s.TakeErrors())
}

func TestInputStreamPosition(t *testing.T) {
	s := NewInputStream([]rune("ab\ncd\n\ne"))

	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 0, s.Column())

	s.CharsUntil("\n")
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 2, s.Column())

	s.Consume()
	assert.Equal(t, 2, s.Line())
	assert.Equal(t, 0, s.Column())

	s.CharsWhile("cd\n", 0)
	assert.Equal(t, 4, s.Line())
	assert.Equal(t, 0, s.Column())

	s.Consume()
	assert.Equal(t, 4, s.Line())
	assert.Equal(t, 1, s.Column())

	s.Unconsume()
	s.Unconsume()
	assert.Equal(t, 3, s.Line())
	assert.Equal(t, 0, s.Column())
}

func TestInputStreamPositionAt(t *testing.T) {
	s := NewInputStream([]rune("ab\ncd\n\ne"))
	tests := []struct {
		offset, line, column int
	}{
		{0, 1, 0},
		{2, 1, 2},
		{3, 2, 0},
		{5, 2, 2},
		{6, 3, 0},
		{7, 4, 0},
		{8, 4, 1},
	}
	for _, tt := range tests {
		line, column := s.PositionAt(tt.offset)
		assert.Equal(t, tt.line, line, "line at %d", tt.offset)
		assert.Equal(t, tt.column, column, "column at %d", tt.offset)
	}
	// the cursor does not move.
	assert.Equal(t, 0, s.Pos())
}
