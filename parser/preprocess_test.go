package parser

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "<p>hi</p>", "<p>hi</p>"},
		{"CRLF", "a\r\nb", "a\nb"},
		{"lone CR", "a\rb\r", "a\nb\n"},
		{"CR CR LF", "a\r\r\nb", "a\n\nb"},
		{"UTF-8 BOM", "\xEF\xBB\xBFx", "x"},
		{"UTF-16LE BOM", "\xFF\xFEa\x00\r\x00\n\x00", "a\n"},
		{"UTF-16BE BOM", "\xFE\xFF\x00a\x00b", "ab"},
		{"NUL is kept", "a\x00b", "a\x00b"},
		{"multibyte", "é\r\n€", "é\n€"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Preprocess(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			got, err = Preprocess(iotest.OneByteReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got), "one byte at a time")
		})
	}
}

func TestPreprocessReadError(t *testing.T) {
	_, err := Preprocess(iotest.ErrReader(errors.New("boom")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preprocessing input")
	assert.Contains(t, err.Error(), "boom")
}
