package parser

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Preprocess reads a document and prepares it for tokenization: a leading
// byte order mark is stripped (UTF-16 input with a BOM is decoded to UTF-8),
// and CRLF pairs and lone CRs become LF. NUL replacement is left to
// NewInputStream, which reports it as it goes.
func Preprocess(r io.Reader) ([]rune, error) {
	t := transform.Chain(unicode.BOMOverride(transform.Nop), newlineNormalizer{})
	b, err := io.ReadAll(transform.NewReader(r, t))
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing input")
	}
	return []rune(string(b)), nil
}

// newlineNormalizer collapses CRLF and lone CR into LF.
type newlineNormalizer struct{ transform.NopResetter }

func (newlineNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		c := src[nSrc]
		if c != '\r' {
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		// a CR at the end of this chunk may be the first half of a CRLF.
		if nSrc+1 == len(src) && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		dst[nDst] = '\n'
		nDst++
		nSrc++
		if nSrc < len(src) && src[nSrc] == '\n' {
			nSrc++
		}
	}
	return nDst, nSrc, nil
}
