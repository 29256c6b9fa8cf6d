package parser

import "strings"

// consumeCharacterReference decodes the character reference that follows an
// '&' the caller has already consumed. It returns the text to append in place
// of the reference and whether a reference was decoded. When none was, the
// text is the ampersand plus whatever was consumed, to be used literally.
func (p *HTMLTokenizer) consumeCharacterReference(allowed rune, hasAllowed, inAttribute bool) (string, bool) {
	r, ok := p.stream.Peek()
	if !ok {
		return "&", false
	}
	switch r {
	case '\t', '\n', '\f', ' ', '<', '&':
		return "&", false
	case '#':
		return p.consumeNumericCharacterReference()
	}
	if hasAllowed && r == allowed {
		return "&", false
	}
	return p.consumeNamedCharacterReference(inAttribute)
}

func (p *HTMLTokenizer) consumeNumericCharacterReference() (string, bool) {
	p.stream.Consume()

	class, base, hex := asciiDigits, 10, false
	if r, ok := p.stream.Peek(); ok && (r == 'x' || r == 'X') {
		p.stream.Consume()
		class, base, hex = hexDigits, 16, true
	}

	digits := p.stream.CharsWhile(class, 0)
	if digits == "" {
		p.parseError(errExpectedNumericEntity)
		if hex {
			p.stream.Unconsume()
		}
		p.stream.Unconsume()
		return "&", false
	}

	if r, ok := p.stream.Peek(); ok && r == ';' {
		p.stream.Consume()
	} else {
		p.parseError(errNumericEntityWithoutSemicolon)
	}

	codepoint := parseCodepoint(digits, base)
	if replacement, ok := windows1252Replacements[codepoint]; ok {
		p.parseError(errIllegalWindows1252Entity)
		return string(replacement), true
	}
	if isDisallowedCodepoint(codepoint) {
		p.parseError(errIllegalCodepointForNumericEntity)
		return "\uFFFD", true
	}
	return string(rune(codepoint)), true
}

// parseCodepoint saturates just above the Unicode range so arbitrarily long
// digit runs cannot overflow.
func parseCodepoint(digits string, base int) int {
	n := 0
	for _, d := range digits {
		var v int
		switch {
		case d >= '0' && d <= '9':
			v = int(d - '0')
		case d >= 'a' && d <= 'f':
			v = int(d-'a') + 10
		case d >= 'A' && d <= 'F':
			v = int(d-'A') + 10
		}
		n = n*base + v
		if n > 0x10FFFF {
			return 0x110000
		}
	}
	return n
}

func (p *HTMLTokenizer) consumeNamedCharacterReference(inAttribute bool) (string, bool) {
	chars := p.stream.CharsWhile(alphanumeric+";", maxEntityLength)

	// every rune in chars is ASCII, so byte offsets are rune offsets.
	matched := 0
	var decoded string
	for n := len(chars); n > 0; n-- {
		if v, ok := entities[chars[:n]]; ok {
			matched, decoded = n, v
			break
		}
	}
	if matched == 0 {
		p.parseError(errExpectedNamedEntity)
		return "&" + chars, false
	}

	semicolon := strings.HasSuffix(chars[:matched], ";")
	if !semicolon {
		p.parseError(errNamedEntityWithoutSemicolon)
	}

	if inAttribute && !semicolon {
		var next rune
		var ok bool
		if matched < len(chars) {
			next, ok = rune(chars[matched]), true
		} else {
			next, ok = p.stream.Peek()
		}
		if ok && isASCIIAlphanumeric(next) {
			return "&" + chars, false
		}
	}
	return decoded + chars[matched:], true
}

func isNonCharacter(code int) bool {
	return (code >= 0xFDD0 && code <= 0xFDEF) || code&0xFFFE == 0xFFFE
}

func isControl(code int) bool {
	return (code >= 0x00 && code <= 0x08) ||
		code == 0x0B ||
		(code >= 0x0E && code <= 0x1F) ||
		(code >= 0x7F && code <= 0x9F)
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isDisallowedCodepoint(code int) bool {
	return isControl(code) || isSurrogate(code) || isNonCharacter(code) || code > 0x10FFFF
}

// windows1252Replacements maps numeric references into the C1 range onto the
// characters Windows-1252 puts there.
var windows1252Replacements = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}
