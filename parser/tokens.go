package parser

import (
	"fmt"
	"strings"
)

// TokenType identifies the kind of a Token.
type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	EndOfFileToken
	CommentToken
	DocTypeToken
	ParseErrorToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Character"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case EndOfFileToken:
		return "EndOfFile"
	case CommentToken:
		return "Comment"
	case DocTypeToken:
		return "DOCTYPE"
	case ParseErrorToken:
		return "ParseError"
	default:
		return fmt.Sprintf("TokenType(%d)", uint(t))
	}
}

// Attribute is a name/value pair on a start tag. Names are lowercased.
type Attribute struct {
	Name  string
	Value string
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType TokenType
	// TagName is set for start and end tags.
	TagName string
	// Attributes are kept in source order; a repeated name is dropped.
	Attributes  []Attribute
	SelfClosing bool
	// Data holds character data, comment data or a parse error code.
	Data string

	// A nil identifier was never opened; a pointer to "" was opened and
	// left empty.
	DoctypeName      *string
	PublicIdentifier *string
	SystemIdentifier *string
	ForceQuirks      bool

	// Line and Column locate the last input rune consumed before the token
	// was emitted.
	Line   int
	Column int
}

// Attr returns the value of the named attribute.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Equal compares two tokens ignoring their positions.
func (t *Token) Equal(o *Token) bool {
	if t.TokenType != o.TokenType ||
		t.TagName != o.TagName ||
		t.SelfClosing != o.SelfClosing ||
		t.Data != o.Data ||
		t.ForceQuirks != o.ForceQuirks ||
		!equalOptional(t.DoctypeName, o.DoctypeName) ||
		!equalOptional(t.PublicIdentifier, o.PublicIdentifier) ||
		!equalOptional(t.SystemIdentifier, o.SystemIdentifier) ||
		len(t.Attributes) != len(o.Attributes) {
		return false
	}
	for i := range t.Attributes {
		if t.Attributes[i] != o.Attributes[i] {
			return false
		}
	}
	return true
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (t *Token) String() string {
	switch t.TokenType {
	case StartTagToken:
		var b strings.Builder
		b.WriteString("<" + t.TagName)
		for _, a := range t.Attributes {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
		b.WriteString(">")
		return b.String()
	case EndTagToken:
		return "</" + t.TagName + ">"
	case CommentToken:
		return "<!--" + t.Data + "-->"
	case DocTypeToken:
		return fmt.Sprintf("<!DOCTYPE %s public=%s system=%s quirks=%t>",
			optionalString(t.DoctypeName), optionalString(t.PublicIdentifier),
			optionalString(t.SystemIdentifier), t.ForceQuirks)
	case CharacterToken:
		return fmt.Sprintf("%q", t.Data)
	case ParseErrorToken:
		return "ParseError(" + t.Data + ")"
	default:
		return t.TokenType.String()
	}
}

func optionalString(s *string) string {
	if s == nil {
		return "<missing>"
	}
	return fmt.Sprintf("%q", *s)
}

// HTML5Lib renders the token in the array form used by the html5lib
// tokenizer tests. The end-of-file token has no such form and renders as nil.
func (t *Token) HTML5Lib() interface{} {
	switch t.TokenType {
	case DocTypeToken:
		return []interface{}{"DOCTYPE", t.DoctypeName, t.PublicIdentifier, t.SystemIdentifier, !t.ForceQuirks}
	case StartTagToken:
		attrs := make(map[string]string, len(t.Attributes))
		for _, a := range t.Attributes {
			attrs[a.Name] = a.Value
		}
		if t.SelfClosing {
			return []interface{}{"StartTag", t.TagName, attrs, true}
		}
		return []interface{}{"StartTag", t.TagName, attrs}
	case EndTagToken:
		return []interface{}{"EndTag", t.TagName}
	case CommentToken:
		return []interface{}{"Comment", t.Data}
	case CharacterToken:
		return []interface{}{"Character", t.Data}
	case ParseErrorToken:
		return "ParseError"
	default:
		return nil
	}
}

// TokenBuilder builds the token currently under construction.
type TokenBuilder struct {
	tokenType TokenType

	name    strings.Builder
	hasName bool
	data    strings.Builder

	publicID    strings.Builder
	hasPublicID bool
	systemID    strings.Builder
	hasSystemID bool

	attributes     []Attribute
	attributeKey   strings.Builder
	attributeValue strings.Builder
	inAttribute    bool
	removeNextAttr bool

	selfClosing bool
	forceQuirks bool
}

// MakeTokenBuilder returns an empty builder.
func MakeTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// NewToken clears the builder and starts a token of the given type.
func (t *TokenBuilder) NewToken(tokenType TokenType) {
	t.tokenType = tokenType
	t.name.Reset()
	t.hasName = false
	t.data.Reset()
	t.publicID.Reset()
	t.hasPublicID = false
	t.systemID.Reset()
	t.hasSystemID = false
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.inAttribute = false
	t.removeNextAttr = false
	t.selfClosing = false
	t.forceQuirks = false
}

// Type returns the type of the token under construction.
func (t *TokenBuilder) Type() TokenType {
	return t.tokenType
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// WriteName appends to the tag or DOCTYPE name.
func (t *TokenBuilder) WriteName(s string) {
	t.hasName = true
	t.name.WriteString(s)
}

// WriteData appends to the comment data.
func (t *TokenBuilder) WriteData(s string) {
	t.data.WriteString(s)
}

// StartPublicIdentifier marks the public identifier as present and empty.
func (t *TokenBuilder) StartPublicIdentifier() {
	t.hasPublicID = true
	t.publicID.Reset()
}

// WritePublicIdentifier appends to the public identifier.
func (t *TokenBuilder) WritePublicIdentifier(s string) {
	t.publicID.WriteString(s)
}

// StartSystemIdentifier marks the system identifier as present and empty.
func (t *TokenBuilder) StartSystemIdentifier() {
	t.hasSystemID = true
	t.systemID.Reset()
}

// WriteSystemIdentifier appends to the system identifier.
func (t *TokenBuilder) WriteSystemIdentifier(s string) {
	t.systemID.WriteString(s)
}

// StartAttribute commits the attribute in progress, if any, and starts a new
// one named s with an empty value.
func (t *TokenBuilder) StartAttribute(s string) {
	t.CommitAttribute()
	t.inAttribute = true
	t.attributeKey.WriteString(s)
}

// WriteAttributeName appends to the current attribute's name.
func (t *TokenBuilder) WriteAttributeName(s string) {
	t.attributeKey.WriteString(s)
}

// WriteAttributeValue appends to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValue(s string) {
	t.attributeValue.WriteString(s)
}

// RemoveDuplicateAttributeName checks if the current name is already in the
// list of committed attributes. If so, the current attribute and any value
// written to it will be dropped.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	key := t.attributeKey.String()
	for _, a := range t.attributes {
		if a.Name == key {
			t.removeNextAttr = true
			return true
		}
	}
	return false
}

// CommitAttribute ends the creation of a name/value pair by appending it to
// the attribute list, unless it was marked as a duplicate.
func (t *TokenBuilder) CommitAttribute() {
	if t.inAttribute && !t.removeNextAttr {
		t.attributes = append(t.attributes, Attribute{
			Name:  t.attributeKey.String(),
			Value: t.attributeValue.String(),
		})
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.inAttribute = false
	t.removeNextAttr = false
}

// Token finishes the token under construction.
func (t *TokenBuilder) Token() Token {
	switch t.tokenType {
	case StartTagToken, EndTagToken:
		t.CommitAttribute()
		return Token{
			TokenType:   t.tokenType,
			TagName:     t.name.String(),
			Attributes:  t.attributes,
			SelfClosing: t.selfClosing,
		}
	case CommentToken:
		return Token{
			TokenType: CommentToken,
			Data:      t.data.String(),
		}
	case DocTypeToken:
		tok := Token{
			TokenType:   DocTypeToken,
			ForceQuirks: t.forceQuirks,
		}
		if t.hasName {
			name := t.name.String()
			tok.DoctypeName = &name
		}
		if t.hasPublicID {
			id := t.publicID.String()
			tok.PublicIdentifier = &id
		}
		if t.hasSystemID {
			id := t.systemID.String()
			tok.SystemIdentifier = &id
		}
		return tok
	default:
		panic(fmt.Sprintf("parser: no token of type %s under construction", t.tokenType))
	}
}

// CharacterToken creates a character token.
func (t *TokenBuilder) CharacterToken(s string) Token {
	return Token{
		TokenType: CharacterToken,
		Data:      s,
	}
}

// ParseErrorToken creates a parse error token carrying code.
func (t *TokenBuilder) ParseErrorToken(code string) Token {
	return Token{
		TokenType: ParseErrorToken,
		Data:      code,
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: EndOfFileToken,
	}
}
