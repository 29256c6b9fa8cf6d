package parser

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	upperAlpha   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiAlpha   = upperAlpha + "abcdefghijklmnopqrstuvwxyz"
	asciiDigits  = "0123456789"
	hexDigits    = asciiDigits + "ABCDEFabcdef"
	alphanumeric = asciiAlpha + asciiDigits
	whitespace   = "\t\n\f "
)

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	currentState            tokenizerState
	stream                  *InputStream
	sink                    TokenSink
	tokenBuilder            *TokenBuilder
	contentModel            ContentModel
	escape                  bool
	lastEmittedStartTagName string
	coalesce                bool
	log                     *logrus.Entry
}

// NewHTMLTokenizer creates a tokenizer over newline-normalized input that
// reports every token to sink.
func NewHTMLTokenizer(input []rune, sink TokenSink, cfg Config) *HTMLTokenizer {
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	return &HTMLTokenizer{
		currentState:            dataState,
		stream:                  NewInputStream(input),
		sink:                    sink,
		tokenBuilder:            MakeTokenBuilder(),
		contentModel:            cfg.InitialContentModel,
		lastEmittedStartTagName: strings.ToLower(cfg.LastStartTag),
		coalesce:                !cfg.DisableCoalescing,
		log:                     logger.WithField("component", "tokenizer"),
	}
}

// NewHTMLTokenizerFromReader preprocesses everything r holds and creates a
// tokenizer over it.
func NewHTMLTokenizerFromReader(r io.Reader, sink TokenSink, cfg Config) (*HTMLTokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	input, err := Preprocess(r)
	if err != nil {
		return nil, err
	}
	return NewHTMLTokenizer(input, sink, cfg), nil
}

// Tokenize runs the state machine until the end-of-file token is emitted.
func (p *HTMLTokenizer) Tokenize() {
	for p.Step() {
	}
}

// Step runs one transition of the state machine, including any reconsumption
// it asks for. It returns false once the tokenizer has halted.
func (p *HTMLTokenizer) Step() bool {
	if p.currentState == haltedState {
		return false
	}
	var (
		r   rune
		eof bool
	)
	if consumesInput(p.currentState) {
		var ok bool
		r, ok = p.stream.Consume()
		eof = !ok
	}
	p.processRune(r, eof)
	return p.currentState != haltedState
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		from := p.currentState
		reconsume, p.currentState = p.stateToParser(from)(r, eof)
		if p.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			p.log.WithFields(logrus.Fields{
				"rune":      string(r),
				"eof":       eof,
				"from":      from,
				"to":        p.currentState,
				"reconsume": reconsume,
			}).Trace("transition")
		}
	}
}

// State returns the name of the current state.
func (p *HTMLTokenizer) State() string {
	return p.currentState.String()
}

// ContentModel returns the content model in effect.
func (p *HTMLTokenizer) ContentModel() ContentModel {
	return p.contentModel
}

// Line returns the line of the most recently consumed character.
func (p *HTMLTokenizer) Line() int {
	return p.stream.Line()
}

// Column returns the column of the most recently consumed character.
func (p *HTMLTokenizer) Column() int {
	return p.stream.Column()
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	default:
		return false
	}
}

func toLower(r rune) string {
	if isASCIIUpper(r) {
		r += 0x20
	}
	return string(r)
}

// charsUntil and charsWhile extend the current character with the rest of
// its run when coalescing is on.
func (p *HTMLTokenizer) charsUntil(stop string) string {
	if !p.coalesce {
		return ""
	}
	return p.stream.CharsUntil(stop)
}

func (p *HTMLTokenizer) charsWhile(class string) string {
	if !p.coalesce {
		return ""
	}
	return p.stream.CharsWhile(class, 0)
}

func (p *HTMLTokenizer) setContentModel(cm ContentModel) {
	p.contentModel = cm
	if cm == PCDATA || cm == PLAINTEXT {
		p.escape = false
	}
}

// emit sends tokens to the sink, each preceded by the input stream errors
// found since the last one. A stream error carries the position of the rune
// that caused it, not the position it was flushed at.
func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		for _, e := range p.stream.TakeErrors() {
			errToken := p.tokenBuilder.ParseErrorToken(e.Code)
			errToken.Line, errToken.Column = p.stream.PositionAt(e.Offset + 1)
			p.send(errToken)
		}
		token.Line, token.Column = p.stream.Line(), p.stream.Column()
		p.send(token)
	}
}

func (p *HTMLTokenizer) send(token Token) {
	if token.TokenType == StartTagToken {
		p.lastEmittedStartTagName = token.TagName
	}
	if token.TokenType != CharacterToken && p.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		p.log.WithFields(logrus.Fields{
			"token":  token.String(),
			"line":   token.Line,
			"column": token.Column,
		}).Debug("emit")
	}

	progress := p.sink.ProcessToken(&token)
	if progress != nil && progress.ContentModel != nil {
		p.setContentModel(*progress.ContentModel)
	}
	if token.TokenType == EndTagToken {
		p.setContentModel(PCDATA)
	}
}

func (p *HTMLTokenizer) parseError(code string) {
	p.emit(p.tokenBuilder.ParseErrorToken(code))
}

func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	token := p.tokenBuilder.Token()
	if token.TokenType == EndTagToken {
		if len(token.Attributes) > 0 {
			p.parseError(errAttributesInEndTag)
			token.Attributes = nil
		}
		token.SelfClosing = false
	}
	p.emit(token)
	return dataState
}

func (p *HTMLTokenizer) emitCurrentToken() tokenizerState {
	p.emit(p.tokenBuilder.Token())
	return dataState
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	rawText := p.contentModel == RCDATA || p.contentModel == CDATA
	ampCond := !p.escape && (p.contentModel == PCDATA || p.contentModel == RCDATA)
	ltCond := p.contentModel == PCDATA || (rawText && !p.escape)

	switch {
	case eof:
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, haltedState
	case r == '&' && ampCond:
		return false, characterReferenceInDataState
	case r == '-':
		if rawText && !p.escape && p.stream.LastConsumed(4) == "<!--" {
			p.escape = true
		}
		p.emit(p.tokenBuilder.CharacterToken("-"))
		return false, dataState
	case r == '<' && ltCond:
		return false, tagOpenState
	case r == '>':
		if rawText && p.escape && p.stream.LastConsumed(3) == "-->" {
			p.escape = false
		}
		p.emit(p.tokenBuilder.CharacterToken(">"))
		return false, dataState
	}

	stop := "->"
	if ampCond {
		stop += "&"
	}
	if ltCond {
		stop += "<"
	}
	p.emit(p.tokenBuilder.CharacterToken(string(r) + p.charsUntil(stop)))
	return false, dataState
}

func (p *HTMLTokenizer) characterReferenceInDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	text, _ := p.consumeCharacterReference(0, false, false)
	p.emit(p.tokenBuilder.CharacterToken(text))
	return false, dataState
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if p.contentModel != PCDATA {
		if !eof && r == '/' {
			return false, closeTagOpenState
		}
		p.emit(p.tokenBuilder.CharacterToken("<"))
		return true, dataState
	}

	switch {
	case eof:
		p.parseError(errExpectedTagName)
		p.emit(p.tokenBuilder.CharacterToken("<"))
		return true, dataState
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, closeTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken(StartTagToken)
		p.tokenBuilder.WriteName(toLower(r))
		return false, tagNameState
	case r == '>':
		p.parseError(errExpectedTagNameButGotRightBracket)
		p.emit(p.tokenBuilder.CharacterToken("<>"))
		return false, dataState
	case r == '?':
		p.parseError(errExpectedTagNameButGotQuestionMark)
		p.tokenBuilder.NewToken(CommentToken)
		p.tokenBuilder.WriteData("?")
		return false, bogusCommentState
	default:
		p.parseError(errExpectedTagName)
		p.emit(p.tokenBuilder.CharacterToken("<"))
		return true, dataState
	}
}

// closeTagOpenStateParser reads its own input: in RCDATA and CDATA it has to
// look ahead at the whole tag name before deciding what "</" means.
func (p *HTMLTokenizer) closeTagOpenStateParser(_ rune, _ bool) (bool, tokenizerState) {
	if p.contentModel == RCDATA || p.contentModel == CDATA {
		name := p.stream.CharsWhile(asciiAlpha, 0)
		following, ok := p.stream.Peek()
		if p.lastEmittedStartTagName == "" ||
			!strings.EqualFold(name, p.lastEmittedStartTagName) ||
			(ok && !strings.ContainsRune(whitespace+">/", following)) {
			p.emit(p.tokenBuilder.CharacterToken("</" + name))
			return false, dataState
		}
		p.tokenBuilder.NewToken(EndTagToken)
		p.tokenBuilder.WriteName(strings.ToLower(name))
		return false, tagNameState
	}

	r, ok := p.stream.Consume()
	switch {
	case !ok:
		p.parseError(errExpectedClosingTagButGotEOF)
		p.emit(p.tokenBuilder.CharacterToken("</"))
		p.stream.Unconsume()
		return false, dataState
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken(EndTagToken)
		p.tokenBuilder.WriteName(toLower(r))
		return false, tagNameState
	case r == '>':
		p.parseError(errExpectedClosingTagButGotBracket)
		return false, dataState
	default:
		p.parseError(errExpectedClosingTagButGotChar)
		p.tokenBuilder.NewToken(CommentToken)
		p.tokenBuilder.WriteData(string(r))
		return false, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInTagName)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(strings.ToLower(string(r) + p.charsWhile(upperAlpha)))
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(string(r) + p.charsUntil(whitespace+"/>"+upperAlpha))
		return false, tagNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errExpectedAttributeNameButGotEOF)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	case isASCIIUpper(r):
		p.tokenBuilder.StartAttribute(toLower(r))
		return false, attributeNameState
	default:
		if r == '"' || r == '\'' || r == '=' {
			p.parseError(errInvalidCharacterInAttributeName)
		}
		p.tokenBuilder.StartAttribute(string(r))
		return false, attributeNameState
	}
}

// leaveAttributeName drops the attribute being built if an earlier one on the
// same tag has its name.
func (p *HTMLTokenizer) leaveAttributeName() {
	if p.tokenBuilder.RemoveDuplicateAttributeName() {
		p.parseError(errDuplicateAttribute)
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInAttributeName)
		p.leaveAttributeName()
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		p.leaveAttributeName()
		return false, afterAttributeNameState
	case r == '/':
		p.leaveAttributeName()
		return false, selfClosingStartTagState
	case r == '=':
		p.leaveAttributeName()
		return false, beforeAttributeValueState
	case r == '>':
		p.leaveAttributeName()
		return false, p.emitCurrentTag()
	case isASCIIUpper(r):
		p.tokenBuilder.WriteAttributeName(strings.ToLower(string(r) + p.charsWhile(upperAlpha)))
		return false, attributeNameState
	default:
		if r == '"' || r == '\'' {
			p.parseError(errInvalidCharacterInAttributeName)
		}
		p.tokenBuilder.WriteAttributeName(string(r) + p.charsUntil(whitespace+"/=>\"'"+upperAlpha))
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errExpectedEndOfTagButGotEOF)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, p.emitCurrentTag()
	case isASCIIUpper(r):
		p.tokenBuilder.StartAttribute(toLower(r))
		return false, attributeNameState
	default:
		if r == '"' || r == '\'' {
			p.parseError(errInvalidCharacterAfterAttributeName)
		}
		p.tokenBuilder.StartAttribute(string(r))
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errExpectedAttributeValueButGotEOF)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '&':
		return true, attributeValueUnquotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		p.parseError(errExpectedAttributeValueButGotBracket)
		return false, p.emitCurrentTag()
	default:
		if r == '=' {
			p.parseError(errEqualsInUnquotedAttributeValue)
		}
		p.tokenBuilder.WriteAttributeValue(string(r))
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInAttributeValueDoubleQuote)
		p.emitCurrentTag()
		return true, dataState
	case r == '"':
		return false, afterAttributeValueQuotedState
	case r == '&':
		p.characterReferenceInAttributeValue('"', true)
		return false, attributeValueDoubleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(string(r) + p.charsUntil("\"&"))
		return false, attributeValueDoubleQuotedState
	}
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInAttributeValueSingleQuote)
		p.emitCurrentTag()
		return true, dataState
	case r == '\'':
		return false, afterAttributeValueQuotedState
	case r == '&':
		p.characterReferenceInAttributeValue('\'', true)
		return false, attributeValueSingleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(string(r) + p.charsUntil("'&"))
		return false, attributeValueSingleQuotedState
	}
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInAttributeValueNoQuotes)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '&':
		p.characterReferenceInAttributeValue(0, false)
		return false, attributeValueUnquotedState
	case r == '>':
		return false, p.emitCurrentTag()
	default:
		if r == '"' || r == '\'' || r == '=' {
			p.parseError(errUnexpectedCharInUnquotedValue)
		}
		p.tokenBuilder.WriteAttributeValue(string(r) + p.charsUntil(whitespace+"&>\"'="))
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) characterReferenceInAttributeValue(allowed rune, hasAllowed bool) {
	text, _ := p.consumeCharacterReference(allowed, hasAllowed, true)
	p.tokenBuilder.WriteAttributeValue(text)
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errUnexpectedEOFAfterAttributeValue)
		p.emitCurrentTag()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	default:
		p.parseError(errUnexpectedCharAfterAttributeValue)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errUnexpectedEOFAfterSelfClosing)
		p.emitCurrentTag()
		return true, dataState
	case r == '>':
		if p.tokenBuilder.Type() == EndTagToken {
			p.parseError(errSelfClosingEndTag)
		}
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	default:
		p.parseError(errUnexpectedCharAfterSelfClosing)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.emitCurrentToken()
		return true, dataState
	case r == '>':
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.WriteData(string(r) + p.charsUntil(">"))
		return false, bogusCommentState
	}
}

// markupDeclarationOpenStateParser reads its own input to tell comments from
// DOCTYPEs.
func (p *HTMLTokenizer) markupDeclarationOpenStateParser(_ rune, _ bool) (bool, tokenizerState) {
	hyphens := p.stream.CharsWhile("-", 2)
	if hyphens == "--" {
		p.tokenBuilder.NewToken(CommentToken)
		return false, commentStartState
	}
	if hyphens == "-" {
		p.stream.Unconsume()
	}

	letters := p.stream.CharsWhile(asciiAlpha, 7)
	if strings.EqualFold(letters, "DOCTYPE") {
		return false, doctypeState
	}

	p.parseError(errExpectedDashesOrDoctype)
	p.tokenBuilder.NewToken(CommentToken)
	p.tokenBuilder.WriteData(letters)
	return false, bogusCommentState
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInComment)
		p.emitCurrentToken()
		return true, dataState
	case r == '-':
		return false, commentStartDashState
	case r == '>':
		p.parseError(errIncorrectComment)
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.WriteData(string(r) + p.charsUntil("-"))
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInComment)
		p.emitCurrentToken()
		return true, dataState
	case r == '-':
		return false, commentEndState
	case r == '>':
		p.parseError(errIncorrectComment)
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.WriteData("-" + string(r) + p.charsUntil("-"))
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInComment)
		p.emitCurrentToken()
		return true, dataState
	case r == '-':
		return false, commentEndDashState
	default:
		p.tokenBuilder.WriteData(string(r) + p.charsUntil("-"))
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInCommentEndDash)
		p.emitCurrentToken()
		return true, dataState
	case r == '-':
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData("-" + string(r) + p.charsUntil("-"))
		return false, commentState
	}
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInCommentDoubleDash)
		p.emitCurrentToken()
		return true, dataState
	case r == '>':
		return false, p.emitCurrentToken()
	case r == '-':
		p.parseError(errUnexpectedDashAfterDoubleDashComment)
		p.tokenBuilder.WriteData("-")
		return false, commentEndState
	default:
		p.parseError(errUnexpectedCharInComment)
		p.tokenBuilder.WriteData("--" + string(r))
		return false, commentState
	}
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	p.parseError(errNeedSpaceAfterDoctype)
	return true, beforeDoctypeNameState
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errExpectedDoctypeNameButGotEOF)
		p.tokenBuilder.NewToken(DocTypeToken)
		p.tokenBuilder.EnableForceQuirks()
		p.emitCurrentToken()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		p.parseError(errExpectedDoctypeNameButGotBracket)
		p.tokenBuilder.NewToken(DocTypeToken)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.NewToken(DocTypeToken)
		p.tokenBuilder.WriteName(toLower(r))
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInDoctypeName)
		p.tokenBuilder.EnableForceQuirks()
		p.emitCurrentToken()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, p.emitCurrentToken()
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(strings.ToLower(string(r) + p.charsWhile(upperAlpha)))
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(string(r) + p.charsUntil(whitespace+">"+upperAlpha))
		return false, doctypeNameState
	}
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emitCurrentToken()
		return true, dataState
	case isASCIIWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, p.emitCurrentToken()
	}

	switch strings.ToUpper(string(r) + p.stream.CharsWhile(asciiAlpha, 5)) {
	case "PUBLIC":
		return false, beforeDoctypePublicIdentifierState
	case "SYSTEM":
		return false, beforeDoctypeSystemIdentifierState
	default:
		p.parseError(errExpectedSpaceOrRightBracketInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

// doctypeEOF handles the end of input inside a DOCTYPE after its name.
func (p *HTMLTokenizer) doctypeEOF() (bool, tokenizerState) {
	p.parseError(errEOFInDoctype)
	p.tokenBuilder.EnableForceQuirks()
	p.emitCurrentToken()
	return true, dataState
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case isASCIIWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		p.tokenBuilder.StartPublicIdentifier()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartPublicIdentifier()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errUnexpectedEndOfDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitCurrentToken()
	default:
		p.parseError(errUnexpectedCharInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierQuoted(r rune, eof bool, quote rune, state tokenizerState) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case r == quote:
		return false, afterDoctypePublicIdentifierState
	case r == '>':
		p.parseError(errUnexpectedEndOfDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.WritePublicIdentifier(string(r) + p.charsUntil(string(quote)+">"))
		return false, state
	}
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypePublicIdentifierQuoted(r, eof, '"', doctypePublicIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypePublicIdentifierQuoted(r, eof, '\'', doctypePublicIdentifierSingleQuotedState)
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case isASCIIWhitespace(r):
		return false, afterDoctypePublicIdentifierState
	case r == '"':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		return false, p.emitCurrentToken()
	default:
		p.parseError(errUnexpectedCharInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case isASCIIWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.StartSystemIdentifier()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errUnexpectedCharInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitCurrentToken()
	default:
		p.parseError(errUnexpectedCharInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) doctypeSystemIdentifierQuoted(r rune, eof bool, quote rune, state tokenizerState) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case r == quote:
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		p.parseError(errUnexpectedEndOfDoctype)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitCurrentToken()
	default:
		p.tokenBuilder.WriteSystemIdentifier(string(r) + p.charsUntil(string(quote)+">"))
		return false, state
	}
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeSystemIdentifierQuoted(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeSystemIdentifierQuoted(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState)
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		return p.doctypeEOF()
	case isASCIIWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		return false, p.emitCurrentToken()
	default:
		// unlike the other DOCTYPE errors this one leaves quirks mode alone.
		p.parseError(errUnexpectedCharInDoctype)
		return false, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
		p.emitCurrentToken()
		return true, dataState
	case r == '>':
		return false, p.emitCurrentToken()
	default:
		p.charsUntil(">")
		return false, bogusDoctypeState
	}
}
