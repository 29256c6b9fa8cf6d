package parser

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ignorePosition compares tokens the way Token.Equal does.
var ignorePosition = cmp.Options{
	cmpopts.IgnoreFields(Token{}, "Line", "Column"),
	cmpopts.EquateEmpty(),
}

func tokenize(t *testing.T, input string, cfg Config) []*Token {
	t.Helper()
	c := &TokenCollector{}
	p := NewHTMLTokenizer([]rune(input), c, cfg)
	p.Tokenize()
	require.Equal(t, haltedState.String(), p.State())
	return c.Tokens
}

// mergeCharacters joins adjacent character tokens, so token streams can be
// compared however the character data was split up.
func mergeCharacters(tokens []*Token) []*Token {
	var merged []*Token
	for _, tok := range tokens {
		if n := len(merged); n > 0 && tok.TokenType == CharacterToken && merged[n-1].TokenType == CharacterToken {
			joined := *merged[n-1]
			joined.Data += tok.Data
			merged[n-1] = &joined
			continue
		}
		merged = append(merged, tok)
	}
	return merged
}

func strPtr(s string) *string { return &s }

func charTok(s string) *Token { return &Token{TokenType: CharacterToken, Data: s} }

func errTok(code string) *Token { return &Token{TokenType: ParseErrorToken, Data: code} }

func eofTok() *Token { return &Token{TokenType: EndOfFileToken} }

func commentTok(s string) *Token { return &Token{TokenType: CommentToken, Data: s} }

func endTag(name string) *Token { return &Token{TokenType: EndTagToken, TagName: name} }

func startTag(name string, attrs ...string) *Token {
	tok := &Token{TokenType: StartTagToken, TagName: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		tok.Attributes = append(tok.Attributes, Attribute{Name: attrs[i], Value: attrs[i+1]})
	}
	return tok
}

type tokezinerAttributeAccuracyTestcase struct {
	inHTML string      // snippet of HTML to tokenize (should only be one element)
	attrs  []Attribute // expected attributes collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokezinerAttributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", []Attribute{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", []Attribute{
		{"href", "https://google.com"},
		{"onclick", "alert(1)"},
	}},
	{"<script src='123' src='456'></script>", []Attribute{
		{"src", "123"},
	}},
	{"<a a=\"1\" b=\"2\" a=\"3\">", []Attribute{
		{"a", "1"},
		{"b", "2"},
	}},
	{"<script src=123 onload=test></script>", []Attribute{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script src='123' onload='test' ></script>", []Attribute{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script =src='123'onload='test' ></script>", []Attribute{
		{"=src", "123"},
		{"onload", "test"},
	}},
	{"<script src></script>", []Attribute{
		{"src", ""},
	}},
	{"<script src test></script>", []Attribute{
		{"src", ""},
		{"test", ""},
	}},
	{"<script 'asd></script>", []Attribute{
		{"'asd", ""},
	}},
	{"<script <asd></script>", []Attribute{
		{"<asd", ""},
	}},
	{"<script ABC=123></script>", []Attribute{
		{"abc", "123"},
	}},
	{"<script abc='\u0000123'></script>", []Attribute{
		{"abc", "\uFFFD123"},
	}},
	{"<script abc=></script>", []Attribute{
		{"abc", ""},
	}},
	{"<script\tabc=123></script>", []Attribute{
		{"abc", "123"},
	}},
	{"<a title=\"&amp;\">", []Attribute{
		{"title", "&"},
	}},
	{"<a title=\"&notit;\">", []Attribute{
		{"title", "&notit;"},
	}},
	{"<a href=&notit;>", []Attribute{
		{"href", "&notit;"},
	}},
	{"<a title='&not'>", []Attribute{
		{"title", "¬"},
	}},
	{"<a title=x&lt=y>", []Attribute{
		{"title", "x<=y"},
	}},
	{"<a title=\"&\">", []Attribute{
		{"title", "&"},
	}},
	{"<A HREF=\"X\">", []Attribute{
		{"href", "X"},
	}},
}

// TestTokenizerAttributeAccuracy just makes sure that we have the
// correct number attribute names and values
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

// helper function to parallelize the above test case.
func runTestTokenizerAttributeAccuracy(tt tokezinerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		for _, token := range tokenize(t, tt.inHTML, Config{}) {
			if token.TokenType != StartTagToken {
				continue
			}
			if diff := cmp.Diff(tt.attrs, token.Attributes, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("attributes mismatch (-want +got):\n%s", diff)
			}
			return
		}
		t.Fatal("no start tag emitted")
	})
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState tokenizerState // the next state
}

// TestStateParsers checks each handler of the state machine returns the next
// expected state for a single input character, starting from a fresh
// tokenizer over empty input in the PCDATA content model.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceInDataState},
		{'<', dataState, false, tagOpenState},
		{'a', dataState, false, dataState},
		{'-', dataState, false, dataState},
		{'>', dataState, false, dataState},
		{'\uFFFD', dataState, false, dataState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, closeTagOpenState},
		{'a', tagOpenState, false, tagNameState},
		{'Z', tagOpenState, false, tagNameState},
		{'>', tagOpenState, false, dataState},
		{'?', tagOpenState, false, bogusCommentState},
		{'1', tagOpenState, true, dataState},
		{' ', tagOpenState, true, dataState},

		{' ', tagNameState, false, beforeAttributeNameState},
		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\n', tagNameState, false, beforeAttributeNameState},
		{'\f', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'A', tagNameState, false, tagNameState},
		{'a', tagNameState, false, tagNameState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, false, selfClosingStartTagState},
		{'>', beforeAttributeNameState, false, dataState},
		{'A', beforeAttributeNameState, false, attributeNameState},
		{'a', beforeAttributeNameState, false, attributeNameState},
		{'"', beforeAttributeNameState, false, attributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},

		{' ', attributeNameState, false, afterAttributeNameState},
		{'/', attributeNameState, false, selfClosingStartTagState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{'>', attributeNameState, false, dataState},
		{'A', attributeNameState, false, attributeNameState},
		{'\'', attributeNameState, false, attributeNameState},

		{' ', afterAttributeNameState, false, afterAttributeNameState},
		{'/', afterAttributeNameState, false, selfClosingStartTagState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'>', afterAttributeNameState, false, dataState},
		{'a', afterAttributeNameState, false, attributeNameState},

		{' ', beforeAttributeValueState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'&', beforeAttributeValueState, true, attributeValueUnquotedState},
		{'>', beforeAttributeValueState, false, dataState},
		{'a', beforeAttributeValueState, false, attributeValueUnquotedState},
		{'=', beforeAttributeValueState, false, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'&', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'"', attributeValueSingleQuotedState, false, attributeValueSingleQuotedState},
		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'&', attributeValueUnquotedState, false, attributeValueUnquotedState},
		{'>', attributeValueUnquotedState, false, dataState},
		{'a', attributeValueUnquotedState, false, attributeValueUnquotedState},

		{' ', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'>', afterAttributeValueQuotedState, false, dataState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},

		{'>', selfClosingStartTagState, false, dataState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},

		{'>', bogusCommentState, false, dataState},
		{'a', bogusCommentState, false, bogusCommentState},

		{'-', commentStartState, false, commentStartDashState},
		{'>', commentStartState, false, dataState},
		{'a', commentStartState, false, commentState},
		{'-', commentStartDashState, false, commentEndState},
		{'>', commentStartDashState, false, dataState},
		{'a', commentStartDashState, false, commentState},
		{'-', commentState, false, commentEndDashState},
		{'a', commentState, false, commentState},
		{'-', commentEndDashState, false, commentEndState},
		{'a', commentEndDashState, false, commentState},
		{'>', commentEndState, false, dataState},
		{'-', commentEndState, false, commentEndState},
		{'a', commentEndState, false, commentState},

		{' ', doctypeState, false, beforeDoctypeNameState},
		{'h', doctypeState, true, beforeDoctypeNameState},
		{' ', beforeDoctypeNameState, false, beforeDoctypeNameState},
		{'>', beforeDoctypeNameState, false, dataState},
		{'H', beforeDoctypeNameState, false, doctypeNameState},
		{' ', doctypeNameState, false, afterDoctypeNameState},
		{'>', doctypeNameState, false, dataState},
		{'H', doctypeNameState, false, doctypeNameState},
		{' ', afterDoctypeNameState, false, afterDoctypeNameState},
		{'>', afterDoctypeNameState, false, dataState},
		{'x', afterDoctypeNameState, false, bogusDoctypeState},

		{' ', beforeDoctypePublicIdentifierState, false, beforeDoctypePublicIdentifierState},
		{'"', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierSingleQuotedState},
		{'>', beforeDoctypePublicIdentifierState, false, dataState},
		{'x', beforeDoctypePublicIdentifierState, false, bogusDoctypeState},
		{'"', doctypePublicIdentifierDoubleQuotedState, false, afterDoctypePublicIdentifierState},
		{'>', doctypePublicIdentifierDoubleQuotedState, false, dataState},
		{'a', doctypePublicIdentifierDoubleQuotedState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', doctypePublicIdentifierSingleQuotedState, false, afterDoctypePublicIdentifierState},
		{'>', doctypePublicIdentifierSingleQuotedState, false, dataState},
		{' ', afterDoctypePublicIdentifierState, false, afterDoctypePublicIdentifierState},
		{'"', afterDoctypePublicIdentifierState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'\'', afterDoctypePublicIdentifierState, false, doctypeSystemIdentifierSingleQuotedState},
		{'>', afterDoctypePublicIdentifierState, false, dataState},
		{'x', afterDoctypePublicIdentifierState, false, bogusDoctypeState},

		{' ', beforeDoctypeSystemIdentifierState, false, beforeDoctypeSystemIdentifierState},
		{'"', beforeDoctypeSystemIdentifierState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'\'', beforeDoctypeSystemIdentifierState, false, doctypeSystemIdentifierSingleQuotedState},
		{'>', beforeDoctypeSystemIdentifierState, false, dataState},
		{'x', beforeDoctypeSystemIdentifierState, false, bogusDoctypeState},
		{'"', doctypeSystemIdentifierDoubleQuotedState, false, afterDoctypeSystemIdentifierState},
		{'>', doctypeSystemIdentifierDoubleQuotedState, false, dataState},
		{'\'', doctypeSystemIdentifierSingleQuotedState, false, afterDoctypeSystemIdentifierState},
		{' ', afterDoctypeSystemIdentifierState, false, afterDoctypeSystemIdentifierState},
		{'>', afterDoctypeSystemIdentifierState, false, dataState},
		{'x', afterDoctypeSystemIdentifierState, false, bogusDoctypeState},

		{'>', bogusDoctypeState, false, dataState},
		{'a', bogusDoctypeState, false, bogusDoctypeState},
	}

	for _, testcase := range stateParserTests {
		runStateParserTest(testcase, t)
	}
}

// builderTypeFor returns the kind of token a state expects to be under
// construction when it is entered.
func builderTypeFor(state tokenizerState) TokenType {
	switch {
	case state >= bogusCommentState && state <= commentEndState:
		return CommentToken
	case state >= doctypeState && state <= bogusDoctypeState:
		return DocTypeToken
	default:
		return StartTagToken
	}
}

// helper function to parallelize the above test case
func runStateParserTest(testcase stateMachineTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%#U", testcase.startingState, testcase.inRune)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(nil, &TokenCollector{}, Config{})
		p.tokenBuilder.NewToken(builderTypeFor(testcase.startingState))
		p.tokenBuilder.StartAttribute("x")
		reconsume, state := p.stateToParser(testcase.startingState)(testcase.inRune, false)
		assert.Equal(t, testcase.nextExpectedState, state, "expected %s, got %s", testcase.nextExpectedState, state)
		assert.Equal(t, testcase.shouldReconsume, reconsume)
	})
}

func TestLookaheadStatesAtEndOfInput(t *testing.T) {
	for _, state := range []tokenizerState{characterReferenceInDataState, closeTagOpenState} {
		p := NewHTMLTokenizer(nil, &TokenCollector{}, Config{})
		reconsume, next := p.stateToParser(state)(0, false)
		assert.False(t, reconsume)
		assert.Equal(t, dataState, next, state.String())
	}

	p := NewHTMLTokenizer(nil, &TokenCollector{}, Config{})
	_, next := p.markupDeclarationOpenStateParser(0, false)
	assert.Equal(t, bogusCommentState, next)
}

type tokenStreamTestCase struct {
	name   string
	input  string
	cfg    Config
	tokens []*Token
}

func TestTokenStreams(t *testing.T) {
	tests := []tokenStreamTestCase{
		{
			name:  "duplicate attribute keeps the first",
			input: `<a a="1" b="2" a="3">`,
			tokens: []*Token{
				errTok(errDuplicateAttribute),
				startTag("a", "a", "1", "b", "2"),
				eofTok(),
			},
		},
		{
			name:  "legacy entity in attribute followed by alphanumeric",
			input: `<a title="&notit;">`,
			tokens: []*Token{
				errTok(errNamedEntityWithoutSemicolon),
				startTag("a", "title", "&notit;"),
				eofTok(),
			},
		},
		{
			name:  "legacy entity in unquoted attribute followed by alphanumeric",
			input: `<a href=&notit;>`,
			tokens: []*Token{
				errTok(errNamedEntityWithoutSemicolon),
				startTag("a", "href", "&notit;"),
				eofTok(),
			},
		},
		{
			name:   "named entity in attribute",
			input:  `<a title="&amp;">`,
			tokens: []*Token{startTag("a", "title", "&"), eofTok()},
		},
		{
			name:   "numeric reference to NUL",
			input:  "&#0;",
			tokens: []*Token{errTok(errIllegalCodepointForNumericEntity), charTok("\uFFFD"), eofTok()},
		},
		{
			name:   "numeric reference above the Unicode range",
			input:  "&#x110000;",
			tokens: []*Token{errTok(errIllegalCodepointForNumericEntity), charTok("\uFFFD"), eofTok()},
		},
		{
			name:   "decimal reference",
			input:  "&#65;",
			tokens: []*Token{charTok("A"), eofTok()},
		},
		{
			name:   "RCDATA only closes on the last start tag",
			input:  "a</b>b</script>",
			cfg:    Config{InitialContentModel: RCDATA, LastStartTag: "script"},
			tokens: []*Token{charTok("a</b>b"), endTag("script"), eofTok()},
		},
		{
			name:   "RCDATA end tag match ignores case",
			input:  "x</TITLE >y",
			cfg:    Config{InitialContentModel: RCDATA, LastStartTag: "title"},
			tokens: []*Token{charTok("x"), endTag("title"), charTok("y"), eofTok()},
		},
		{
			name:   "RCDATA end tag name must be followed by a delimiter",
			input:  "</titlex>",
			cfg:    Config{InitialContentModel: RCDATA, LastStartTag: "title"},
			tokens: []*Token{charTok("</titlex>"), eofTok()},
		},
		{
			name:   "RCDATA decodes entities",
			input:  "&lt;b&gt;",
			cfg:    Config{InitialContentModel: RCDATA, LastStartTag: "textarea"},
			tokens: []*Token{charTok("<b>"), eofTok()},
		},
		{
			name:   "CDATA leaves entities alone",
			input:  "&lt;</style>",
			cfg:    Config{InitialContentModel: CDATA, LastStartTag: "style"},
			tokens: []*Token{charTok("&lt;"), endTag("style"), eofTok()},
		},
		{
			name:   "CDATA escape hides end tags",
			input:  "<!--</script>-->x</script>",
			cfg:    Config{InitialContentModel: CDATA, LastStartTag: "script"},
			tokens: []*Token{charTok("<!--</script>-->x"), endTag("script"), eofTok()},
		},
		{
			name:   "PLAINTEXT never ends",
			input:  "<b>&amp;</plaintext>",
			cfg:    Config{InitialContentModel: PLAINTEXT},
			tokens: []*Token{charTok("<b>&amp;</plaintext>"), eofTok()},
		},
		{
			name:  "doctype without identifiers",
			input: "<!DOCTYPE html>",
			tokens: []*Token{
				{TokenType: DocTypeToken, DoctypeName: strPtr("html")},
				eofTok(),
			},
		},
		{
			name:  "doctype with empty public identifier",
			input: `<!DOCTYPE html PUBLIC "">`,
			tokens: []*Token{
				{TokenType: DocTypeToken, DoctypeName: strPtr("html"), PublicIdentifier: strPtr("")},
				eofTok(),
			},
		},
		{
			name:  "doctype with both identifiers",
			input: `<!doctype HTML public "-//W3C//DTD HTML 4.01//EN" 'http://www.w3.org/TR/html4/strict.dtd'>`,
			tokens: []*Token{
				{
					TokenType:        DocTypeToken,
					DoctypeName:      strPtr("html"),
					PublicIdentifier: strPtr("-//W3C//DTD HTML 4.01//EN"),
					SystemIdentifier: strPtr("http://www.w3.org/TR/html4/strict.dtd"),
				},
				eofTok(),
			},
		},
		{
			name:  "doctype with system identifier only",
			input: `<!DOCTYPE html SYSTEM "about:legacy-compat">`,
			tokens: []*Token{
				{TokenType: DocTypeToken, DoctypeName: strPtr("html"), SystemIdentifier: strPtr("about:legacy-compat")},
				eofTok(),
			},
		},
		{
			name:  "doctype junk after name",
			input: "<!DOCTYPE html bogus>",
			tokens: []*Token{
				errTok(errExpectedSpaceOrRightBracketInDoctype),
				{TokenType: DocTypeToken, DoctypeName: strPtr("html"), ForceQuirks: true},
				eofTok(),
			},
		},
		{
			name:  "junk after system identifier keeps quirks off",
			input: `<!DOCTYPE html SYSTEM "x" y>`,
			tokens: []*Token{
				errTok(errUnexpectedCharInDoctype),
				{TokenType: DocTypeToken, DoctypeName: strPtr("html"), SystemIdentifier: strPtr("x")},
				eofTok(),
			},
		},
		{
			name:  "doctype without a name",
			input: "<!DOCTYPE>",
			tokens: []*Token{
				errTok(errNeedSpaceAfterDoctype),
				errTok(errExpectedDoctypeNameButGotBracket),
				{TokenType: DocTypeToken, ForceQuirks: true},
				eofTok(),
			},
		},
		{
			name:  "doctype at end of input",
			input: "<!DOCTYPE",
			tokens: []*Token{
				errTok(errNeedSpaceAfterDoctype),
				errTok(errExpectedDoctypeNameButGotEOF),
				{TokenType: DocTypeToken, ForceQuirks: true},
				eofTok(),
			},
		},
		{
			name:   "comment",
			input:  "<!-- foo -->",
			tokens: []*Token{commentTok(" foo "), eofTok()},
		},
		{
			name:   "comment with dashes inside",
			input:  "<!--a-b--c--->",
			tokens: []*Token{errTok(errUnexpectedCharInComment), errTok(errUnexpectedDashAfterDoubleDashComment), commentTok("a-b--c-"), eofTok()},
		},
		{
			name:   "empty comment",
			input:  "<!---->",
			tokens: []*Token{commentTok(""), eofTok()},
		},
		{
			name:   "abrupt comment",
			input:  "<!-->",
			tokens: []*Token{errTok(errIncorrectComment), commentTok(""), eofTok()},
		},
		{
			name:   "unterminated comment",
			input:  "<!--x",
			tokens: []*Token{errTok(errEOFInComment), commentTok("x"), eofTok()},
		},
		{
			name:   "bogus markup declaration",
			input:  "<!ELEMENT br EMPTY>",
			tokens: []*Token{errTok(errExpectedDashesOrDoctype), commentTok("ELEMENT br EMPTY"), eofTok()},
		},
		{
			name:   "processing instruction",
			input:  "<?xml version='1.0'?>",
			tokens: []*Token{errTok(errExpectedTagNameButGotQuestionMark), commentTok("?xml version='1.0'?"), eofTok()},
		},
		{
			name:   "empty tag",
			input:  "<>",
			tokens: []*Token{errTok(errExpectedTagNameButGotRightBracket), charTok("<>"), eofTok()},
		},
		{
			name:   "less-than before a digit",
			input:  "1<2",
			tokens: []*Token{charTok("1"), errTok(errExpectedTagName), charTok("<2"), eofTok()},
		},
		{
			name:   "empty end tag",
			input:  "</>",
			tokens: []*Token{errTok(errExpectedClosingTagButGotBracket), eofTok()},
		},
		{
			name:   "end tag open at end of input",
			input:  "</",
			tokens: []*Token{errTok(errExpectedClosingTagButGotEOF), charTok("</"), eofTok()},
		},
		{
			name:   "bogus end tag",
			input:  "</ x>",
			tokens: []*Token{errTok(errExpectedClosingTagButGotChar), commentTok(" x"), eofTok()},
		},
		{
			name:  "self-closing start tag",
			input: "<br/>",
			tokens: []*Token{
				{TokenType: StartTagToken, TagName: "br", SelfClosing: true},
				eofTok(),
			},
		},
		{
			name:   "self-closing end tag",
			input:  "</p/>",
			tokens: []*Token{errTok(errSelfClosingEndTag), endTag("p"), eofTok()},
		},
		{
			name:   "attributes on end tag are dropped",
			input:  "</p a=b>",
			tokens: []*Token{errTok(errAttributesInEndTag), endTag("p"), eofTok()},
		},
		{
			name:   "unterminated tag name",
			input:  "<div",
			tokens: []*Token{errTok(errEOFInTagName), startTag("div"), eofTok()},
		},
		{
			name:   "unterminated attribute name",
			input:  "<div a",
			tokens: []*Token{errTok(errEOFInAttributeName), startTag("div", "a", ""), eofTok()},
		},
		{
			name:   "unterminated attribute value",
			input:  `<div a="b`,
			tokens: []*Token{errTok(errEOFInAttributeValueDoubleQuote), startTag("div", "a", "b"), eofTok()},
		},
		{
			name:   "case folding",
			input:  "<DiV ClAsS=X></DIV>",
			tokens: []*Token{startTag("div", "class", "X"), endTag("div"), eofTok()},
		},
		{
			name:   "NUL is replaced and reported",
			input:  "a\x00b",
			tokens: []*Token{charTok("a"), errTok(errNullCharacter), charTok("\uFFFDb"), eofTok()},
		},
		{
			name:   "NUL in a tag name is reported before the tag",
			input:  "<a\x00>",
			tokens: []*Token{errTok(errNullCharacter), startTag("a\uFFFD"), eofTok()},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mergeCharacters(tokenize(t, tt.input, tt.cfg))
			if diff := cmp.Diff(tt.tokens, got, ignorePosition); diff != "" {
				t.Errorf("token stream mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEndTagResetsContentModel(t *testing.T) {
	c := &TokenCollector{}
	p := NewHTMLTokenizer([]rune("a</title>&amp;"), c, Config{InitialContentModel: RCDATA, LastStartTag: "title"})
	p.Tokenize()
	assert.Equal(t, PCDATA, p.ContentModel())
	assert.Equal(t, []*Token{charTok("a"), endTag("title"), charTok("&"), eofTok()}, stripPositions(mergeCharacters(c.Tokens)))
}

func TestSinkOverridesContentModel(t *testing.T) {
	rcdata := RCDATA
	var got []*Token
	sink := SinkFunc(func(tok *Token) *Progress {
		got = append(got, tok)
		if tok.TokenType == StartTagToken {
			return MakeProgress(&rcdata)
		}
		return nil
	})
	p := NewHTMLTokenizer([]rune("<x><y></x>"), sink, Config{})
	p.Tokenize()
	if diff := cmp.Diff([]*Token{startTag("x"), charTok("<y>"), endTag("x"), eofTok()}, mergeCharacters(got), ignorePosition); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func stripPositions(tokens []*Token) []*Token {
	out := make([]*Token, len(tokens))
	for i, tok := range tokens {
		c := *tok
		c.Line, c.Column = 0, 0
		out[i] = &c
	}
	return out
}

func TestTokenPositions(t *testing.T) {
	tests := []struct {
		input  string
		index  int
		line   int
		column int
	}{
		{"<!-- foo -->", 0, 1, 12},
		{"<a>\n<b>", 2, 2, 3},
		{"a\n", 0, 2, 0},
		{"\n\n<p>", 1, 3, 3},
		{"<a>", 1, 1, 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			t.Parallel()
			tokens := tokenize(t, tt.input, Config{})
			require.Greater(t, len(tokens), tt.index)
			assert.Equal(t, tt.line, tokens[tt.index].Line, "line of %s", tokens[tt.index])
			assert.Equal(t, tt.column, tokens[tt.index].Column, "column of %s", tokens[tt.index])
		})
	}
}

func TestStepAndState(t *testing.T) {
	c := &TokenCollector{}
	p := NewHTMLTokenizer([]rune("<a>"), c, Config{})
	assert.Equal(t, "Data", p.State())

	require.True(t, p.Step())
	assert.Equal(t, "TagOpen", p.State())
	assert.Equal(t, 1, p.Column())
	require.True(t, p.Step())
	assert.Equal(t, "TagName", p.State())
	require.True(t, p.Step())
	assert.Equal(t, "Data", p.State())
	require.Len(t, c.Tokens, 1)

	assert.False(t, p.Step())
	assert.Equal(t, "Halted", p.State())
	assert.False(t, p.Step())
	require.Len(t, c.Tokens, 2)
	assert.Equal(t, EndOfFileToken, c.Tokens[1].TokenType)
}

const randomAlphabet = "<>/!?-&#;=\"' \tabAZx09\n\x00"

var randomWords = []string{
	"<!--", "-->", "<!DOCTYPE", "PUBLIC", "SYSTEM", "script", "</script", "title",
	"&amp;", "&not", "&#x41", "&#128;", "<a ", "</", "<?", "'", "\"",
}

func randomInput(rnd *rand.Rand) string {
	var b strings.Builder
	n := rnd.Intn(40)
	for i := 0; i < n; i++ {
		if rnd.Intn(3) == 0 {
			b.WriteString(randomWords[rnd.Intn(len(randomWords))])
			continue
		}
		b.WriteByte(randomAlphabet[rnd.Intn(len(randomAlphabet))])
	}
	return b.String()
}

func randomConfig(rnd *rand.Rand) Config {
	cfg := Config{InitialContentModel: ContentModel(rnd.Intn(4))}
	if rnd.Intn(2) == 0 {
		cfg.LastStartTag = "script"
	}
	return cfg
}

func TestTokenizerTotality(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		input, cfg := randomInput(rnd), randomConfig(rnd)
		tokens := tokenize(t, input, cfg)
		require.NotEmpty(t, tokens, "input %q", input)
		for _, tok := range tokens[:len(tokens)-1] {
			require.NotEqual(t, EndOfFileToken, tok.TokenType, "input %q", input)
		}
		require.Equal(t, EndOfFileToken, tokens[len(tokens)-1].TokenType, "input %q", input)
	}
}

func TestCoalescingEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		input, cfg := randomInput(rnd), randomConfig(rnd)
		coalesced := mergeCharacters(tokenize(t, input, cfg))

		cfg.DisableCoalescing = true
		naive := mergeCharacters(tokenize(t, input, cfg))

		if diff := cmp.Diff(naive, coalesced, ignorePosition); diff != "" {
			t.Fatalf("input %q (content model %s): coalesced stream differs (-naive +coalesced):\n%s", input, cfg.InitialContentModel, diff)
		}
	}
}

type errorAt struct {
	Code         string
	Line, Column int
}

func parseErrorsAt(tokens []*Token) []errorAt {
	var errs []errorAt
	for _, tok := range tokens {
		if tok.TokenType == ParseErrorToken {
			errs = append(errs, errorAt{tok.Data, tok.Line, tok.Column})
		}
	}
	return errs
}

func TestNullCharacterErrorPositions(t *testing.T) {
	tests := []struct {
		input string
		want  []errorAt
	}{
		{"a\x00bcd", []errorAt{{errNullCharacter, 1, 2}}},
		{"<a\x00bc>", []errorAt{{errNullCharacter, 1, 3}}},
		{"x\n\x00\x00yz", []errorAt{{errNullCharacter, 2, 1}, {errNullCharacter, 2, 2}}},
		{"<!--a\x00bc-->", []errorAt{{errNullCharacter, 1, 6}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			t.Parallel()
			for _, disable := range []bool{false, true} {
				got := parseErrorsAt(tokenize(t, tt.input, Config{DisableCoalescing: disable}))
				assert.Equal(t, tt.want, got, "coalescing disabled: %t", disable)
			}
		})
	}
}

func TestCoalescingKeepsParseErrorPositions(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		input, cfg := randomInput(rnd), randomConfig(rnd)
		coalesced := parseErrorsAt(tokenize(t, input, cfg))

		cfg.DisableCoalescing = true
		naive := parseErrorsAt(tokenize(t, input, cfg))

		if diff := cmp.Diff(naive, coalesced); diff != "" {
			t.Fatalf("input %q (content model %s): parse error positions differ (-naive +coalesced):\n%s", input, cfg.InitialContentModel, diff)
		}
	}
}

func TestTokenizerLogging(t *testing.T) {
	tests := []struct {
		level logrus.Level
		emits int
		trace bool
	}{
		{logrus.WarnLevel, 0, false},
		{logrus.DebugLevel, 2, false},
		{logrus.TraceLevel, 2, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()
			logger, hook := test.NewNullLogger()
			logger.SetLevel(tt.level)
			tokenize(t, "<a>x", Config{Logger: logger})

			var emits, transitions int
			for _, entry := range hook.AllEntries() {
				switch entry.Message {
				case "emit":
					emits++
					assert.Equal(t, "tokenizer", entry.Data["component"])
				case "transition":
					transitions++
				}
			}
			assert.Equal(t, tt.emits, emits)
			assert.Equal(t, tt.trace, transitions > 0)
		})
	}
}
