package parser

import "fmt"

type tokenizerState uint

const (
	dataState tokenizerState = iota
	characterReferenceInDataState
	tagOpenState
	closeTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	haltedState
)

var tokenizerStateNames = [...]string{
	dataState:                                "Data",
	characterReferenceInDataState:            "CharacterReferenceInData",
	tagOpenState:                             "TagOpen",
	closeTagOpenState:                        "CloseTagOpen",
	tagNameState:                             "TagName",
	beforeAttributeNameState:                 "BeforeAttributeName",
	attributeNameState:                       "AttributeName",
	afterAttributeNameState:                  "AfterAttributeName",
	beforeAttributeValueState:                "BeforeAttributeValue",
	attributeValueDoubleQuotedState:          "AttributeValueDoubleQuoted",
	attributeValueSingleQuotedState:          "AttributeValueSingleQuoted",
	attributeValueUnquotedState:              "AttributeValueUnquoted",
	afterAttributeValueQuotedState:           "AfterAttributeValueQuoted",
	selfClosingStartTagState:                 "SelfClosingStartTag",
	bogusCommentState:                        "BogusComment",
	markupDeclarationOpenState:               "MarkupDeclarationOpen",
	commentStartState:                        "CommentStart",
	commentStartDashState:                    "CommentStartDash",
	commentState:                             "Comment",
	commentEndDashState:                      "CommentEndDash",
	commentEndState:                          "CommentEnd",
	doctypeState:                             "Doctype",
	beforeDoctypeNameState:                   "BeforeDoctypeName",
	doctypeNameState:                         "DoctypeName",
	afterDoctypeNameState:                    "AfterDoctypeName",
	beforeDoctypePublicIdentifierState:       "BeforeDoctypePublicIdentifier",
	doctypePublicIdentifierDoubleQuotedState: "DoctypePublicIdentifierDoubleQuoted",
	doctypePublicIdentifierSingleQuotedState: "DoctypePublicIdentifierSingleQuoted",
	afterDoctypePublicIdentifierState:        "AfterDoctypePublicIdentifier",
	beforeDoctypeSystemIdentifierState:       "BeforeDoctypeSystemIdentifier",
	doctypeSystemIdentifierDoubleQuotedState: "DoctypeSystemIdentifierDoubleQuoted",
	doctypeSystemIdentifierSingleQuotedState: "DoctypeSystemIdentifierSingleQuoted",
	afterDoctypeSystemIdentifierState:        "AfterDoctypeSystemIdentifier",
	bogusDoctypeState:                        "BogusDoctype",
	haltedState:                              "Halted",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return fmt.Sprintf("tokenizerState(%d)", uint(s))
}

// a parserStateHandler is a func that takes in a rune and a bool representing
// the end of the input and returns whether the rune must be reprocessed,
// along with the next state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

// consumesInput reports whether the driver consumes a rune before running
// the state. The others look ahead into the stream themselves.
func consumesInput(state tokenizerState) bool {
	switch state {
	case characterReferenceInDataState, closeTagOpenState, markupDeclarationOpenState:
		return false
	default:
		return true
	}
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case characterReferenceInDataState:
		return p.characterReferenceInDataStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case closeTagOpenState:
		return p.closeTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	}

	panic(fmt.Sprintf("parser: no handler for tokenizer state %s", state))
}
