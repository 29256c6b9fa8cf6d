package parser

// Parse error codes carried in the Data field of a ParseErrorToken. They are
// informational only; the tokenizer never changes course because of them.
const (
	// input stream
	errNullCharacter = "null-character"

	// tags
	errExpectedTagNameButGotRightBracket = "expected-tag-name-but-got-right-bracket"
	errExpectedTagNameButGotQuestionMark = "expected-tag-name-but-got-question-mark"
	errExpectedTagName                   = "expected-tag-name"
	errExpectedClosingTagButGotBracket   = "expected-closing-tag-but-got-right-bracket"
	errExpectedClosingTagButGotEOF       = "expected-closing-tag-but-got-eof"
	errExpectedClosingTagButGotChar      = "expected-closing-tag-but-got-char"
	errEOFInTagName                      = "eof-in-tag-name"
	errSelfClosingEndTag                 = "self-closing-end-tag"
	errAttributesInEndTag                = "attributes-in-end-tag"
	errUnexpectedEOFAfterSelfClosing     = "unexpected-eof-after-self-closing"
	errUnexpectedCharAfterSelfClosing    = "unexpected-character-after-self-closing"

	// attributes
	errExpectedAttributeNameButGotEOF      = "expected-attribute-name-but-got-eof"
	errInvalidCharacterInAttributeName     = "invalid-character-in-attribute-name"
	errEOFInAttributeName                  = "eof-in-attribute-name"
	errDuplicateAttribute                  = "duplicate-attribute"
	errExpectedEndOfTagButGotEOF           = "expected-end-of-tag-but-got-eof"
	errInvalidCharacterAfterAttributeName  = "invalid-character-after-attribute-name"
	errExpectedAttributeValueButGotBracket = "expected-attribute-value-but-got-right-bracket"
	errExpectedAttributeValueButGotEOF     = "expected-attribute-value-but-got-eof"
	errEqualsInUnquotedAttributeValue      = "equals-in-unquoted-attribute-value"
	errEOFInAttributeValueDoubleQuote      = "eof-in-attribute-value-double-quote"
	errEOFInAttributeValueSingleQuote      = "eof-in-attribute-value-single-quote"
	errEOFInAttributeValueNoQuotes         = "eof-in-attribute-value-no-quotes"
	errUnexpectedCharInUnquotedValue       = "unexpected-character-in-unquoted-attribute-value"
	errUnexpectedEOFAfterAttributeValue    = "unexpected-EOF-after-attribute-value"
	errUnexpectedCharAfterAttributeValue   = "unexpected-character-after-attribute-value"

	// comments
	errExpectedDashesOrDoctype              = "expected-dashes-or-doctype"
	errIncorrectComment                     = "incorrect-comment"
	errEOFInComment                         = "eof-in-comment"
	errEOFInCommentEndDash                  = "eof-in-comment-end-dash"
	errEOFInCommentDoubleDash               = "eof-in-comment-double-dash"
	errUnexpectedDashAfterDoubleDashComment = "unexpected-dash-after-double-dash-in-comment"
	errUnexpectedCharInComment              = "unexpected-char-in-comment"

	// doctype
	errNeedSpaceAfterDoctype                = "need-space-after-doctype"
	errExpectedDoctypeNameButGotBracket     = "expected-doctype-name-but-got-right-bracket"
	errExpectedDoctypeNameButGotEOF         = "expected-doctype-name-but-got-eof"
	errEOFInDoctypeName                     = "eof-in-doctype-name"
	errEOFInDoctype                         = "eof-in-doctype"
	errExpectedSpaceOrRightBracketInDoctype = "expected-space-or-right-bracket-in-doctype"
	errUnexpectedEndOfDoctype               = "unexpected-end-of-doctype"
	errUnexpectedCharInDoctype              = "unexpected-char-in-doctype"

	// character references
	errExpectedNumericEntity            = "expected-numeric-entity"
	errNumericEntityWithoutSemicolon    = "numeric-entity-without-semicolon"
	errIllegalWindows1252Entity         = "illegal-windows-1252-entity"
	errIllegalCodepointForNumericEntity = "illegal-codepoint-for-numeric-entity"
	errExpectedNamedEntity              = "expected-named-entity"
	errNamedEntityWithoutSemicolon      = "named-entity-without-semicolon"
)
