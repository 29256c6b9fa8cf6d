package parser

// TokenSink receives every token the tokenizer emits, in order. The returned
// Progress may override the content model; the override is applied before
// the tokenizer consumes another character.
type TokenSink interface {
	ProcessToken(t *Token) *Progress
}

// Progress carries what the consumer of the tokens wants the tokenizer to
// know before it continues.
type Progress struct {
	ContentModel *ContentModel
}

// MakeProgress creates a Progress. A nil content model means no override.
func MakeProgress(contentModel *ContentModel) *Progress {
	return &Progress{
		ContentModel: contentModel,
	}
}

// SinkFunc adapts a function to the TokenSink interface.
type SinkFunc func(t *Token) *Progress

// ProcessToken calls f(t).
func (f SinkFunc) ProcessToken(t *Token) *Progress {
	return f(t)
}

// TokenCollector is a TokenSink that records every token and never
// overrides the content model.
type TokenCollector struct {
	Tokens []*Token
}

// ProcessToken records t.
func (c *TokenCollector) ProcessToken(t *Token) *Progress {
	c.Tokens = append(c.Tokens, t)
	return nil
}
