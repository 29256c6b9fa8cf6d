package parser

import (
	"io"

	"github.com/pkg/errors"
)

// Parser wires a tokenizer to the sinks that consume its output.
type Parser struct {
	Tokenizer *HTMLTokenizer
	Switcher  *ContentModelSwitcher

	collector *TokenCollector
	started   bool
}

type parserOptions struct {
	metrics  *Metrics
	noSwitch bool
}

// ParserOption changes how NewParser wires the pipeline.
type ParserOption func(*parserOptions)

// WithMetrics counts every token the tokenizer emits in m.
func WithMetrics(m *Metrics) ParserOption {
	return func(o *parserOptions) {
		o.metrics = m
	}
}

// WithoutContentModelSwitching leaves the content model alone after start
// tags, so only end tags and the initial configuration change it.
func WithoutContentModelSwitching() ParserOption {
	return func(o *parserOptions) {
		o.noSwitch = true
	}
}

// NewParser reads and preprocesses htmlIn and prepares a tokenizer whose
// tokens are collected for Start to return.
func NewParser(htmlIn io.Reader, cfg Config, opts ...ParserOption) (*Parser, error) {
	var o parserOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &Parser{collector: &TokenCollector{}}
	var sink TokenSink = p.collector
	if !o.noSwitch {
		p.Switcher = NewContentModelSwitcher(sink)
		sink = p.Switcher
	}
	if o.metrics != nil {
		sink = NewInstrumentedSink(sink, o.metrics)
	}

	tokenizer, err := NewHTMLTokenizerFromReader(htmlIn, sink, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating tokenizer")
	}
	p.Tokenizer = tokenizer
	return p, nil
}

// Start tokenizes the whole input and returns every token emitted, ending
// with the end-of-file token.
func (p *Parser) Start() ([]*Token, error) {
	if p.started {
		return nil, errors.New("parser already started")
	}
	p.started = true
	p.Tokenizer.Tokenize()
	return p.collector.Tokens, nil
}

// ContentModelSwitcher plays the part of tree construction for the content
// model: after a start tag for an element with raw or escapable raw text
// content it tells the tokenizer which content model to continue in.
type ContentModelSwitcher struct {
	next TokenSink
}

// NewContentModelSwitcher returns a switcher that forwards every token to next.
func NewContentModelSwitcher(next TokenSink) *ContentModelSwitcher {
	return &ContentModelSwitcher{next: next}
}

var contentModelForTag = map[string]ContentModel{
	"title":     RCDATA,
	"textarea":  RCDATA,
	"style":     CDATA,
	"script":    CDATA,
	"xmp":       CDATA,
	"iframe":    CDATA,
	"noembed":   CDATA,
	"noframes":  CDATA,
	"noscript":  CDATA,
	"plaintext": PLAINTEXT,
}

// ProcessToken forwards t and overrides the content model after the start
// tags listed in contentModelForTag.
func (s *ContentModelSwitcher) ProcessToken(t *Token) *Progress {
	progress := s.next.ProcessToken(t)
	if t.TokenType != StartTagToken {
		return progress
	}
	if cm, ok := contentModelForTag[t.TagName]; ok {
		return MakeProgress(&cm)
	}
	return progress
}
