package parser

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the tokenizer produces.
type Metrics struct {
	tokensTotal      *prometheus.CounterVec
	parseErrorsTotal *prometheus.CounterVec
	documentsTotal   prometheus.Counter
}

// NewMetrics registers the tokenizer counters with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	return &Metrics{
		tokensTotal: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: "htmltok",
			Name:      "tokens_total",
			Help:      "Total number of tokens emitted, by token type.",
		}, []string{"type"}),
		parseErrorsTotal: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: "htmltok",
			Name:      "parse_errors_total",
			Help:      "Total number of parse errors emitted, by error code.",
		}, []string{"code"}),
		documentsTotal: promauto.With(registerer).NewCounter(prometheus.CounterOpts{
			Namespace: "htmltok",
			Name:      "documents_total",
			Help:      "Total number of documents tokenized to the end of input.",
		}),
	}
}

// InstrumentedSink counts every token before handing it to the next sink.
type InstrumentedSink struct {
	next    TokenSink
	metrics *Metrics
}

// NewInstrumentedSink returns a sink that counts tokens in m before passing
// them to next.
func NewInstrumentedSink(next TokenSink, m *Metrics) *InstrumentedSink {
	return &InstrumentedSink{next: next, metrics: m}
}

// ProcessToken records t and returns the next sink's Progress.
func (s *InstrumentedSink) ProcessToken(t *Token) *Progress {
	s.metrics.tokensTotal.WithLabelValues(t.TokenType.String()).Inc()
	switch t.TokenType {
	case ParseErrorToken:
		s.metrics.parseErrorsTotal.WithLabelValues(t.Data).Inc()
	case EndOfFileToken:
		s.metrics.documentsTotal.Inc()
	}
	return s.next.ProcessToken(t)
}
