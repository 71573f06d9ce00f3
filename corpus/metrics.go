// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package corpus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work done by a Corpus.
type Metrics struct {
	documents prometheus.Counter
	bytes     prometheus.Counter
	failures  prometheus.Counter
	tokens    *prometheus.CounterVec
	words     prometheus.Counter
}

// NewMetrics creates the corpus counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		documents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fsmtok",
			Subsystem: "corpus",
			Name:      "documents_total",
			Help:      "Total number of documents tokenized",
		}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fsmtok",
			Subsystem: "corpus",
			Name:      "bytes_total",
			Help:      "Total number of bytes read from documents",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fsmtok",
			Subsystem: "corpus",
			Name:      "read_failures_total",
			Help:      "Total number of documents that could not be read",
		}),
		tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fsmtok",
			Subsystem: "corpus",
			Name:      "tokens_total",
			Help:      "Total number of tokens emitted, per class",
		}, []string{"class"}),
		words: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fsmtok",
			Subsystem: "corpus",
			Name:      "words_total",
			Help:      "Total number of tokens selected by the word filter",
		}),
	}
}

func (m *Metrics) observeDocument(size int) {
	if m == nil {
		return
	}
	m.documents.Inc()
	m.bytes.Add(float64(size))
}

func (m *Metrics) observeFailure() {
	if m == nil {
		return
	}
	m.failures.Inc()
}

func (m *Metrics) observeTokens(class string, n int) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues(class).Add(float64(n))
}

func (m *Metrics) observeWords(n int) {
	if m == nil {
		return
	}
	m.words.Add(float64(n))
}
