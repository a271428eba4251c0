package model

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bobonovski/topicapi/corpus"
	"github.com/bobonovski/topicapi/dictionary"
	"github.com/bobonovski/topicapi/sstable"
)

var (
	ErrUnsupportedAlgorithm = errors.New("model: algorithm not supported")
	ErrBadTopicNum          = errors.New("model: number of topics must be positive")
	ErrTopicOutOfRange      = errors.New("model: topic id out of range")
)

// Algorithm enumerates the supported topic models.
type Algorithm int

const (
	LSI Algorithm = iota
	LDA
)

// ParseAlgorithm maps a case-insensitive name ("lsi" or "lda") to an
// Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "lsi":
		return LSI, nil
	case "lda":
		return LDA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

func (a Algorithm) String() string {
	switch a {
	case LSI:
		return "lsi"
	case LDA:
		return "lda"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Topic is the weight of one topic for a document.
type Topic struct {
	Id     int
	Weight float64
}

// TermScore is the weight of one vocabulary term within a topic.
type TermScore struct {
	WordId uint32
	Weight float64
}

// the common interface trained topic models follow
type Model interface {
	Algorithm() Algorithm
	NumTopics() int
	VocabSize() int
	// infer topic weights of a bag-of-words document, in topic id order
	Infer(bow []dictionary.BowEntry) []Topic
	// top terms of a topic, strongest first
	TopicTerms(topic, topn int) ([]TermScore, error)
	// serialize the model, readable by Load
	Save(w io.Writer) error
}

// Options controls training and, for LDA, query inference.
type Options struct {
	Topics              int
	Alpha               float64 // 0 means 1/Topics
	Eta                 float64
	Iterations          int
	InferenceIterations int
	BurnIn              int
	Seed                int64
	MinimumProbability  float64
}

// DefaultOptions returns options matching the library defaults for
// the given number of topics.
func DefaultOptions(topics int) Options {
	return Options{
		Topics:              topics,
		Eta:                 0.01,
		Iterations:          1000,
		InferenceIterations: 50,
		BurnIn:              10,
		Seed:                1,
		MinimumProbability:  0.01,
	}
}

// Train builds a new model of the given algorithm from dat.
func Train(algo Algorithm, dat *corpus.Corpus, opts Options) (Model, error) {
	if opts.Topics <= 0 {
		return nil, ErrBadTopicNum
	}
	var (
		m   Model
		err error
	)
	switch algo {
	case LSI:
		m, err = TrainLSI(dat, opts.Topics)
	case LDA:
		m, err = TrainLDA(dat, opts)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, algo)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func topTerms(row []float32, topn int, byAbs bool) []TermScore {
	idx := sstable.TopIndices(row, topn, byAbs)
	terms := make([]TermScore, 0, len(idx))
	for _, w := range idx {
		terms = append(terms, TermScore{WordId: w, Weight: float64(row[w])})
	}
	return terms
}
