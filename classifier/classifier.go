// Package classifier ranks the topics of free text against a trained
// topic model.
//
// A Classifier owns a model and the dictionary the model was trained
// with. It is built once, either by reloading a persisted model or by
// training a new one from the corpus in the resource directory, and is
// immutable afterwards:
//
//	cfg, _ := config.Load("config.yaml")
//	c, err := classifier.New(cfg, classifier.Options{Trained: true, Algorithm: "lda"})
//	if err != nil {
//		// errors.Is(err, classifier.ErrUnsupportedAlgorithm) or
//		// errors.Is(err, classifier.ErrModelNotTrained)
//	}
//	topics := c.Classify("the stock market fell sharply", 5)
//
// Classify is safe for concurrent use.
package classifier

import (
	"sort"

	log "github.com/golang/glog"

	"github.com/bobonovski/topicapi/config"
	"github.com/bobonovski/topicapi/corpus"
	"github.com/bobonovski/topicapi/dictionary"
	"github.com/bobonovski/topicapi/model"
)

const (
	DefaultDimension = 10
	DefaultAlgorithm = "lda"
	DefaultTopics    = 100
)

// TopicScore is a (topic id, suitability) pair.
type TopicScore = model.Topic

// TermWeight is a vocabulary term and its weight within a topic.
type TermWeight struct {
	Term   string
	Weight float64
}

// Options selects how the model is obtained.
type Options struct {
	// Trained reloads a persisted model instead of training a new one.
	Trained bool
	// Algorithm is "lsi" or "lda", case-insensitive.
	Algorithm string
	// Topics is the number of topics to train; ignored when Trained.
	Topics int
}

func DefaultOptions() Options {
	return Options{
		Trained:   true,
		Algorithm: DefaultAlgorithm,
		Topics:    DefaultTopics,
	}
}

type Classifier struct {
	algo      model.Algorithm
	model     model.Model
	dict      *dictionary.Dictionary
	tokenizer *dictionary.Tokenizer
}

// New builds a Classifier. A nil cfg means config.Default(). The
// algorithm name is validated before any file is touched.
func New(cfg *config.Config, opts Options) (*Classifier, error) {
	algo, err := model.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	var (
		m    model.Model
		dict *dictionary.Dictionary
	)
	if opts.Trained {
		m, dict, err = load(cfg, algo)
	} else {
		m, dict, err = train(cfg, algo, opts.Topics)
	}
	if err != nil {
		return nil, &NotTrainedError{Algorithm: algo.String(), Cause: err}
	}

	return &Classifier{
		algo:  algo,
		model: m,
		dict:  dict,
		tokenizer: &dictionary.Tokenizer{
			MinLen:   cfg.Tokenizer.MinLen,
			MaxLen:   cfg.Tokenizer.MaxLen,
			Lower:    cfg.Tokenizer.Lower,
			Deaccent: cfg.Tokenizer.Deaccent,
		},
	}, nil
}

func modelOptions(cfg *config.Config, topics int) model.Options {
	return model.Options{
		Topics:              topics,
		Alpha:               cfg.LDA.Alpha,
		Eta:                 cfg.LDA.Eta,
		Iterations:          cfg.LDA.Iterations,
		InferenceIterations: cfg.LDA.InferenceIterations,
		BurnIn:              cfg.LDA.BurnIn,
		Seed:                cfg.LDA.Seed,
		MinimumProbability:  cfg.LDA.MinimumProbability,
	}
}

// load reads a persisted model and the dictionary it was trained with.
func load(cfg *config.Config, algo model.Algorithm) (model.Model, *dictionary.Dictionary, error) {
	m, err := model.LoadFile(cfg.ModelPath(algo.String()), algo, modelOptions(cfg, 0))
	if err != nil {
		return nil, nil, err
	}
	dict, err := dictionary.Load(cfg.DictionaryPath())
	if err != nil {
		return nil, nil, err
	}
	if err := checkVocabulary(dict, m.VocabSize()); err != nil {
		return nil, nil, err
	}
	return m, dict, nil
}

// train fits a new model on the resource corpus and persists it next
// to the corpus.
func train(cfg *config.Config, algo model.Algorithm, topics int) (model.Model, *dictionary.Dictionary, error) {
	dict, err := dictionary.Load(cfg.DictionaryPath())
	if err != nil {
		return nil, nil, err
	}
	dat, err := corpus.Load(cfg.CorpusPath())
	if err != nil {
		return nil, nil, err
	}
	if err := checkVocabulary(dict, int(dat.VocabSize)); err != nil {
		return nil, nil, err
	}

	m, err := model.Train(algo, dat, modelOptions(cfg, topics))
	if err != nil {
		return nil, nil, err
	}
	if err := model.SaveFile(cfg.ModelPath(algo.String()), m); err != nil {
		return nil, nil, err
	}
	return m, dict, nil
}

// Classify ranks the topics of text by suitability, strongest first,
// and returns at most dimension of them. Topics of equal weight keep
// ascending id order. A non-positive dimension yields an empty result.
// Words unknown to the dictionary are ignored.
func (c *Classifier) Classify(text string, dimension int) []TopicScore {
	if dimension <= 0 {
		return []TopicScore{}
	}

	bow := c.dict.Doc2Bow(c.tokenizer.Tokenize(text))
	topics := c.model.Infer(bow)
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Weight > topics[j].Weight
	})
	if len(topics) > dimension {
		topics = topics[:dimension]
	}
	if log.V(1) {
		log.Infof("classified %d known terms into %d topics", len(bow), len(topics))
	}
	return topics
}

// ClassifyDefault is Classify with DefaultDimension.
func (c *Classifier) ClassifyDefault(text string) []TopicScore {
	return c.Classify(text, DefaultDimension)
}

// TopicTerms returns the topn strongest terms of topic.
func (c *Classifier) TopicTerms(topic, topn int) ([]TermWeight, error) {
	scores, err := c.model.TopicTerms(topic, topn)
	if err != nil {
		return nil, err
	}
	terms := make([]TermWeight, 0, len(scores))
	for _, s := range scores {
		term, ok := c.dict.Term(s.WordId)
		if !ok {
			// trained vocabulary may be wider than the dictionary
			continue
		}
		terms = append(terms, TermWeight{Term: term, Weight: s.Weight})
	}
	return terms, nil
}

// Topics returns the topn strongest terms of each of the first n topics.
// A negative n yields no topics.
func (c *Classifier) Topics(n, topn int) ([][]TermWeight, error) {
	if n > c.model.NumTopics() {
		n = c.model.NumTopics()
	}
	if n < 0 {
		n = 0
	}
	topics := make([][]TermWeight, 0, n)
	for k := 0; k < n; k += 1 {
		terms, err := c.TopicTerms(k, topn)
		if err != nil {
			return nil, err
		}
		topics = append(topics, terms)
	}
	return topics, nil
}

func (c *Classifier) Algorithm() string { return c.algo.String() }

func (c *Classifier) NumTopics() int { return c.model.NumTopics() }

func (c *Classifier) Dictionary() *dictionary.Dictionary { return c.dict }
