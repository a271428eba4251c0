package model

import (
	"fmt"
	"io"
	"math/rand"

	log "github.com/golang/glog"
	"github.com/james-bowman/nlp"
	xrand "golang.org/x/exp/rand"

	"github.com/bobonovski/topicapi/corpus"
	"github.com/bobonovski/topicapi/dictionary"
	"github.com/bobonovski/topicapi/sstable"
)

type LDAModel struct {
	alpha     float32 // document topic mixture hyperparameter
	topicNum  uint32
	vocabSize uint32

	// [k, w]-th element is p(w | k), rows sum to one
	phi *sstable.Float32Matrix

	// fold-in sampler settings
	iterations int
	burnIn     int
	seed       int64
	minProb    float64
}

// NewLDA wraps a trained topic-word distribution. Inference settings
// are taken from opts; alpha of zero means 1/topics.
func NewLDA(phi *sstable.Float32Matrix, alpha float64, opts Options) *LDAModel {
	k, v := phi.Shape()
	if alpha <= 0 {
		alpha = 1.0 / float64(k)
	}
	iterations := opts.InferenceIterations
	if iterations <= 0 {
		iterations = 1
	}
	return &LDAModel{
		alpha:      float32(alpha),
		topicNum:   k,
		vocabSize:  v,
		phi:        phi,
		iterations: iterations,
		burnIn:     opts.BurnIn,
		seed:       opts.Seed,
		minProb:    opts.MinimumProbability,
	}
}

// TrainLDA fits a variational LDA model on dat and keeps its
// normalized topic-word distribution. opts.Seed seeds both training and
// inference, so the same corpus always yields the same model.
func TrainLDA(dat *corpus.Corpus, opts Options) (*LDAModel, error) {
	if opts.Topics <= 0 {
		return nil, ErrBadTopicNum
	}
	m, err := dat.TermDocMatrix()
	if err != nil {
		return nil, err
	}

	alpha := opts.Alpha
	if alpha <= 0 {
		alpha = 1.0 / float64(opts.Topics)
	}

	trainer := nlp.NewLatentDirichletAllocation(opts.Topics)
	trainer.Alpha = alpha
	if opts.Eta > 0 {
		trainer.Eta = opts.Eta
	}
	if opts.Iterations > 0 {
		trainer.Iterations = opts.Iterations
	}
	// a fixed seed and a single worker make training repeatable
	trainer.Rnd = xrand.New(xrand.NewSource(uint64(opts.Seed)))
	trainer.Processes = 1
	log.Infof("lda: training %d topics over %d documents, %d terms",
		opts.Topics, dat.DocNum, dat.VocabSize)
	trainer.Fit(m)

	components := trainer.Components()
	k, v := components.Dims()
	phi := sstable.NewFloat32Matrix(uint32(k), uint32(v))
	for kidx := 0; kidx < k; kidx += 1 {
		for w := 0; w < v; w += 1 {
			phi.Set(uint32(kidx), uint32(w), float32(components.At(kidx, w)))
		}
	}
	phi.NormalizeRows()

	return NewLDA(phi, alpha, opts), nil
}

func (this *LDAModel) Algorithm() Algorithm { return LDA }

func (this *LDAModel) NumTopics() int { return int(this.topicNum) }

func (this *LDAModel) VocabSize() int { return int(this.vocabSize) }

// Theta estimates the topic mixture of bow with a collapsed gibbs
// sampler run against the fixed topic-word distribution. Samples after
// the burn-in are averaged. The sampler is seeded identically on
// every call, so the result depends only on bow.
func (this *LDAModel) Theta(bow []dictionary.BowEntry) []float64 {
	words := expandWords(bow, this.vocabSize)
	theta := make([]float64, this.topicNum)
	if len(words) == 0 {
		for k := range theta {
			theta[k] = 1.0 / float64(this.topicNum)
		}
		return theta
	}

	rng := rand.New(rand.NewSource(this.seed))
	dt := sstable.NewUint32Matrix(uint32(1), this.topicNum) // doc-topic count table
	assign := make([]uint32, len(words))

	// randomly assign topic to word
	for i := range words {
		k := uint32(rng.Int31n(int32(this.topicNum)))
		dt.Incr(0, k, uint32(1))
		assign[i] = k
	}

	sum := make([]float64, this.topicNum)
	samples := 0
	cumsum := make([]float32, this.topicNum)
	for iterIdx := 0; iterIdx < this.iterations; iterIdx += 1 {
		for i, w := range words {
			k := assign[i]
			dt.Decr(0, k, uint32(1))

			// resample the topic
			for kidx := uint32(0); kidx < this.topicNum; kidx += 1 {
				p := (this.alpha + float32(dt.Get(0, kidx))) * this.phi.Get(kidx, w)
				if kidx == 0 {
					cumsum[kidx] = p
				} else {
					cumsum[kidx] = cumsum[kidx-1] + p
				}
			}
			if total := cumsum[this.topicNum-1]; total > 0 {
				u := rng.Float32() * total
				for kidx := uint32(0); kidx < this.topicNum; kidx += 1 {
					if u < cumsum[kidx] {
						k = kidx
						break
					}
				}
			}

			dt.Incr(0, k, uint32(1))
			assign[i] = k
		}

		if iterIdx >= this.burnIn {
			for k := uint32(0); k < this.topicNum; k += 1 {
				sum[k] += float64(dt.Get(0, k))
			}
			samples += 1
		}
	}
	if samples == 0 {
		for k := uint32(0); k < this.topicNum; k += 1 {
			sum[k] = float64(dt.Get(0, k))
		}
		samples = 1
	}

	n := float64(sstable.Uint32VectorSum(dt.GetRow(0)))
	denom := n + float64(this.topicNum)*float64(this.alpha)
	for k := range theta {
		theta[k] = (sum[k]/float64(samples) + float64(this.alpha)) / denom
	}
	return theta
}

// Infer returns the topic mixture of bow, dropping topics whose
// probability is below the configured minimum.
func (this *LDAModel) Infer(bow []dictionary.BowEntry) []Topic {
	theta := this.Theta(bow)
	topics := make([]Topic, 0, len(theta))
	for k, p := range theta {
		if p < this.minProb {
			continue
		}
		topics = append(topics, Topic{Id: k, Weight: p})
	}
	return topics
}

func (this *LDAModel) TopicTerms(topic, topn int) ([]TermScore, error) {
	if topic < 0 || topic >= int(this.topicNum) {
		return nil, fmt.Errorf("%w: %d", ErrTopicOutOfRange, topic)
	}
	return topTerms(this.phi.GetRow(uint32(topic)), topn, false), nil
}

func (this *LDAModel) Save(w io.Writer) error {
	if err := writeHeader(w, header{
		algo:      LDA,
		topicNum:  this.topicNum,
		vocabSize: this.vocabSize,
		alpha:     float64(this.alpha),
	}); err != nil {
		return err
	}
	return sstable.WriteFloat32(w, this.phi)
}

// expand bag-of-words counts into a word sequence, skipping ids the
// model has never seen
func expandWords(bow []dictionary.BowEntry, vocabSize uint32) []uint32 {
	var words []uint32
	for _, e := range bow {
		if e.ID >= vocabSize {
			continue
		}
		for i := uint32(0); i < e.Count; i += 1 {
			words = append(words, e.ID)
		}
	}
	return words
}
