package model

import (
	"errors"
	"fmt"
	"io"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"

	"github.com/bobonovski/topicapi/corpus"
	"github.com/bobonovski/topicapi/dictionary"
	"github.com/bobonovski/topicapi/sstable"
)

var ErrFactorization = errors.New("model: singular value decomposition failed")

// weights below this magnitude are treated as zero
const lsiEpsilon = 1e-9

// LSIModel is a latent semantic indexing model. Topics are the leading left
// singular vectors of the term-document matrix.
type LSIModel struct {
	topicNum  uint32
	vocabSize uint32

	// [k, w]-th element is the weight of word w in topic k
	projection *sstable.Float32Matrix
}

// NewLSI wraps an existing topic x vocabulary projection.
func NewLSI(projection *sstable.Float32Matrix) *LSIModel {
	k, v := projection.Shape()
	return &LSIModel{
		topicNum:   k,
		vocabSize:  v,
		projection: projection,
	}
}

// TrainLSI factorizes the term-document matrix of dat and keeps the
// topicNum strongest singular directions. The number of topics is
// capped by the rank of the factorization.
func TrainLSI(dat *corpus.Corpus, topicNum int) (*LSIModel, error) {
	if topicNum <= 0 {
		return nil, ErrBadTopicNum
	}
	a, err := dat.TermDocMatrix()
	if err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	var u mat.Dense
	svd.UTo(&u)

	vocabSize, rank := u.Dims()
	k := topicNum
	if k > rank {
		log.Warningf("lsi: requested %d topics but rank is %d, truncating", topicNum, rank)
		k = rank
	}
	log.Infof("lsi: %d topics over %d terms, leading singular value %f",
		k, vocabSize, svd.Values(nil)[0])

	projection := sstable.NewFloat32Matrix(uint32(k), uint32(vocabSize))
	for kidx := 0; kidx < k; kidx += 1 {
		for w := 0; w < vocabSize; w += 1 {
			projection.Set(uint32(kidx), uint32(w), float32(u.At(w, kidx)))
		}
	}
	return NewLSI(projection), nil
}

func (this *LSIModel) Algorithm() Algorithm { return LSI }

func (this *LSIModel) NumTopics() int { return int(this.topicNum) }

func (this *LSIModel) VocabSize() int { return int(this.vocabSize) }

// Infer projects bow onto the topic space. Topics with a zero
// projection are omitted, so an empty document yields no topics.
func (this *LSIModel) Infer(bow []dictionary.BowEntry) []Topic {
	weights := make([]float64, this.topicNum)
	for _, e := range bow {
		if e.ID >= this.vocabSize {
			continue
		}
		for k := uint32(0); k < this.topicNum; k += 1 {
			weights[k] += float64(e.Count) * float64(this.projection.Get(k, e.ID))
		}
	}

	topics := make([]Topic, 0, this.topicNum)
	for k, w := range weights {
		if math.Abs(w) < lsiEpsilon {
			continue
		}
		topics = append(topics, Topic{Id: k, Weight: w})
	}
	return topics
}

// TopicTerms orders terms by the magnitude of their weight; the sign
// is kept in the result.
func (this *LSIModel) TopicTerms(topic, topn int) ([]TermScore, error) {
	if topic < 0 || topic >= int(this.topicNum) {
		return nil, fmt.Errorf("%w: %d", ErrTopicOutOfRange, topic)
	}
	return topTerms(this.projection.GetRow(uint32(topic)), topn, true), nil
}

func (this *LSIModel) Save(w io.Writer) error {
	if err := writeHeader(w, header{
		algo:      LSI,
		topicNum:  this.topicNum,
		vocabSize: this.vocabSize,
	}); err != nil {
		return err
	}
	return sstable.WriteFloat32(w, this.projection)
}
