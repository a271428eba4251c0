package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/topicapi/corpus"
)

// two clean blocks of documents: words 0-2 and words 3-5, the second
// block with lower weights so that the singular values differ
func twoBlockCorpus() *corpus.Corpus {
	c := &corpus.Corpus{
		VocabSize: 6,
		DocNum:    6,
		Docs:      make(map[uint32][]*corpus.WordCount),
	}
	for doc := uint32(0); doc < 6; doc += 1 {
		base, weight := uint32(0), float32(1.0)
		if doc >= 3 {
			base, weight = 3, 0.5
		}
		for w := base; w < base+3; w += 1 {
			c.Docs[doc] = append(c.Docs[doc], &corpus.WordCount{WordId: w, Weight: weight})
		}
	}
	return c
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{"lsi": LSI, "LSI": LSI, "lda": LDA, "LdA": LDA}
	for name, want := range cases {
		algo, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, algo)
	}

	for _, name := range []string{"", "lsa", "hdp", "lda "} {
		_, err := ParseAlgorithm(name)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, name)
	}
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "lsi", LSI.String())
	assert.Equal(t, "lda", LDA.String())
	assert.Equal(t, "Algorithm(7)", Algorithm(7).String())
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, err := Train(LSI, twoBlockCorpus(), DefaultOptions(0))
	assert.ErrorIs(t, err, ErrBadTopicNum)

	_, err = Train(Algorithm(7), twoBlockCorpus(), DefaultOptions(2))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = Train(LDA, &corpus.Corpus{}, DefaultOptions(2))
	assert.ErrorIs(t, err, corpus.ErrEmpty)
}

func TestTrainDispatch(t *testing.T) {
	opts := DefaultOptions(2)
	opts.Iterations = 20

	for _, algo := range []Algorithm{LSI, LDA} {
		m, err := Train(algo, twoBlockCorpus(), opts)
		require.NoError(t, err)
		assert.Equal(t, algo, m.Algorithm())
		assert.Equal(t, 2, m.NumTopics())
		assert.Equal(t, 6, m.VocabSize())
	}
}
