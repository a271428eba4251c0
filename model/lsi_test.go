package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/topicapi/dictionary"
)

func TestTrainLSI(t *testing.T) {
	m, err := TrainLSI(twoBlockCorpus(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumTopics())
	assert.Equal(t, 6, m.VocabSize())

	// the strongest topic is spanned by the first block
	topics := m.Infer([]dictionary.BowEntry{{ID: 0, Count: 1}, {ID: 1, Count: 1}})
	require.NotEmpty(t, topics)
	best := topics[0]
	for _, topic := range topics[1:] {
		if math.Abs(topic.Weight) > math.Abs(best.Weight) {
			best = topic
		}
	}
	assert.Equal(t, 0, best.Id)

	terms, err := m.TopicTerms(0, 3)
	require.NoError(t, err)
	require.Len(t, terms, 3)
	ids := []uint32{terms[0].WordId, terms[1].WordId, terms[2].WordId}
	assert.ElementsMatch(t, []uint32{0, 1, 2}, ids)
}

func TestTrainLSICapsTopicsAtRank(t *testing.T) {
	m, err := TrainLSI(twoBlockCorpus(), 50)
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumTopics())
}

func TestLSIInferEmpty(t *testing.T) {
	m, err := TrainLSI(twoBlockCorpus(), 2)
	require.NoError(t, err)

	assert.Empty(t, m.Infer(nil))
	// ids outside the model vocabulary are ignored
	assert.Empty(t, m.Infer([]dictionary.BowEntry{{ID: 99, Count: 3}}))
}

func TestLSITopicTermsOutOfRange(t *testing.T) {
	m, err := TrainLSI(twoBlockCorpus(), 2)
	require.NoError(t, err)

	_, err = m.TopicTerms(2, 5)
	assert.ErrorIs(t, err, ErrTopicOutOfRange)
	_, err = m.TopicTerms(-1, 5)
	assert.ErrorIs(t, err, ErrTopicOutOfRange)
}
