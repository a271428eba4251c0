package classifier

import (
	"errors"
	"fmt"

	"github.com/bobonovski/topicapi/dictionary"
	"github.com/bobonovski/topicapi/model"
)

var (
	// ErrUnsupportedAlgorithm is returned by New for algorithm names
	// other than "lsi" and "lda".
	ErrUnsupportedAlgorithm = model.ErrUnsupportedAlgorithm
	// ErrModelNotTrained matches every NotTrainedError.
	ErrModelNotTrained    = errors.New("classifier: algorithm was not trained or properly loaded")
	ErrVocabularyMismatch = errors.New("classifier: dictionary ids exceed model vocabulary")
)

// NotTrainedError reports why a model could not be loaded or trained.
type NotTrainedError struct {
	Algorithm string
	Cause     error
}

func (e *NotTrainedError) Error() string {
	return fmt.Sprintf("%v (%s): %v", ErrModelNotTrained, e.Algorithm, e.Cause)
}

func (e *NotTrainedError) Unwrap() error { return e.Cause }

func (e *NotTrainedError) Is(target error) bool { return target == ErrModelNotTrained }

func checkVocabulary(dict *dictionary.Dictionary, vocabSize int) error {
	if dict.MaxID() >= vocabSize {
		return fmt.Errorf("%w: max id %d, vocabulary size %d",
			ErrVocabularyMismatch, dict.MaxID(), vocabSize)
	}
	return nil
}
