package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/bobonovski/topicapi/sstable"
)

var (
	ErrCorruptModel      = errors.New("model: corrupted model file")
	ErrAlgorithmMismatch = errors.New("model: persisted algorithm does not match")
)

// first line of a persisted model: "algo,topicNum,vocabSize,alpha"
type header struct {
	algo      Algorithm
	topicNum  uint32
	vocabSize uint32
	alpha     float64
}

func writeHeader(w io.Writer, h header) error {
	_, err := fmt.Fprintf(w, "%s,%d,%d,%g\n", h.algo, h.topicNum, h.vocabSize, h.alpha)
	return err
}

func readHeader(r *bufio.Reader) (header, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return header{}, fmt.Errorf("%w: header: %v", ErrCorruptModel, err)
	}

	vals := strings.Split(strings.TrimSpace(line), ",")
	if len(vals) != 4 {
		return header{}, fmt.Errorf("%w: header %q", ErrCorruptModel, line)
	}
	algo, err := ParseAlgorithm(vals[0])
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	topicNum, err := strconv.ParseUint(vals[1], 10, 32)
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	vocabSize, err := strconv.ParseUint(vals[2], 10, 32)
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	alpha, err := strconv.ParseFloat(vals[3], 64)
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return header{}, fmt.Errorf("%w: alpha %q", ErrCorruptModel, vals[3])
	}
	return header{
		algo:      algo,
		topicNum:  uint32(topicNum),
		vocabSize: uint32(vocabSize),
		alpha:     alpha,
	}, nil
}

// Load deserializes a model saved with Model.Save. The persisted
// algorithm must be algo. opts supplies the inference settings, which
// are not persisted.
func Load(r io.Reader, algo Algorithm, opts Options) (Model, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if h.algo != algo {
		return nil, fmt.Errorf("%w: want %s, found %s", ErrAlgorithmMismatch, algo, h.algo)
	}

	m, err := sstable.ReadFloat32(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if k, v := m.Shape(); k != h.topicNum || v != h.vocabSize {
		return nil, fmt.Errorf("%w: matrix is %dx%d, header says %dx%d",
			ErrCorruptModel, k, v, h.topicNum, h.vocabSize)
	}

	switch h.algo {
	case LSI:
		return NewLSI(m), nil
	case LDA:
		if err := checkDistribution(m); err != nil {
			return nil, err
		}
		return NewLDA(m, h.alpha, opts), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, h.algo)
}

// topic-word probabilities must be non-negative
func checkDistribution(phi *sstable.Float32Matrix) error {
	k, v := phi.Shape()
	for kidx := uint32(0); kidx < k; kidx += 1 {
		for w := uint32(0); w < v; w += 1 {
			if p := phi.Get(kidx, w); p < 0 {
				return fmt.Errorf("%w: negative probability %g at (%d,%d)",
					ErrCorruptModel, p, kidx, w)
			}
		}
	}
	return nil
}

// SaveFile writes m to fn, replacing any previous model. The model is
// written to a temporary file next to fn and renamed over it, so fn is
// never left half written.
func SaveFile(fn string, m Model) error {
	out, err := os.CreateTemp(filepath.Dir(fn), "."+filepath.Base(fn)+".*")
	if err != nil {
		return err
	}
	tmp := out.Name()
	defer os.Remove(tmp)
	defer out.Close()

	if err := m.Save(out); err != nil {
		return err
	}
	if err := out.Chmod(0o644); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, fn); err != nil {
		return err
	}
	log.Infof("saved %s model with %d topics to %s", m.Algorithm(), m.NumTopics(), fn)
	return nil
}

// LoadFile reads a model of the given algorithm from fn.
func LoadFile(fn string, algo Algorithm, opts Options) (Model, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f, algo, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	log.Infof("loaded %s model with %d topics from %s", algo, m.NumTopics(), fn)
	return m, nil
}
