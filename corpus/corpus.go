package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/james-bowman/sparse"
)

const banner = "%%MatrixMarket matrix coordinate real general"

var (
	ErrBadHeader = errors.New("corpus: not a matrix market coordinate file")
	ErrBadEntry  = errors.New("corpus: malformed matrix market entry")
	ErrEmpty     = errors.New("corpus: no documents or no terms")
)

// Corpus is a sparse document-term weight matrix, typically tf-idf.
type Corpus struct {
	VocabSize uint32
	DocNum    uint32
	NNZ       uint64
	Docs      map[uint32][]*WordCount
}

type WordCount struct {
	WordId uint32
	Weight float32
}

// Load reads a corpus in Matrix Market coordinate format:
//
//	%%MatrixMarket matrix coordinate real general
//	% optional comments
//	docNum vocabSize nnz
//	docId wordId weight
//	...
//
// docId and wordId are 1-based in the file and 0-based in the Corpus.
func Load(fn string) (*Corpus, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Corpus{Docs: make(map[uint32][]*WordCount)}
	headerSeen := false
	sizeSeen := false
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		line := strings.TrimSpace(scanner.Text())
		if !headerSeen {
			if !strings.EqualFold(strings.Join(strings.Fields(line), " "), banner) {
				return nil, fmt.Errorf("%w: %s: %q", ErrBadHeader, fn, line)
			}
			headerSeen = true
			continue
		}
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		vals := strings.Fields(line)
		if len(vals) != 3 {
			return nil, fmt.Errorf("%w: %s:%d: %q", ErrBadEntry, fn, lineIdx, line)
		}

		if !sizeSeen {
			docNum, err1 := strconv.ParseUint(vals[0], 10, 32)
			vocabSize, err2 := strconv.ParseUint(vals[1], 10, 32)
			nnz, err3 := strconv.ParseUint(vals[2], 10, 64)
			if err := errors.Join(err1, err2, err3); err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", ErrBadEntry, fn, lineIdx, err)
			}
			c.DocNum = uint32(docNum)
			c.VocabSize = uint32(vocabSize)
			c.NNZ = nnz
			sizeSeen = true
			continue
		}

		docId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil || docId == 0 || docId > uint64(c.DocNum) {
			return nil, fmt.Errorf("%w: %s:%d: bad document id %q", ErrBadEntry, fn, lineIdx, vals[0])
		}
		wordId, err := strconv.ParseUint(vals[1], 10, 32)
		if err != nil || wordId == 0 || wordId > uint64(c.VocabSize) {
			return nil, fmt.Errorf("%w: %s:%d: bad word id %q", ErrBadEntry, fn, lineIdx, vals[1])
		}
		weight, err := strconv.ParseFloat(vals[2], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrBadEntry, fn, lineIdx, err)
		}

		doc := uint32(docId - 1)
		c.Docs[doc] = append(c.Docs[doc], &WordCount{
			WordId: uint32(wordId - 1),
			Weight: float32(weight),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !headerSeen {
		return nil, fmt.Errorf("%w: %s: empty file", ErrBadHeader, fn)
	}
	if !sizeSeen {
		return nil, fmt.Errorf("%w: %s: size line not found", ErrBadEntry, fn)
	}

	log.Infof("number of documents %d", c.DocNum)
	log.Infof("vocabulary size %d", c.VocabSize)
	return c, nil
}

// Save writes c in Matrix Market coordinate format, documents in
// ascending id order.
func Save(fn string, c *Corpus) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, banner)

	nnz := 0
	docIds := make([]uint32, 0, len(c.Docs))
	for doc, wcs := range c.Docs {
		docIds = append(docIds, doc)
		nnz += len(wcs)
	}
	sort.Slice(docIds, func(i, j int) bool { return docIds[i] < docIds[j] })

	fmt.Fprintf(w, "%d %d %d\n", c.DocNum, c.VocabSize, nnz)
	for _, doc := range docIds {
		for _, wc := range c.Docs[doc] {
			fmt.Fprintf(w, "%d %d %g\n", doc+1, wc.WordId+1, wc.Weight)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return out.Close()
}

// TermDocMatrix returns the corpus as a VocabSize x DocNum sparse
// matrix, the orientation expected by the training routines.
func (c *Corpus) TermDocMatrix() (*sparse.CSR, error) {
	if c.DocNum == 0 || c.VocabSize == 0 {
		return nil, ErrEmpty
	}
	m := sparse.NewDOK(int(c.VocabSize), int(c.DocNum))
	for doc, wcs := range c.Docs {
		for _, wc := range wcs {
			m.Set(int(wc.WordId), int(doc), m.At(int(wc.WordId), int(doc))+float64(wc.Weight))
		}
	}
	return m.ToCSR(), nil
}
