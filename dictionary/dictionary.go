// Package dictionary maps vocabulary terms to integer ids and turns
// tokenized text into bag-of-words vectors.
//
// The on-disk format is the plain text dictionary layout produced by
// gensim's Dictionary.save_as_text: an optional document count on the
// first line, then one "id<TAB>term<TAB>docfreq" line per term. Files
// ending in ".bz2" are transparently (de)compressed.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	log "github.com/golang/glog"
)

var (
	ErrBadLine       = errors.New("dictionary: invalid line")
	ErrDuplicateTerm = errors.New("dictionary: duplicate term")
)

// BowEntry is one (term id, count) element of a bag-of-words vector.
type BowEntry struct {
	ID    uint32
	Count uint32
}

type Dictionary struct {
	token2id map[string]uint32
	id2token map[uint32]string
	dfs      map[uint32]uint32
	numDocs  uint32
	maxID    int
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		token2id: make(map[string]uint32),
		id2token: make(map[uint32]string),
		dfs:      make(map[uint32]uint32),
		maxID:    -1,
	}
}

// Add registers term under id with the given document frequency.
func (d *Dictionary) Add(id uint32, term string, docFreq uint32) error {
	if prev, ok := d.token2id[term]; ok {
		return fmt.Errorf("%w: %q is defined as id %d and as id %d", ErrDuplicateTerm, term, prev, id)
	}
	d.token2id[term] = id
	d.id2token[id] = term
	d.dfs[id] = docFreq
	if int(id) > d.maxID {
		d.maxID = int(id)
	}
	return nil
}

// SetNumDocs records the number of documents the dictionary was built from.
func (d *Dictionary) SetNumDocs(n uint32) { d.numDocs = n }

func (d *Dictionary) ID(term string) (uint32, bool) {
	id, ok := d.token2id[term]
	return id, ok
}

func (d *Dictionary) Term(id uint32) (string, bool) {
	term, ok := d.id2token[id]
	return term, ok
}

func (d *Dictionary) DocFreq(id uint32) uint32 { return d.dfs[id] }

func (d *Dictionary) Len() int { return len(d.token2id) }

// MaxID returns the largest term id, or -1 for an empty dictionary.
func (d *Dictionary) MaxID() int { return d.maxID }

func (d *Dictionary) NumDocs() uint32 { return d.numDocs }

// Doc2Bow counts the known tokens and returns them sorted by term id.
// Tokens missing from the dictionary are dropped.
func (d *Dictionary) Doc2Bow(tokens []string) []BowEntry {
	counts := make(map[uint32]uint32)
	for _, tok := range tokens {
		if id, ok := d.token2id[tok]; ok {
			counts[id] += 1
		}
	}

	bow := make([]BowEntry, 0, len(counts))
	for id, cnt := range counts {
		bow = append(bow, BowEntry{ID: id, Count: cnt})
	}
	sort.Slice(bow, func(i, j int) bool { return bow[i].ID < bow[j].ID })
	return bow
}

// Load reads a dictionary from fn.
func Load(fn string) (*Dictionary, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(fn, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	d, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	log.Infof("loaded dictionary of %d terms from %s", d.Len(), fn)
	return d, nil
}

// Read parses the text dictionary format from r.
func Read(r io.Reader) (*Dictionary, error) {
	d := New()

	lineIdx := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineIdx += 1
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineIdx == 1 {
			if n, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32); err == nil {
				d.numDocs = uint32(n)
				continue
			}
			log.Warning("dictionary text does not contain num_docs on the first line")
		}

		vals := strings.Split(line, "\t")
		if len(vals) != 3 {
			return nil, fmt.Errorf("%w %d: %q", ErrBadLine, lineIdx, line)
		}
		id, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadLine, lineIdx, err)
		}
		df, err := strconv.ParseUint(vals[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadLine, lineIdx, err)
		}
		if err := d.Add(uint32(id), vals[1], uint32(df)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineIdx, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Save writes the dictionary to fn, sorted by term.
func (d *Dictionary) Save(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if !strings.HasSuffix(fn, ".bz2") {
		if err := d.Write(out); err != nil {
			return err
		}
		return out.Close()
	}

	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return err
	}
	if err := d.Write(bz); err != nil {
		bz.Close()
		return err
	}
	if err := bz.Close(); err != nil {
		return err
	}
	return out.Close()
}

// Write serializes the dictionary in the text format read by Read.
func (d *Dictionary) Write(w io.Writer) error {
	terms := make([]string, 0, len(d.token2id))
	for term := range d.token2id {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%d\n", d.numDocs)
	for _, term := range terms {
		id := d.token2id[term]
		fmt.Fprintf(out, "%d\t%s\t%d\n", id, term, d.dfs[id])
	}
	return out.Flush()
}
