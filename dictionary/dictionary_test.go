package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "3\n2\tcat\t2\n0\tdog\t1\n1\tmarket\t3\n"

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, uint32(3), d.NumDocs())
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.MaxID())

	id, ok := d.ID("cat")
	assert.True(t, ok)
	assert.Equal(t, uint32(2), id)
	term, ok := d.Term(1)
	assert.True(t, ok)
	assert.Equal(t, "market", term)
	assert.Equal(t, uint32(3), d.DocFreq(1))

	_, ok = d.ID("bird")
	assert.False(t, ok)
}

func TestReadWithoutNumDocs(t *testing.T) {
	d, err := Read(strings.NewReader("0\tdog\t1\n"))
	require.NoError(t, err)

	assert.Equal(t, uint32(0), d.NumDocs())
	assert.Equal(t, 1, d.Len())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("1\n0\tdog\n"))
	assert.ErrorIs(t, err, ErrBadLine)

	_, err = Read(strings.NewReader("1\nx\tdog\t1\n"))
	assert.ErrorIs(t, err, ErrBadLine)

	_, err = Read(strings.NewReader("1\n0\tdog\t1\n1\tdog\t1\n"))
	assert.ErrorIs(t, err, ErrDuplicateTerm)
}

func TestEmptyDictionary(t *testing.T) {
	d := New()
	assert.Equal(t, -1, d.MaxID())
	assert.Empty(t, d.Doc2Bow([]string{"cat"}))
}

func TestDoc2Bow(t *testing.T) {
	d, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	bow := d.Doc2Bow([]string{"cat", "unknown", "dog", "cat"})
	assert.Equal(t, []BowEntry{{ID: 0, Count: 1}, {ID: 2, Count: 2}}, bow)

	assert.NotNil(t, d.Doc2Bow(nil))
	assert.Empty(t, d.Doc2Bow([]string{"zebra", "unicorn"}))
}

func TestSaveLoad(t *testing.T) {
	d, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	for _, name := range []string{"wordids.txt", "wordids.txt.bz2"} {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(t.TempDir(), name)
			require.NoError(t, d.Save(fn))

			got, err := Load(fn)
			require.NoError(t, err)
			assert.Equal(t, d, got)
		})
	}
}

func TestLoadCompressedIsNotPlainText(t *testing.T) {
	d, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	fn := filepath.Join(t.TempDir(), "wordids.txt.bz2")
	require.NoError(t, d.Save(fn))

	raw, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "BZh"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "wordids.txt.bz2"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptBz2(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "wordids.txt.bz2")
	require.NoError(t, os.WriteFile(fn, []byte(sample), 0o644))

	_, err := Load(fn)
	assert.Error(t, err)
}
