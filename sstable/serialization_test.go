package sstable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32Serialization(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(3))
	m.Set(0, 1, 0.5)
	m.Set(1, 2, -1.25)

	var buf bytes.Buffer
	require.NoError(t, WriteFloat32(&buf, m))

	// zero values are not written, negative ones are
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	got, err := ReadFloat32(&buf)
	require.NoError(t, err)

	r, c := got.Shape()
	assert.Equal(t, uint32(2), r)
	assert.Equal(t, uint32(3), c)
	assert.Equal(t, float32(0.5), got.Get(0, 1))
	assert.Equal(t, float32(-1.25), got.Get(1, 2))
	assert.Equal(t, float32(0), got.Get(0, 0))
}

func TestReadFloat32Corrupted(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"bad shape":    "2\n",
		"zero shape":   "0,3\n",
		"short triple": "2,2\n0,1\n",
		"bad value":    "2,2\n0,1,abc\n",
		"out of range": "2,2\n2,0,1.0\n",
		"nan value":    "2,2\n0,0,NaN\n",
		"inf value":    "2,2\n1,1,-Inf\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFloat32(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}
}
