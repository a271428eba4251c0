package sstable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat32MatrixShape(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(3))

	r, c := m.Shape()

	assert.Equal(t, uint32(2), r)
	assert.Equal(t, uint32(3), c)
}

func TestFloat32MatrixGet(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(3))

	val := float32(0.0)
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += float32(1.0)
		}
	}

	assert.Equal(t, float32(0), m.Get(0, 0))
	assert.Equal(t, float32(1), m.Get(0, 1))
	assert.Equal(t, float32(2), m.Get(0, 2))
	assert.Equal(t, float32(3), m.Get(1, 0))
	assert.Equal(t, float32(4), m.Get(1, 1))
	assert.Equal(t, float32(5), m.Get(1, 2))
	assert.Equal(t, []float32{3, 4, 5}, m.GetRow(1))
}

func TestFloat32MatrixBounds(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(2))

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Get(2, 0) })
	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Set(0, 2, 1) })
	assert.PanicsWithValue(t, ErrBadShape, func() { NewFloat32Matrix(0, 3) })
}

func TestFloat32MatrixNormalizeRows(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(2))
	m.Set(0, 0, 1)
	m.Set(0, 1, 3)

	m.NormalizeRows()

	assert.InDelta(t, 0.25, m.Get(0, 0), 1e-6)
	assert.InDelta(t, 0.75, m.Get(0, 1), 1e-6)
	// all-zero rows stay zero
	assert.Equal(t, float32(0), m.Get(1, 0))
	assert.Equal(t, float32(0), m.Get(1, 1))
}
