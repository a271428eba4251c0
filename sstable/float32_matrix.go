package sstable

// internal Float32 matrix representation
type Float32Matrix struct {
	nrow uint32
	ncol uint32
	data []float32
}

// NewFloat32Matrix creates a new Float32Matrix with r rows and c columns.
// The layout is row major, same as Uint32Matrix. It panics if either
// dimension is zero.
func NewFloat32Matrix(r, c uint32) *Float32Matrix {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Float32Matrix{
		nrow: r,
		ncol: c,
		data: make([]float32, r*c),
	}
}

// get the shape of the matrix
func (m *Float32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float32Matrix) Get(r, c uint32) float32 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Float32Matrix) Set(r, c uint32, val float32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// GetRow returns the r-th row of the matrix. The returned slice
// aliases the underlying storage and must not be modified.
func (m *Float32Matrix) GetRow(r uint32) []float32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol]
}

// NormalizeRows scales every row so that it sums to one. Rows
// summing to zero are left untouched.
func (m *Float32Matrix) NormalizeRows() {
	for r := uint32(0); r < m.nrow; r += 1 {
		row := m.data[r*m.ncol : (r+1)*m.ncol]
		sum := Float32VectorSum(row)
		if sum <= 0 {
			continue
		}
		for i := range row {
			row[i] /= sum
		}
	}
}
