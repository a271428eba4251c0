package sstable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var ErrCorrupted = errors.New("sstable: data corrupted")

// WriteFloat32 serializes m in the sparse text layout: a "rows,cols"
// shape line followed by one "row,col,value" line per nonzero element.
func WriteFloat32(w io.Writer, m *Float32Matrix) error {
	out := bufio.NewWriter(w)

	r, c := m.Shape()
	// write the matrix shape
	if _, err := fmt.Fprintf(out, "%d,%d\n", r, c); err != nil {
		return err
	}

	var val float32
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			val = m.Get(ridx, cidx)
			if val != 0 { // only write out nonzero value
				if _, err := fmt.Fprintf(out, "%d,%d,%s\n", ridx, cidx,
					strconv.FormatFloat(float64(val), 'g', -1, 32)); err != nil {
					return err
				}
			}
		}
	}
	return out.Flush()
}

// ReadFloat32 deserializes a matrix written by WriteFloat32, consuming
// r until EOF.
func ReadFloat32(r io.Reader) (*Float32Matrix, error) {
	lineIdx := 0
	var tmp *Float32Matrix

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineIdx += 1
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		if tmp == nil {
			row, col, err := parseShape(txt)
			if err != nil {
				return nil, err
			}
			tmp = NewFloat32Matrix(row, col)
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrCorrupted, lineIdx, txt)
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
		val, err := strconv.ParseFloat(value[2], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("%w: line %d: non-finite value %q", ErrCorrupted, lineIdx, value[2])
		}
		nrow, ncol := tmp.Shape()
		if uint32(ridx) >= nrow || uint32(cidx) >= ncol {
			return nil, fmt.Errorf("%w: line %d: index (%d,%d) outside %dx%d",
				ErrCorrupted, lineIdx, ridx, cidx, nrow, ncol)
		}
		tmp.Set(uint32(ridx), uint32(cidx), float32(val))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("%w: shape not found", ErrCorrupted)
	}

	return tmp, nil
}

func parseShape(txt string) (uint32, uint32, error) {
	shape := strings.Split(txt, ",")
	if len(shape) != 2 {
		return 0, 0, fmt.Errorf("%w: shape not found: %s", ErrCorrupted, txt)
	}
	row, err := strconv.ParseUint(shape[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	col, err := strconv.ParseUint(shape[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if row == 0 || col == 0 {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorrupted, ErrBadShape)
	}
	return uint32(row), uint32(col), nil
}
