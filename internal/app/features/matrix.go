package features

// Matrix is a cepstral feature matrix. Data[band][frame]; every row has the
// same length.
type Matrix struct {
	Data [][]float64
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	data := make([][]float64, rows)
	for r := range data {
		data[r] = make([]float64, cols)
	}
	return Matrix{Data: data}
}

// Rows is the number of coefficient bands.
func (m Matrix) Rows() int {
	return len(m.Data)
}

// Cols is the number of frames, zero for an empty matrix.
func (m Matrix) Cols() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// IsRagged reports whether rows have differing lengths.
func (m Matrix) IsRagged() bool {
	cols := m.Cols()
	for _, row := range m.Data {
		if len(row) != cols {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := Matrix{Data: make([][]float64, len(m.Data))}
	for r, row := range m.Data {
		out.Data[r] = append([]float64(nil), row...)
	}
	return out
}
