// module.go - Module-LWE vectors and matrices over R_q (C6).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

// Vector is a length-k column of Poly elements, R_q^k.
type Vector struct {
	polys []*Poly
}

// NewVector allocates a zeroed Vector of k Standard-form polynomials.
func NewVector(k int) *Vector {
	v := &Vector{polys: make([]*Poly, k)}
	for i := range v.polys {
		v.polys[i] = new(Poly)
	}
	return v
}

// K returns the number of polynomial entries in v.
func (v *Vector) K() int {
	return len(v.polys)
}

// At returns the i'th polynomial of v.
func (v *Vector) At(i int) *Poly {
	return v.polys[i]
}

// NTT transforms every entry of v from Standard to NTT form in place.
func (v *Vector) NTT() error {
	for _, p := range v.polys {
		if err := p.NTT(); err != nil {
			return err
		}
	}
	return nil
}

// InvNTT transforms every entry of v from NTT to Standard form in place.
func (v *Vector) InvNTT() error {
	for _, p := range v.polys {
		if err := p.InvNTT(); err != nil {
			return err
		}
	}
	return nil
}

// Add sets v = a + b, entrywise. a and b must have matching length and
// form.
func (v *Vector) Add(a, b *Vector) error {
	if len(a.polys) != len(b.polys) || len(v.polys) != len(a.polys) {
		return ErrParameterSetMismatch
	}
	for i := range v.polys {
		if err := v.polys[i].Add(a.polys[i], b.polys[i]); err != nil {
			return err
		}
	}
	return nil
}

// Dot sets dst to the NTT-domain inner product of v and b (both already
// NTT form), accumulating the basecase product of each entry pair.
func (v *Vector) Dot(dst *Poly, b *Vector) error {
	if len(v.polys) != len(b.polys) {
		return ErrParameterSetMismatch
	}
	var term Poly
	for i := range v.polys {
		if err := term.MulNTT(v.polys[i], b.polys[i]); err != nil {
			return err
		}
		if i == 0 {
			*dst = term
		} else if err := dst.Add(dst, &term); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes v as the concatenation of each entry's 12-bit
// encoding.
func (v *Vector) Encode() []byte {
	out := make([]byte, 0, len(v.polys)*polySize)
	for _, p := range v.polys {
		out = append(out, p.Encode()...)
	}
	return out
}

// DecodeVector deserializes a length-k Vector from exactly k*polySize
// bytes.
func DecodeVector(b []byte, k int) (*Vector, error) {
	if len(b) != k*polySize {
		return nil, ErrInvalidKeySize
	}
	v := &Vector{polys: make([]*Poly, k)}
	for i := range v.polys {
		p, err := DecodePoly(b[i*polySize : (i+1)*polySize])
		if err != nil {
			return nil, err
		}
		v.polys[i] = p
	}
	return v, nil
}

// Compress lossily serializes v to d bits per coefficient, entry by entry.
func (v *Vector) Compress(d int) []byte {
	out := make([]byte, 0, len(v.polys)*d*kyberN/8)
	for _, p := range v.polys {
		out = append(out, p.Compress(d)...)
	}
	return out
}

// DecompressVector is the approximate inverse of Vector.Compress.
func DecompressVector(b []byte, k, d int) (*Vector, error) {
	chunk := d * kyberN / 8
	if len(b) != k*chunk {
		return nil, ErrInvalidCipherTextSize
	}
	v := &Vector{polys: make([]*Poly, k)}
	for i := range v.polys {
		p, err := DecompressPoly(b[i*chunk:(i+1)*chunk], d)
		if err != nil {
			return nil, err
		}
		v.polys[i] = p
	}
	return v, nil
}

// Matrix is a k-by-k grid of Poly entries over R_q, stored as k row
// Vectors.
type Matrix struct {
	rows []*Vector
}

// NewMatrix allocates a zeroed k-by-k Matrix.
func NewMatrix(k int) *Matrix {
	m := &Matrix{rows: make([]*Vector, k)}
	for i := range m.rows {
		m.rows[i] = NewVector(k)
	}
	return m
}

// At returns the Poly at row i, column j.
func (m *Matrix) At(i, j int) *Poly {
	return m.rows[i].polys[j]
}

// Row returns row i as a Vector.
func (m *Matrix) Row(i int) *Vector {
	return m.rows[i]
}

// Transpose returns a new Matrix that is the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	k := len(m.rows)
	t := NewMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			*t.rows[i].polys[j] = *m.rows[j].polys[i]
		}
	}
	return t
}

// MatMul sets dst = m * v (matrix-vector product, NTT domain): each entry
// of dst is the dot product of a row of m with v. m's rows and v must
// already be NTT form.
func (m *Matrix) MatMul(dst *Vector, v *Vector) error {
	if len(dst.polys) != len(m.rows) {
		return ErrParameterSetMismatch
	}
	for i, row := range m.rows {
		if err := row.Dot(dst.polys[i], v); err != nil {
			return err
		}
	}
	return nil
}
