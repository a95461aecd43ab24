// ring.go - Elements of R_q = Z_q[X]/(X^n + 1) (C4).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

// polyForm tags whether a Poly's coefficients are in normal order
// (Standard) or bit-reversed evaluation order (NTT).
type polyForm uint8

const (
	formStandard polyForm = iota
	formNTT
)

// Poly is an element of R_q = Z_q[X]/(X^n + 1): coeffs[0] + X*coeffs[1] +
// ... + X^(n-1)*coeffs[n-1], every coefficient canonical in [0, q). A Poly
// additionally tracks whether it holds a Standard-form or NTT-form
// representation; operations that require a specific form return
// ErrFormMismatch otherwise.
type Poly struct {
	coeffs [kyberN]uint16
	form   polyForm
}

// NTT transforms p from Standard to NTT form in place.
func (p *Poly) NTT() error {
	if p.form != formStandard {
		return ErrFormMismatch
	}
	p.ntt()
	p.form = formNTT
	return nil
}

// InvNTT transforms p from NTT to Standard form in place.
func (p *Poly) InvNTT() error {
	if p.form != formNTT {
		return ErrFormMismatch
	}
	p.invNTT()
	p.form = formStandard
	return nil
}

// IsNTT reports whether p currently holds an NTT-domain representation.
func (p *Poly) IsNTT() bool {
	return p.form == formNTT
}

// Add sets p = a + b. a and b must share the same form.
func (p *Poly) Add(a, b *Poly) error {
	if a.form != b.form {
		return ErrFormMismatch
	}
	for i := range p.coeffs {
		p.coeffs[i] = addModQ(a.coeffs[i], b.coeffs[i])
	}
	p.form = a.form
	return nil
}

// Sub sets p = a - b. a and b must share the same form.
func (p *Poly) Sub(a, b *Poly) error {
	if a.form != b.form {
		return ErrFormMismatch
	}
	for i := range p.coeffs {
		p.coeffs[i] = subModQ(a.coeffs[i], b.coeffs[i])
	}
	p.form = a.form
	return nil
}

// MulNTT sets p = a * b, the NTT-domain (pointwise, basecase) product. a
// and b must both already be in NTT form.
func (p *Poly) MulNTT(a, b *Poly) error {
	if a.form != formNTT || b.form != formNTT {
		return ErrFormMismatch
	}
	basecaseMul(p, a, b)
	p.form = formNTT
	return nil
}

// IsZero reports whether every coefficient of p is zero.
func (p *Poly) IsZero() bool {
	var acc uint16
	for _, c := range p.coeffs {
		acc |= c
	}
	return acc == 0
}

// Encode serializes p's coefficients as 12-bit little-endian fields
// (encode_12 from spec.md section 4.2).
func (p *Poly) Encode() []byte {
	return encodeCoeffs(p.coeffs[:], 12)
}

// DecodePoly deserializes a Poly from exactly polySize bytes of 12-bit
// little-endian fields, reducing each field mod q.
func DecodePoly(b []byte) (*Poly, error) {
	if len(b) != polySize {
		return nil, ErrInvalidKeySize
	}
	coeffs := decodeCoeffs(b, kyberN, 12)
	p := new(Poly)
	for i, c := range coeffs {
		p.coeffs[i] = barrettReduce(uint32(c))
	}
	return p, nil
}

// compressCoeff maps a canonical coefficient x into [0, 2^d) via
// round(x * 2^d / q), using round-half-up on the halved numerator.
func compressCoeff(x uint16, d int) uint16 {
	return uint16((((uint32(x) << uint(d)) + kyberQ/2) / kyberQ) & ((1 << uint(d)) - 1))
}

// decompressCoeff is the approximate inverse of compressCoeff: round(y *
// q / 2^d).
func decompressCoeff(y uint16, d int) uint16 {
	return uint16(((uint32(y) * kyberQ) + (1 << uint(d-1))) >> uint(d))
}

// Compress lossily serializes p to d bits per coefficient (Compress_q
// composed with encode_d from spec.md section 4.2).
func (p *Poly) Compress(d int) []byte {
	out := make([]uint16, kyberN)
	for i, c := range p.coeffs {
		out[i] = compressCoeff(c, d)
	}
	return encodeCoeffs(out, d)
}

// DecompressPoly is the approximate inverse of Poly.Compress.
func DecompressPoly(b []byte, d int) (*Poly, error) {
	if len(b) != d*kyberN/8 {
		return nil, ErrInvalidCipherTextSize
	}
	in := decodeCoeffs(b, kyberN, d)
	p := new(Poly)
	for i, y := range in {
		p.coeffs[i] = decompressCoeff(y, d)
	}
	return p, nil
}

// FromMsg decodes a SymSize-byte message into a Poly with each bit blown
// up into a coefficient of either 0 or round(q/2), i.e. Decompress(msg, 1).
func FromMsg(msg []byte) (*Poly, error) {
	if len(msg) != SymSize {
		return nil, ErrInvalidMessageSize
	}
	p := new(Poly)
	for i, v := range msg {
		for j := 0; j < 8; j++ {
			mask := -((uint16(v) >> uint(j)) & 1)
			p.coeffs[8*i+j] = mask & ((kyberQ + 1) / 2)
		}
	}
	return p, nil
}

// ToMsg is the approximate inverse of FromMsg: Compress(p, 1), packed back
// into SymSize bytes.
func (p *Poly) ToMsg() []byte {
	msg := make([]byte, SymSize)
	for i := 0; i < SymSize; i++ {
		var v byte
		for j := 0; j < 8; j++ {
			t := compressCoeff(p.coeffs[8*i+j], 1)
			v |= byte(t << uint(j))
		}
		msg[i] = v
	}
	return msg
}

// loadLittleEndian loads the first n bytes of x into a uint64, least
// significant byte first.
func loadLittleEndian(x []byte, n int) uint64 {
	var r uint64
	for i, v := range x[:n] {
		r |= uint64(v) << uint(8*i)
	}
	return r
}

// cbdMasks[eta] is the bit-counting mask cbd uses, one nonzero bit of
// every eta-bit group.
var cbdMasks = map[int]uint64{
	2: 0x5555555555555555,
	3: 0x249249249249,
}

// CBD samples a Poly whose coefficients follow the centered binomial
// distribution with parameter eta, consuming exactly eta*n/4 bytes of buf.
// eta must be 2 or 3 (round-3's eta1/eta2 range).
func CBD(buf []byte, eta int) *Poly {
	mask, ok := cbdMasks[eta]
	if !ok {
		panic("kyber: eta must be 2 or 3")
	}

	p := new(Poly)
	switch eta {
	case 2:
		m32 := uint32(mask)
		for i := 0; i < kyberN/8; i++ {
			t := uint32(loadLittleEndian(buf[4*i:], 4))
			d := (t & m32) + ((t >> 1) & m32)
			for j := 0; j < 8; j++ {
				a := uint16((d >> uint(4*j)) & 0x3)
				b := uint16((d >> uint(4*j+2)) & 0x3)
				p.coeffs[8*i+j] = subModQ(a, b)
			}
		}
	case 3:
		for i := 0; i < kyberN/4; i++ {
			t := loadLittleEndian(buf[3*i:], 3)
			var d uint64
			for j := 0; j < 3; j++ {
				d += (t >> uint(j)) & mask
			}
			for j := 0; j < 4; j++ {
				a := uint16((d >> uint(6*j)) & 0x7)
				b := uint16((d >> uint(6*j+3)) & 0x7)
				p.coeffs[4*i+j] = subModQ(a, b)
			}
		}
	}
	return p
}

// Parse streams uniformly-random-looking coefficients out of an open XOF,
// extracting two 12-bit candidates from every 3 bytes and rejecting any
// that are >= q, squeezing additional blocks for as long as it takes
// (spec.md section 4.3: "never fails"; section 4.4's two-candidate-per-
// three-bytes extraction). shake128Rate is SHAKE-128's block size, used
// purely as an efficient squeeze granularity.
func Parse(x sha3.ShakeHash) *Poly {
	const shake128Rate = 168

	p := new(Poly)
	buf := make([]byte, shake128Rate)
	x.Read(buf)

	ctr, pos := 0, 0
	for ctr < kyberN {
		if pos+3 > len(buf) {
			x.Read(buf)
			pos = 0
		}
		b0, b1, b2 := uint16(buf[pos]), uint16(buf[pos+1]), uint16(buf[pos+2])
		pos += 3

		d1 := b0 | ((b1 & 0x0f) << 8)
		d2 := (b1 >> 4) | (b2 << 4)

		if d1 < kyberQ {
			p.coeffs[ctr] = d1
			ctr++
		}
		if ctr < kyberN && d2 < kyberQ {
			p.coeffs[ctr] = d2
			ctr++
		}
	}
	return p
}
