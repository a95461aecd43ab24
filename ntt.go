// ntt.go - Number-Theoretic Transform and modular reduction (C5).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

// montR is R = 2^16, the Montgomery constant used by montgomeryReduce.
const montR = 1 << 16

var (
	// qNeg = -q^-1 mod 2^16, the constant REDC needs. Derived at init time
	// rather than transcribed, per the Design Notes ("MAY compute them at
	// initialization; it MUST NOT recompute them per call").
	qNeg uint16

	// zetaMont[i] = zeta^bitrev7(i) * R mod q, for i in [0, 128); used
	// sequentially by the forward/inverse NTT butterflies.
	zetaMont [128]uint16

	// gammas[i] = zeta^(2*bitrev7(i)+1) mod q, for i in [0, 128); the
	// basecase quadratic-factor roots from spec.md section 4.5.
	gammas [128]uint16

	// invN128 = 128^-1 mod q, the normalization factor the inverse NTT
	// applies once at the end.
	invN128 uint16
)

func init() {
	const primitiveRoot = 17 // zeta; primitive n-th (256th) root of unity mod q

	qInv := modInverse(kyberQ, montR)
	qNeg = uint16(montR - qInv)

	rModQ := uint32(montR % kyberQ)
	for i := 0; i < 128; i++ {
		br := bitrev7(i)
		z := modpow(primitiveRoot, br, kyberQ)
		zetaMont[i] = uint16((uint32(z) * rModQ) % kyberQ)
		gammas[i] = uint16(modpow(primitiveRoot, 2*br+1, kyberQ))
	}

	invN128 = uint16(modInverse(128, kyberQ))
}

// bitrev7 reverses the low 7 bits of x.
func bitrev7(x int) int {
	var r int
	for i := 0; i < 7; i++ {
		r |= ((x >> uint(i)) & 1) << uint(6-i)
	}
	return r
}

// modpow computes base^exp mod m via square-and-multiply.
func modpow(base, exp, m int) int {
	r := 1 % m
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			r = (r * base) % m
		}
		base = (base * base) % m
		exp >>= 1
	}
	return r
}

// modInverse computes a^-1 mod m via the extended Euclidean algorithm.
// Requires gcd(a, m) == 1.
func modInverse(a, m int) int {
	m0 := m
	x0, x1 := 0, 1
	a %= m
	if a < 0 {
		a += m
	}
	for a > 1 {
		q := a / m
		a, m = m, a%m
		x0, x1 = x1-q*x0, x0
	}
	if x1 < 0 {
		x1 += m0
	}
	return x1
}

// condSub16 subtracts q from a once, in constant time, if a >= q. Requires
// a < 2q.
func condSub16(a uint16) uint16 {
	d := a - kyberQ
	mask := uint16(int16(d) >> 15)
	return d + (mask & kyberQ)
}

// condSub32 subtracts q from a once, in constant time, if a >= q.
func condSub32(a uint32) uint32 {
	d := a - kyberQ
	mask := uint32(int32(d) >> 31)
	return d + (mask & kyberQ)
}

// barrettMu = floor(2^32 / q), the constant multiplier Barrett reduction
// uses in place of a division.
const barrettMu = (uint64(1) << 32) / uint64(kyberQ)

// barrettReduce reduces any x < q^2 (comfortably covers both coefficient
// sums and single-coefficient products) down to canonical [0, q), in
// constant time.
func barrettReduce(x uint32) uint16 {
	t := uint32((uint64(x) * barrettMu) >> 32)
	r := x - t*kyberQ
	r = condSub32(r)
	r = condSub32(r)
	r = condSub32(r)
	return uint16(r)
}

// montgomeryReduce computes a * R^-1 mod q for a < R*q, via REDC.
func montgomeryReduce(a uint32) uint16 {
	m := uint16(a) * qNeg // mod 2^16, via uint16 wraparound
	t := (a + uint32(m)*kyberQ) >> 16
	return condSub16(uint16(t))
}

// fqMul multiplies a Montgomery-form value by a plain value, returning a
// plain value: montgomeryReduce(a*b) = (a*R mod q)*b*R^-1 mod q = a*b mod q.
// Only ever used with a single multiply in the chain, so no Montgomery
// scale factor can accumulate.
func fqMul(aMont, b uint16) uint16 {
	return montgomeryReduce(uint32(aMont) * uint32(b))
}

// mulModQ multiplies two plain values mod q via Barrett reduction.
func mulModQ(a, b uint16) uint16 {
	return barrettReduce(uint32(a) * uint32(b))
}

// addModQ adds two canonical coefficients mod q.
func addModQ(a, b uint16) uint16 {
	return condSub16(a + b)
}

// subModQ subtracts two canonical coefficients mod q.
func subModQ(a, b uint16) uint16 {
	return condSub16(a + kyberQ - b)
}

// ntt computes the forward negacyclic NTT of p in place. Input is assumed
// to hold canonical coefficients in normal order; output is 128 pairs of
// degree-one evaluations, still stored as 256 canonical coefficients.
func (p *Poly) ntt() {
	k := 1
	for length := 128; length >= 2; length >>= 1 {
		for start := 0; start < kyberN; start += 2 * length {
			zeta := zetaMont[k]
			k++
			for j := start; j < start+length; j++ {
				t := fqMul(zeta, p.coeffs[j+length])
				p.coeffs[j+length] = subModQ(p.coeffs[j], t)
				p.coeffs[j] = addModQ(p.coeffs[j], t)
			}
		}
	}
}

// invNTT computes the inverse negacyclic NTT of p in place, including the
// final 128^-1 normalization. It reuses the forward NTT's zeta table,
// traversed in reverse, since the forward and inverse transforms walk the
// same recursion tree in opposite directions.
func (p *Poly) invNTT() {
	k := 127
	for length := 2; length <= 128; length <<= 1 {
		for start := 0; start < kyberN; start += 2 * length {
			zeta := zetaMont[k]
			k--
			for j := start; j < start+length; j++ {
				t := p.coeffs[j]
				p.coeffs[j] = addModQ(t, p.coeffs[j+length])
				diff := subModQ(p.coeffs[j+length], t)
				p.coeffs[j+length] = fqMul(zeta, diff)
			}
		}
	}
	for j := range p.coeffs {
		p.coeffs[j] = mulModQ(p.coeffs[j], invN128)
	}
}

// basecaseMul computes the pointwise ("NTT-domain") product of two
// polynomials already in NTT form into dst: for each of the 128 quadratic
// factors X^2 - gammas[i], multiplies the corresponding degree-one
// polynomials.
func basecaseMul(dst, a, b *Poly) {
	for i := 0; i < 128; i++ {
		a0, a1 := a.coeffs[2*i], a.coeffs[2*i+1]
		b0, b1 := b.coeffs[2*i], b.coeffs[2*i+1]
		g := gammas[i]

		c0 := addModQ(mulModQ(a0, b0), mulModQ(mulModQ(a1, b1), g))
		c1 := addModQ(mulModQ(a0, b1), mulModQ(a1, b0))

		dst.coeffs[2*i] = c0
		dst.coeffs[2*i+1] = c1
	}
}
