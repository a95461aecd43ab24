// babykyber_test.go - a from-scratch worked example of the same module-LWE
// construction Kyber uses, at toy parameters (q=17, n=4, k=2) where every
// intermediate value can be checked by hand. Grounded on
// original_source/baby-kyber-checkpoint.py, which fixes every "random" draw
// so the whole computation is deterministic and reproducible; this test
// reimplements the same ring arithmetic independently of ring.go/ntt.go
// (which are hardcoded to n=256, q=3329) purely to cross-check the
// construction's algebra.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "testing"

const babyQ = 17

// babyPoly is an element of Z_17[X]/(X^4+1), coefficients in [0, 17).
type babyPoly [4]int

func babyReduce(x int) int {
	x %= babyQ
	if x < 0 {
		x += babyQ
	}
	return x
}

func (a babyPoly) add(b babyPoly) babyPoly {
	var r babyPoly
	for i := range r {
		r[i] = babyReduce(a[i] + b[i])
	}
	return r
}

func (a babyPoly) sub(b babyPoly) babyPoly {
	var r babyPoly
	for i := range r {
		r[i] = babyReduce(a[i] - b[i])
	}
	return r
}

// mul multiplies a and b mod X^4+1, mod 17.
func (a babyPoly) mul(b babyPoly) babyPoly {
	var wide [8]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			wide[i+j] += a[i] * b[j]
		}
	}
	var r babyPoly
	for i := 0; i < 4; i++ {
		r[i] = babyReduce(wide[i] - wide[i+4])
	}
	return r
}

type babyVec [2]babyPoly

func (v babyVec) add(w babyVec) babyVec {
	return babyVec{v[0].add(w[0]), v[1].add(w[1])}
}

func (v babyVec) dot(w babyVec) babyPoly {
	return v[0].mul(w[0]).add(v[1].mul(w[1]))
}

type babyMat [2]babyVec

func (m babyMat) mulVec(v babyVec) babyVec {
	return babyVec{m[0].dot(v), m[1].dot(v)}
}

func (m babyMat) transpose() babyMat {
	return babyMat{
		babyVec{m[0][0], m[1][0]},
		babyVec{m[0][1], m[1][1]},
	}
}

// babyCompress1/babyDecompress1 are Compress_q/Decompress_q at d=1, the bit
// the baby-Kyber example's message encoding round-trips through.
func babyCompress1(x int) int {
	return ((x << 1) + babyQ/2) / babyQ % 2
}

func babyDecompress1(x int) int {
	if x == 0 {
		return 0
	}
	return (babyQ + 1) / 2
}

func TestBabyKyber(t *testing.T) {
	// keygen()
	s := babyVec{{0, 1, 16, 16}, {0, 16, 0, 16}} // s0=[0,1,-1,-1], s1=[0,-1,0,-1] mod 17
	a := babyMat{
		babyVec{{11, 16, 16, 6}, {3, 6, 4, 9}},
		babyVec{{1, 10, 3, 5}, {15, 9, 1, 6}},
	}
	e := babyVec{{0, 0, 1, 0}, {0, 16, 1, 0}} // e0=[0,0,1,0], e1=[0,-1,1,0] mod 17

	tVec := a.mulVec(s).add(e)
	wantT := babyVec{{7, 0, 15, 16}, {6, 11, 12, 10}}
	if tVec != wantT {
		t.Fatalf("t = %v, want %v", tVec, wantT)
	}

	// enc(m, (A, t)): the message bits are [1,1,0,1], i.e. 1 + X + X^3.
	r := babyVec{{0, 0, 1, 16}, {16, 0, 1, 1}} // r0=[0,0,1,-1], r1=[-1,0,1,1] mod 17
	e1 := babyVec{{0, 1, 1, 0}, {0, 0, 1, 0}}
	e2 := babyPoly{0, 0, 16, 16} // [0,0,-1,-1] mod 17

	polyM := babyPoly{0, 0, 0, 0}
	for i, bit := range []int{1, 1, 0, 1} {
		polyM[i] = babyDecompress1(bit)
	}
	wantPolyM := babyPoly{9, 9, 0, 9}
	if polyM != wantPolyM {
		t.Fatalf("poly_m = %v, want %v", polyM, wantPolyM)
	}

	u := a.transpose().mulVec(r).add(e1)
	wantU := babyVec{{3, 10, 11, 11}, {11, 13, 4, 4}}
	if u != wantU {
		t.Fatalf("u = %v, want %v", u, wantU)
	}

	v := tVec.dot(r).add(e2).sub(polyM)
	wantV := babyPoly{15, 8, 6, 7}
	if v != wantV {
		t.Fatalf("v = %v, want %v", v, wantV)
	}

	// dec(u, v, s)
	mN := v.sub(s.dot(u))
	wantMN := babyPoly{5, 7, 14, 7}
	if mN != wantMN {
		t.Fatalf("m_n = %v, want %v", mN, wantMN)
	}

	var decoded [4]int
	for i, c := range mN {
		decoded[i] = babyCompress1(c)
	}
	wantDecoded := [4]int{1, 1, 0, 1}
	if decoded != wantDecoded {
		t.Fatalf("decoded message bits = %v, want %v", decoded, wantDecoded)
	}
}
