// symmetric.go - Symmetric primitives (hash / XOF / PRF / KDF) wiring.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

// h is H: B* -> B^32, SHA3-256.
func h(b []byte) [32]byte {
	return sha3.Sum256(b)
}

// g is G: B* -> B^32 x B^32, the two halves of SHA3-512.
func g(b []byte) (a, bb [32]byte) {
	sum := sha3.Sum512(b)
	copy(a[:], sum[:32])
	copy(bb[:], sum[32:])
	return
}

// xof returns an open SHAKE-128 absorbing rho || i || j, ready to be
// squeezed for as many bytes as the caller needs (possibly more than once,
// to support streaming rejection sampling without a fixed-length failure
// mode).
func xof(rho []byte, i, j byte) sha3.ShakeHash {
	x := sha3.NewShake128()
	x.Write(rho)
	x.Write([]byte{i, j})
	return x
}

// prf is PRF: B^32 x B -> B^l, SHAKE-256(sigma || n) truncated to l bytes.
func prf(sigma []byte, n byte, l int) []byte {
	out := make([]byte, l)
	x := sha3.NewShake256()
	x.Write(sigma)
	x.Write([]byte{n})
	x.Read(out)
	return out
}

// kdf is KDF: B* -> B^l, SHAKE-256(b) truncated to l bytes.
func kdf(b []byte, l int) []byte {
	out := make([]byte, l)
	x := sha3.NewShake256()
	x.Write(b)
	x.Read(out)
	return out
}
