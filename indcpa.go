// indcpa.go - Kyber's underlying IND-CPA secure public-key encryption
// scheme (C7).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

// genMatrix deterministically expands seed into a k-by-k Matrix of
// uniformly-random-looking polynomials via rejection sampling on SHAKE-128
// output (Parse). When transposed is false this builds A used by
// indcpaKeyPair; when true it builds A^T, the form indcpaEncrypt needs. The two
// cases differ in the byte order fed to the XOF (spec.md section 4.7):
// untransposed is XOF(seed, j, i), transposed is XOF(seed, i, j).
func genMatrix(seed []byte, k int, transposed bool) *Matrix {
	m := NewMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			var a, b byte
			if transposed {
				a, b = byte(i), byte(j)
			} else {
				a, b = byte(j), byte(i)
			}
			entry := Parse(xof(seed, a, b))
			entry.form = formNTT
			*m.rows[i].polys[j] = *entry
		}
	}
	return m
}

// sampleNoiseVector draws a length-k Vector of Standard-form polynomials
// from the centered binomial distribution with parameter eta, consuming
// one PRF nonce per entry starting at *nonce.
func sampleNoiseVector(seed []byte, nonce *byte, eta, k int) *Vector {
	v := NewVector(k)
	for i := 0; i < k; i++ {
		buf := prf(seed, *nonce, eta*kyberN/4)
		*nonce++
		v.polys[i] = CBD(buf, eta)
	}
	return v
}

type indcpaPublicKey struct {
	packed []byte
	h      [32]byte
}

func (pk *indcpaPublicKey) toBytes() []byte {
	return pk.packed
}

func (pk *indcpaPublicKey) fromBytes(p *ParameterSet, b []byte) error {
	if len(b) != p.indcpaPublicKeySize {
		return ErrInvalidKeySize
	}

	pk.packed = make([]byte, len(b))
	copy(pk.packed, b)
	pk.h = sha3.Sum256(b)

	return nil
}

type indcpaSecretKey struct {
	packed []byte
}

func (sk *indcpaSecretKey) fromBytes(p *ParameterSet, b []byte) error {
	if len(b) != p.indcpaSecretKeySize {
		return ErrInvalidKeySize
	}

	sk.packed = make([]byte, len(b))
	copy(sk.packed, b)

	return nil
}

// packPublicKey serializes pk as the (losslessly encoded) t vector
// followed by the public seed rho used to regenerate A. Round-3 Kyber
// drops round-2's lossy public-key compression.
func packPublicKey(t *Vector, rho []byte) []byte {
	r := t.Encode()
	return append(r, rho[:SymSize]...)
}

// unpackPublicKey is the inverse of packPublicKey.
func unpackPublicKey(k int, packed []byte) (*Vector, []byte, error) {
	off := k * polySize
	t, err := DecodeVector(packed[:off], k)
	if err != nil {
		return nil, nil, err
	}
	rho := make([]byte, SymSize)
	copy(rho, packed[off:off+SymSize])
	return t, rho, nil
}

// packCiphertext serializes a ciphertext as the compressed u vector
// followed by the compressed v polynomial.
func packCiphertext(u *Vector, v *Poly, du, dv int) []byte {
	r := u.Compress(du)
	return append(r, v.Compress(dv)...)
}

// unpackCiphertext is the inverse of packCiphertext.
func unpackCiphertext(k int, c []byte, du, dv int) (*Vector, *Poly, error) {
	uSize := k * du * kyberN / 8
	u, err := DecompressVector(c[:uSize], k, du)
	if err != nil {
		return nil, nil, err
	}
	v, err := DecompressPoly(c[uSize:], dv)
	if err != nil {
		return nil, nil, err
	}
	return u, v, nil
}

// indcpaKeyPair generates a CPA-PKE keypair, reading a single SymSize-byte
// seed from rng.
func (p *ParameterSet) indcpaKeyPair(rng DRBG) (*indcpaPublicKey, *indcpaSecretKey, error) {
	var d [SymSize]byte
	if err := rng.ReadBytes(d[:]); err != nil {
		return nil, nil, err
	}

	rho, sigma := g(d[:])

	a := genMatrix(rho[:], p.k, false)

	var nonce byte
	s := sampleNoiseVector(sigma[:], &nonce, p.eta1, p.k)
	e := sampleNoiseVector(sigma[:], &nonce, p.eta1, p.k)

	if err := s.NTT(); err != nil {
		return nil, nil, err
	}
	if err := e.NTT(); err != nil {
		return nil, nil, err
	}

	t := NewVector(p.k)
	if err := a.MatMul(t, s); err != nil {
		return nil, nil, err
	}
	if err := t.Add(t, e); err != nil {
		return nil, nil, err
	}

	sk := &indcpaSecretKey{packed: s.Encode()}
	pk := &indcpaPublicKey{packed: packPublicKey(t, rho[:])} // t is stored NTT-domain (t̂)
	pk.h = sha3.Sum256(pk.packed)

	return pk, sk, nil
}

// indcpaEncrypt encrypts the SymSize-byte message m under pk, using coins
// as the randomness for the noise vectors (the FO transform derives these
// from a hash rather than fresh entropy).
func (p *ParameterSet) indcpaEncrypt(m []byte, pk *indcpaPublicKey, coins []byte) ([]byte, error) {
	t, rho, err := unpackPublicKey(p.k, pk.packed)
	if err != nil {
		return nil, err
	}
	for _, poly := range t.polys {
		poly.form = formNTT // the public key stores t̂ in NTT domain
	}

	at := genMatrix(rho, p.k, true)

	k, err := FromMsg(m)
	if err != nil {
		return nil, err
	}

	var nonce byte
	r := sampleNoiseVector(coins, &nonce, p.eta1, p.k)
	e1 := sampleNoiseVector(coins, &nonce, p.eta2, p.k)
	e2Buf := prf(coins, nonce, p.eta2*kyberN/4)
	e2 := CBD(e2Buf, p.eta2)

	if err := r.NTT(); err != nil {
		return nil, err
	}

	u := NewVector(p.k)
	if err := at.MatMul(u, r); err != nil {
		return nil, err
	}
	if err := u.InvNTT(); err != nil {
		return nil, err
	}
	if err := u.Add(u, e1); err != nil {
		return nil, err
	}

	var v Poly
	if err := t.Dot(&v, r); err != nil {
		return nil, err
	}
	if err := v.InvNTT(); err != nil {
		return nil, err
	}
	if err := v.Add(&v, e2); err != nil {
		return nil, err
	}
	if err := v.Add(&v, k); err != nil {
		return nil, err
	}

	return packCiphertext(u, &v, p.du, p.dv), nil
}

// indcpaDecrypt decrypts ciphertext c with the secret key sk, returning the
// recovered SymSize-byte message.
func (p *ParameterSet) indcpaDecrypt(c []byte, sk *indcpaSecretKey) ([]byte, error) {
	u, v, err := unpackCiphertext(p.k, c, p.du, p.dv)
	if err != nil {
		return nil, err
	}
	s, err := DecodeVector(sk.packed, p.k)
	if err != nil {
		return nil, err
	}
	for _, poly := range s.polys {
		poly.form = formNTT // the secret key is stored in NTT domain
	}

	if err := u.NTT(); err != nil {
		return nil, err
	}

	var mp Poly
	if err := s.Dot(&mp, u); err != nil {
		return nil, err
	}
	if err := mp.InvNTT(); err != nil {
		return nil, err
	}
	if err := mp.Sub(v, &mp); err != nil {
		return nil, err
	}

	return mp.ToMsg(), nil
}
