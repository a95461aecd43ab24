// kem.go - Kyber key encapsulation mechanism (C8): the Fujisaki-Okamoto
// transform lifting the C7 CPA-PKE to an IND-CCA2 KEM, with implicit
// rejection.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"bytes"
	"crypto/subtle"
)

// PrivateKey is a Kyber private key: sk_pke || pk || H(pk) || z.
type PrivateKey struct {
	PublicKey
	sk *indcpaSecretKey
	z  []byte
}

// Bytes returns the byte serialization of a PrivateKey.
func (sk *PrivateKey) Bytes() []byte {
	p := sk.PublicKey.p

	b := make([]byte, 0, p.secretKeySize)
	b = append(b, sk.sk.packed...)
	b = append(b, sk.PublicKey.pk.packed...)
	b = append(b, sk.PublicKey.pk.h[:]...)
	b = append(b, sk.z...)

	return b
}

// PrivateKeyFromBytes deserializes a byte serialized PrivateKey.
func (p *ParameterSet) PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != p.secretKeySize {
		return nil, ErrInvalidKeySize
	}

	sk := new(PrivateKey)
	sk.sk = new(indcpaSecretKey)
	sk.z = make([]byte, SymSize)
	sk.PublicKey.pk = new(indcpaPublicKey)
	sk.PublicKey.p = p

	// De-serialize the public key first.
	off := p.indcpaSecretKeySize
	if err := sk.PublicKey.pk.fromBytes(p, b[off:off+p.publicKeySize]); err != nil {
		return nil, err
	}
	off += p.publicKeySize
	if !bytes.Equal(sk.PublicKey.pk.h[:], b[off:off+SymSize]) {
		return nil, ErrInvalidPrivateKey
	}
	off += SymSize
	copy(sk.z, b[off:])

	// Then go back to de-serialize the private key.
	if err := sk.sk.fromBytes(p, b[:p.indcpaSecretKeySize]); err != nil {
		return nil, err
	}

	return sk, nil
}

// PublicKey is a Kyber public key.
type PublicKey struct {
	pk *indcpaPublicKey
	p  *ParameterSet
}

// Bytes returns the byte serialization of a PublicKey.
func (pk *PublicKey) Bytes() []byte {
	return pk.pk.toBytes()
}

// PublicKeyFromBytes deserializes a byte serialized PublicKey.
func (p *ParameterSet) PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pk := &PublicKey{
		pk: new(indcpaPublicKey),
		p:  p,
	}

	if err := pk.pk.fromBytes(p, b); err != nil {
		return nil, err
	}

	return pk, nil
}

// GenerateKeyPair generates a private and public key parameterized with the
// given ParameterSet, drawing entropy from p's configured DRBG (see
// SetDRBGSeed).
func (p *ParameterSet) GenerateKeyPair() (*PublicKey, *PrivateKey, error) {
	kp := new(PrivateKey)

	rng := p.rng()

	var err error
	if kp.PublicKey.pk, kp.sk, err = p.indcpaKeyPair(rng); err != nil {
		return nil, nil, err
	}

	kp.PublicKey.p = p
	kp.z = make([]byte, SymSize)
	if err := rng.ReadBytes(kp.z); err != nil {
		return nil, nil, err
	}

	return &kp.PublicKey, kp, nil
}

// Encapsulate generates a ciphertext and a keyLength-byte shared secret
// under pk, via the CCA-secure Kyber KEM.
func (pk *PublicKey) Encapsulate(keyLength int) (cipherText, sharedSecret []byte, err error) {
	var mPrime [SymSize]byte
	if err = pk.p.rng().ReadBytes(mPrime[:]); err != nil {
		return nil, nil, err
	}
	m := h(mPrime[:]) // don't release system RNG output directly

	var mh [2 * SymSize]byte
	copy(mh[:SymSize], m[:])
	copy(mh[SymSize:], pk.pk.h[:]) // multitarget countermeasure for coins + contributory KEM
	kBar, r := g(mh[:])

	cipherText, err = pk.p.indcpaEncrypt(m[:], pk.pk, r[:])
	if err != nil {
		return nil, nil, err
	}

	hc := h(cipherText)
	sharedSecret = kdf(append(append([]byte{}, kBar[:]...), hc[:]...), keyLength)

	return cipherText, sharedSecret, nil
}

// Decapsulate recovers the keyLength-byte shared secret for cipherText
// under sk, via the CCA-secure Kyber KEM with implicit rejection.
//
// On a decapsulation failure, sharedSecret contains the pseudorandom
// z-derived key rather than an error: Kyber's FO transform never surfaces
// ciphertext validity to the caller. Providing a cipherText of the wrong
// length is, however, a malformed-input error.
func (sk *PrivateKey) Decapsulate(cipherText []byte, keyLength int) (sharedSecret []byte, err error) {
	p := sk.PublicKey.p
	if len(cipherText) != p.CipherTextSize() {
		return nil, ErrInvalidCipherTextSize
	}

	mPrime, err := p.indcpaDecrypt(cipherText, sk.sk)
	if err != nil {
		return nil, err
	}

	var mh [2 * SymSize]byte
	copy(mh[:SymSize], mPrime)
	copy(mh[SymSize:], sk.PublicKey.pk.h[:])
	kBarPrime, rPrime := g(mh[:])

	cPrime, err := p.indcpaEncrypt(mPrime, sk.PublicKey.pk, rPrime[:])
	if err != nil {
		return nil, err
	}

	hc := h(cipherText)

	ok := subtle.ConstantTimeCompare(cipherText, cPrime)
	preK := make([]byte, SymSize)
	subtle.ConstantTimeCopy(ok, preK, kBarPrime[:])
	subtle.ConstantTimeCopy(1-ok, preK, sk.z)

	sharedSecret = kdf(append(preK, hc[:]...), keyLength)

	return sharedSecret, nil
}
