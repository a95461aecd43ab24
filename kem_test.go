// kem_test.go - Kyber KEM tests.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const nTests = 100

var allParams = []*ParameterSet{
	Kyber512,
	Kyber768,
	Kyber1024,
}

func TestKEM(t *testing.T) {
	for _, p := range allParams {
		t.Run(p.Name()+"_Keys", func(t *testing.T) { doTestKEMKeys(t, p) })
		t.Run(p.Name()+"_Invalid_SecretKey", func(t *testing.T) { doTestKEMInvalidSk(t, p) })
		t.Run(p.Name()+"_Invalid_CipherText", func(t *testing.T) { doTestKEMInvalidCipherText(t, p) })
		t.Run(p.Name()+"_Malformed_CipherText", func(t *testing.T) { doTestKEMMalformedCipherText(t, p) })
	}
}

func doTestKEMKeys(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	t.Logf("PrivateKeySize(): %v", p.PrivateKeySize())
	t.Logf("PublicKeySize(): %v", p.PublicKeySize())
	t.Logf("CipherTextSize(): %v", p.CipherTextSize())

	for i := 0; i < nTests; i++ {
		// Generate a key pair.
		pk, sk, err := p.GenerateKeyPair()
		require.NoError(err, "GenerateKeyPair()")

		// Test serialization.
		b := sk.Bytes()
		require.Len(b, p.PrivateKeySize(), "sk.Bytes(): Length")
		sk2, err := p.PrivateKeyFromBytes(b)
		require.NoError(err, "PrivateKeyFromBytes(b)")
		requirePrivateKeyEqual(require, sk, sk2)

		b = pk.Bytes()
		require.Len(b, p.PublicKeySize(), "pk.Bytes(): Length")
		pk2, err := p.PublicKeyFromBytes(b)
		require.NoError(err, "PublicKeyFromBytes(b)")
		requirePublicKeyEqual(require, pk, pk2)

		// Test encapsulate/decapsulate.
		ct, ss, err := pk.Encapsulate(SymSize)
		require.NoError(err, "Encapsulate()")
		require.Len(ct, p.CipherTextSize(), "Encapsulate(): ct Length")
		require.Len(ss, SymSize, "Encapsulate(): ss Length")

		ss2, err := sk.Decapsulate(ct, SymSize)
		require.NoError(err, "Decapsulate()")
		require.Equal(ss, ss2, "Decapsulate(): ss")

		// Decapsulate must also honour a key_length other than SymSize.
		ss3, err := sk.Decapsulate(ct, 16)
		require.NoError(err, "Decapsulate(16)")
		require.Len(ss3, 16, "Decapsulate(16): ss Length")
	}
}

func doTestKEMInvalidSk(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	for i := 0; i < nTests; i++ {
		// Alice generates a key pair.
		pk, skA, err := p.GenerateKeyPair()
		require.NoError(err, "GenerateKeyPair()")

		// Bob encapsulates against Alice's public key.
		sendB, keyB, err := pk.Encapsulate(SymSize)
		require.NoError(err, "Encapsulate()")

		// Corrupt Alice's secret key.
		_, err = rand.Read(skA.sk.packed)
		require.NoError(err, "rand.Read()")

		// Alice decapsulates with the corrupted key; implicit rejection
		// means this never surfaces as an error, but the derived secret
		// must not match Bob's.
		keyA, err := skA.Decapsulate(sendB, SymSize)
		require.NoError(err, "Decapsulate()")
		require.NotEqual(keyA, keyB, "Decapsulate(): ss")
	}
}

func doTestKEMInvalidCipherText(t *testing.T, p *ParameterSet) {
	require := require.New(t)
	var rawPos [2]byte

	ciphertextSize := p.CipherTextSize()

	for i := 0; i < nTests; i++ {
		_, err := rand.Read(rawPos[:])
		require.NoError(err, "rand.Read()")
		pos := (int(rawPos[0]) << 8) | int(rawPos[1])

		// Alice generates a key pair.
		pk, skA, err := p.GenerateKeyPair()
		require.NoError(err, "GenerateKeyPair()")

		// Bob encapsulates against Alice's public key.
		sendB, keyB, err := pk.Encapsulate(SymSize)
		require.NoError(err, "Encapsulate()")

		// Flip several bits of one byte somewhere in the ciphertext.
		sendB[pos%ciphertextSize] ^= 23

		// Implicit rejection: Decapsulate succeeds, but the derived key
		// differs from Bob's.
		keyA, err := skA.Decapsulate(sendB, SymSize)
		require.NoError(err, "Decapsulate()")
		require.NotEqual(keyA, keyB, "Decapsulate(): ss")
	}
}

func doTestKEMMalformedCipherText(t *testing.T, p *ParameterSet) {
	require := require.New(t)

	_, sk, err := p.GenerateKeyPair()
	require.NoError(err, "GenerateKeyPair()")

	_, err = sk.Decapsulate(make([]byte, p.CipherTextSize()-1), SymSize)
	require.ErrorIs(err, ErrInvalidCipherTextSize)

	_, err = sk.Decapsulate(make([]byte, p.CipherTextSize()+1), SymSize)
	require.ErrorIs(err, ErrInvalidCipherTextSize)
}

func requirePrivateKeyEqual(require *require.Assertions, a, b *PrivateKey) {
	require.EqualValues(a.sk, b.sk, "sk (indcpaSecretKey)")
	require.Equal(a.z, b.z, "z (random bytes)")
	requirePublicKeyEqual(require, &a.PublicKey, &b.PublicKey)
}

func requirePublicKeyEqual(require *require.Assertions, a, b *PublicKey) {
	require.EqualValues(a.pk, b.pk, "pk (indcpaPublicKey)")
	require.Equal(a.p, b.p, "p (ParameterSet)")
}

func BenchmarkKEM(b *testing.B) {
	for _, p := range allParams {
		b.Run(p.Name()+"_GenerateKeyPair", func(b *testing.B) { doBenchKEMGenerateKeyPair(b, p) })
		b.Run(p.Name()+"_Encapsulate", func(b *testing.B) { doBenchKEMEncDec(b, p, true) })
		b.Run(p.Name()+"_Decapsulate", func(b *testing.B) { doBenchKEMEncDec(b, p, false) })
	}
}

func doBenchKEMGenerateKeyPair(b *testing.B, p *ParameterSet) {
	for i := 0; i < b.N; i++ {
		_, _, err := p.GenerateKeyPair()
		if err != nil {
			b.Fatalf("GenerateKeyPair(): %v", err)
		}
	}
}

func doBenchKEMEncDec(b *testing.B, p *ParameterSet, isEnc bool) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		pk, skA, err := p.GenerateKeyPair()
		if err != nil {
			b.Fatalf("GenerateKeyPair(): %v", err)
		}

		if isEnc {
			b.StartTimer()
		}

		sendB, keyB, err := pk.Encapsulate(SymSize)
		if err != nil {
			b.Fatalf("Encapsulate(): %v", err)
		}
		if isEnc {
			b.StopTimer()
		} else {
			b.StartTimer()
		}

		keyA, err := skA.Decapsulate(sendB, SymSize)
		if !isEnc {
			b.StopTimer()
		}
		if err != nil {
			b.Fatalf("Decapsulate(): %v", err)
		}

		if !bytes.Equal(keyA, keyB) {
			b.Fatalf("Decapsulate(): key mismatch")
		}
	}
}
