// doc.go - Kyber godoc extras.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package kyber implements round-3 CRYSTALS-Kyber, an IND-CCA2-secure key
// encapsulation mechanism (KEM) based on the hardness of the module learning-
// with-errors (LWE) problem, as submitted to the NIST Post-Quantum
// Cryptography standardization project.
//
// Kyber512, Kyber768, and Kyber1024 are the three standardized parameter
// sets. Each exposes GenerateKeyPair, PublicKey.Encapsulate, and
// PrivateKey.Decapsulate; keys round-trip through the Bytes/*FromBytes
// methods, and ciphertexts are plain byte slices.
//
// Additionally, Kyber.AKE and Kyber.UAKE as presented in the Kyber paper are
// included for users that seek an authenticated key exchange built directly
// on top of the KEM.
//
// For more information, see https://pq-crystals.org/kyber/index.shtml.
package kyber
