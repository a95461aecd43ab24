// errors.go - Kyber error values.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "errors"

var (
	// ErrInvalidKeySize is the error returned when a byte serialized key is
	// an invalid size.
	ErrInvalidKeySize = errors.New("kyber: invalid key size")

	// ErrInvalidCipherTextSize is the error returned when a byte serialized
	// ciphertext is an invalid size.
	ErrInvalidCipherTextSize = errors.New("kyber: invalid ciphertext size")

	// ErrInvalidPrivateKey is the error returned when a byte serialized
	// private key is malformed.
	ErrInvalidPrivateKey = errors.New("kyber: invalid private key")

	// ErrFormMismatch is the error returned when an operation is attempted
	// on polynomials or module elements that do not share the same
	// Standard/NTT form tag. This indicates a programmer error; it is never
	// triggered by untrusted input.
	ErrFormMismatch = errors.New("kyber: polynomial form mismatch")

	// ErrDRBGNotSeeded is the error returned when ReseedDRBG is called
	// before SetDRBGSeed has ever been called.
	ErrDRBGNotSeeded = errors.New("kyber: DRBG has not been seeded")

	// ErrInvalidSeedSize is the error returned when a DRBG seed is not
	// exactly 48 bytes.
	ErrInvalidSeedSize = errors.New("kyber: DRBG seed must be 48 bytes")

	// ErrInvalidMessageSize is the error returned when a initiator or
	// responder key exchange message is an invalid size.
	ErrInvalidMessageSize = errors.New("kyber: invalid message size")

	// ErrParameterSetMismatch is the error returned when module elements
	// of mismatched rank (different k) are combined.
	ErrParameterSetMismatch = errors.New("kyber: parameter set mismatch")
)
