// params.go - Kyber parameterization.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

const (
	// SymSize is the size of the shared key (and certain internal parameters
	// such as hashes and seeds) in bytes.
	SymSize = 32

	kyberN = 256
	kyberQ = 3329

	polySize = 12 * kyberN / 8 // encode_12(poly), in bytes
)

var (
	// Kyber512 is the Kyber-512 parameter set, which aims to provide security
	// equivalent to AES-128.
	//
	// This parameter set has a 1632 byte private key, 800 byte public key,
	// and a 768 byte cipher text.
	Kyber512 = newParameterSet("Kyber-512", 2, 3, 2, 10, 4)

	// Kyber768 is the Kyber-768 parameter set, which aims to provide security
	// equivalent to AES-192.
	//
	// This parameter set has a 2400 byte private key, 1184 byte public key,
	// and a 1088 byte cipher text.
	Kyber768 = newParameterSet("Kyber-768", 3, 2, 2, 10, 4)

	// Kyber1024 is the Kyber-1024 parameter set, which aims to provide
	// security equivalent to AES-256.
	//
	// This parameter set has a 3168 byte private key, 1568 byte public key,
	// and a 1568 byte cipher text.
	Kyber1024 = newParameterSet("Kyber-1024", 4, 2, 2, 11, 5)
)

// ParameterSet is a Kyber parameter set.
type ParameterSet struct {
	name string

	k    int
	eta1 int
	eta2 int
	du   int
	dv   int

	polyVecSize           int
	polyVecCompressedSize int
	polyCompressedSize    int

	indcpaPublicKeySize int
	indcpaSecretKeySize int
	indcpaSize          int

	publicKeySize  int
	secretKeySize  int
	cipherTextSize int

	drbg *drbgState
}

// Name returns the name of a given ParameterSet.
func (p *ParameterSet) Name() string {
	return p.name
}

// K returns the module rank (the number of polynomials per vector) of a
// given ParameterSet.
func (p *ParameterSet) K() int {
	return p.k
}

// PublicKeySize returns the size of a public key in bytes.
func (p *ParameterSet) PublicKeySize() int {
	return p.publicKeySize
}

// PrivateKeySize returns the size of a private key in bytes.
func (p *ParameterSet) PrivateKeySize() int {
	return p.secretKeySize
}

// CipherTextSize returns the size of a cipher text in bytes.
func (p *ParameterSet) CipherTextSize() int {
	return p.cipherTextSize
}

func newParameterSet(name string, k, eta1, eta2, du, dv int) *ParameterSet {
	var p ParameterSet

	p.name = name
	p.k = k
	p.eta1 = eta1
	p.eta2 = eta2
	p.du = du
	p.dv = dv

	p.polyVecSize = k * polySize
	p.polyVecCompressedSize = k * (du * kyberN / 8)
	p.polyCompressedSize = dv * kyberN / 8

	p.indcpaPublicKeySize = p.polyVecSize + SymSize
	p.indcpaSecretKeySize = p.polyVecSize
	p.indcpaSize = p.polyVecCompressedSize + p.polyCompressedSize

	p.publicKeySize = p.indcpaPublicKeySize
	p.secretKeySize = p.indcpaSecretKeySize + p.indcpaPublicKeySize + 2*SymSize // H(pk) and z, SymSize bytes each
	p.cipherTextSize = p.indcpaSize

	p.drbg = newDRBGState()

	return &p
}

// SetDRBGSeed switches the ParameterSet's entropy source from the default
// (crypto/rand) to a deterministic AES-256-CTR-DRBG seeded with seed, which
// MUST be 48 bytes long.
func (p *ParameterSet) SetDRBGSeed(seed []byte) error {
	return p.drbg.setSeed(seed)
}

// ReseedDRBG reseeds the ParameterSet's AES-256-CTR-DRBG with seed, which
// MUST be 48 bytes long. It is an error to call ReseedDRBG before
// SetDRBGSeed has been called at least once.
func (p *ParameterSet) ReseedDRBG(seed []byte) error {
	return p.drbg.reseed(seed)
}

// rng returns the entropy source currently backing this ParameterSet
// (crypto/rand, unless SetDRBGSeed has been called).
func (p *ParameterSet) rng() DRBG {
	return p.drbg.active()
}
