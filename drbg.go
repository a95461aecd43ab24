// drbg.go - Deterministic entropy source (C3).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// DRBG is a byte source: random_bytes(l) from spec.md section 4.3. It is
// stateful and MUST NOT be shared across goroutines without external
// synchronization.
type DRBG interface {
	// ReadBytes fills p with fresh output and never returns a short read.
	ReadBytes(p []byte) error
}

// seedSize is the entropy_input/seed length the CTR_DRBG operates on:
// keylen(32) for AES-256 plus outlen(16) for the AES block size.
const seedSize = 32 + 16

// osDRBG is the default entropy source, backed by crypto/rand.
type osDRBG struct{}

func (osDRBG) ReadBytes(p []byte) error {
	_, err := rand.Read(p)
	return err
}

// aesCTRDRBG implements the AES-256 CTR_DRBG construction from NIST SP
// 800-90A section 10.2.1, with no derivation function, no additional
// input, and no prediction resistance -- the profile used by the Kyber
// reference KAT generator.
type aesCTRDRBG struct {
	key [32]byte
	v   [aes.BlockSize]byte
}

func newAESCTRDRBG(entropyInput []byte) *aesCTRDRBG {
	d := new(aesCTRDRBG)
	d.update(entropyInput)
	return d
}

// incrementV treats v as a 128-bit big-endian counter and increments it.
func (d *aesCTRDRBG) incrementV() {
	for i := len(d.v) - 1; i >= 0; i-- {
		d.v[i]++
		if d.v[i] != 0 {
			break
		}
	}
}

// update is CTR_DRBG_Update: it regenerates Key and V by encrypting
// successive counter blocks and XORing the result with providedData (which
// may be nil, meaning an all-zero seedSize-byte string).
func (d *aesCTRDRBG) update(providedData []byte) {
	block, err := aes.NewCipher(d.key[:])
	if err != nil {
		panic(err) // unreachable: d.key is always exactly 32 bytes
	}

	var temp [seedSize]byte
	for off := 0; off < seedSize; off += aes.BlockSize {
		d.incrementV()
		block.Encrypt(temp[off:off+aes.BlockSize], d.v[:])
	}

	for i := range temp {
		if i < len(providedData) {
			temp[i] ^= providedData[i]
		}
	}

	copy(d.key[:], temp[:32])
	copy(d.v[:], temp[32:])
}

// ReadBytes implements DRBG, corresponding to CTR_DRBG_Generate with no
// additional input.
func (d *aesCTRDRBG) ReadBytes(p []byte) error {
	block, err := aes.NewCipher(d.key[:])
	if err != nil {
		return err
	}

	n := len(p)
	full := (n / aes.BlockSize) * aes.BlockSize
	var blk [aes.BlockSize]byte
	for off := 0; off < full; off += aes.BlockSize {
		d.incrementV()
		block.Encrypt(p[off:off+aes.BlockSize], d.v[:])
	}
	if full < n {
		d.incrementV()
		block.Encrypt(blk[:], d.v[:])
		copy(p[full:], blk[:n-full])
	}

	d.update(nil)
	return nil
}

// reseed is CTR_DRBG_Reseed with no additional input.
func (d *aesCTRDRBG) reseed(entropyInput []byte) {
	d.update(entropyInput)
}

// drbgState is the per-ParameterSet entropy source holder: os.urandom
// ("the default") until SetDRBGSeed switches it over to a deterministic
// aesCTRDRBG, matching original_source's set_drbg_seed/reseed_drbg.
type drbgState struct {
	def  osDRBG
	seed *aesCTRDRBG
}

func newDRBGState() *drbgState {
	return &drbgState{}
}

func (s *drbgState) active() DRBG {
	if s.seed != nil {
		return s.seed
	}
	return s.def
}

func (s *drbgState) setSeed(seed []byte) error {
	if len(seed) != seedSize {
		return ErrInvalidSeedSize
	}
	s.seed = newAESCTRDRBG(seed)
	return nil
}

func (s *drbgState) reseed(seed []byte) error {
	if len(seed) != seedSize {
		return ErrInvalidSeedSize
	}
	if s.seed == nil {
		return ErrDRBGNotSeeded
	}
	s.seed.reseed(seed)
	return nil
}
