// kex.go - Kyber-based authenticated key exchange (unilateral and mutual).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package kyber

import "golang.org/x/crypto/sha3"

// UAKEInitiatorMessageSize returns the size of the initiator UAKE message
// in bytes.
func (p *ParameterSet) UAKEInitiatorMessageSize() int {
	return p.PublicKeySize() + p.CipherTextSize()
}

// UAKEResponderMessageSize returns the size of the responder UAKE message
// in bytes.
func (p *ParameterSet) UAKEResponderMessageSize() int {
	return p.CipherTextSize()
}

// UAKEInitiatorState is a initiator UAKE instance. Each instance MUST only
// be used for one key exchange and never reused.
type UAKEInitiatorState struct {
	// Message is the UAKE message to send to the responder.
	Message []byte

	eSk *PrivateKey
	tk  []byte
}

// Shared generates a shared secret for the given UAKE instance and responder
// message.
func (s *UAKEInitiatorState) Shared(recv []byte) (sharedSecret []byte, err error) {
	tk, err := s.eSk.Decapsulate(recv, SymSize)
	if err != nil {
		return nil, err
	}

	xof := sha3.NewShake256()
	xof.Write(tk)
	xof.Write(s.tk)
	sharedSecret = make([]byte, SymSize)
	xof.Read(sharedSecret)

	return sharedSecret, nil
}

// NewUAKEInitiatorState creates a new initiator UAKE instance.
func (pk *PublicKey) NewUAKEInitiatorState() (*UAKEInitiatorState, error) {
	s := new(UAKEInitiatorState)
	s.Message = make([]byte, 0, pk.p.UAKEInitiatorMessageSize())

	var err error
	_, s.eSk, err = pk.p.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	s.Message = append(s.Message, s.eSk.PublicKey.Bytes()...)

	var ct []byte
	ct, s.tk, err = pk.Encapsulate(SymSize)
	if err != nil {
		return nil, err
	}

	s.Message = append(s.Message, ct...)

	return s, nil
}

// UAKEResponderShared generates a responder message and shared secret given
// a initiator UAKE message.
func (sk *PrivateKey) UAKEResponderShared(recv []byte) (message, sharedSecret []byte, err error) {
	p := sk.PublicKey.p
	pkLen := p.PublicKeySize()

	if len(recv) != p.UAKEInitiatorMessageSize() {
		return nil, nil, ErrInvalidMessageSize
	}
	rawPk, ct := recv[:pkLen], recv[pkLen:]
	peerPk, err := p.PublicKeyFromBytes(rawPk)
	if err != nil {
		return nil, nil, err
	}

	message, tk, err := peerPk.Encapsulate(SymSize)
	if err != nil {
		return nil, nil, err
	}

	xof := sha3.NewShake256()
	xof.Write(tk)

	tk, err = sk.Decapsulate(ct, SymSize)
	if err != nil {
		return nil, nil, err
	}
	xof.Write(tk)

	sharedSecret = make([]byte, SymSize)
	xof.Read(sharedSecret)

	return message, sharedSecret, nil
}

// AKEInitiatorMessageSize returns the size of the initiator AKE message
// in bytes.
func (p *ParameterSet) AKEInitiatorMessageSize() int {
	return p.PublicKeySize() + p.CipherTextSize()
}

// AKEResponderMessageSize returns the size of the responder AKE message
// in bytes.
func (p *ParameterSet) AKEResponderMessageSize() int {
	return 2 * p.CipherTextSize()
}

// AKEInitiatorState is a initiator AKE instance. Each instance MUST only be
// used for one key exchange and never reused.
type AKEInitiatorState struct {
	// Message is the AKE message to send to the responder.
	Message []byte

	eSk *PrivateKey
	tk  []byte
}

// Shared generates a shared secret for the given AKE instance, responder
// message, and long term initiator private key.
func (s *AKEInitiatorState) Shared(recv []byte, initiatorPrivateKey *PrivateKey) (sharedSecret []byte, err error) {
	p := s.eSk.PublicKey.p

	if initiatorPrivateKey.PublicKey.p != p {
		return nil, ErrParameterSetMismatch
	}
	if len(recv) != p.AKEResponderMessageSize() {
		return nil, ErrInvalidMessageSize
	}
	ctLen := p.CipherTextSize()

	xof := sha3.NewShake256()

	tk, err := s.eSk.Decapsulate(recv[:ctLen], SymSize)
	if err != nil {
		return nil, err
	}
	xof.Write(tk)

	tk, err = initiatorPrivateKey.Decapsulate(recv[ctLen:], SymSize)
	if err != nil {
		return nil, err
	}
	xof.Write(tk)

	xof.Write(s.tk)
	sharedSecret = make([]byte, SymSize)
	xof.Read(sharedSecret)

	return sharedSecret, nil
}

// NewAKEInitiatorState creates a new initiator AKE instance.
func (pk *PublicKey) NewAKEInitiatorState() (*AKEInitiatorState, error) {
	s := new(AKEInitiatorState)

	// This is identical to the UAKE case, so just reuse the code.
	us, err := pk.NewUAKEInitiatorState()
	if err != nil {
		return nil, err
	}

	s.Message = us.Message
	s.eSk = us.eSk
	s.tk = us.tk

	return s, nil
}

// AKEResponderShared generates a responder message and shared secret given
// a initiator AKE message and long term initiator public key.
func (sk *PrivateKey) AKEResponderShared(recv []byte, peerPublicKey *PublicKey) (message, sharedSecret []byte, err error) {
	p := sk.PublicKey.p
	pkLen := p.PublicKeySize()

	if peerPublicKey.p != p {
		return nil, nil, ErrParameterSetMismatch
	}

	// Deserialize the peer's ephemeral public key.
	if len(recv) != p.AKEInitiatorMessageSize() {
		return nil, nil, ErrInvalidMessageSize
	}
	rawPk, ct := recv[:pkLen], recv[pkLen:]
	peerEphemeralPk, err := p.PublicKeyFromBytes(rawPk)
	if err != nil {
		return nil, nil, err
	}

	message = make([]byte, 0, p.AKEResponderMessageSize())

	xof := sha3.NewShake256()

	tmp, tk, err := peerEphemeralPk.Encapsulate(SymSize)
	if err != nil {
		return nil, nil, err
	}
	xof.Write(tk)
	message = append(message, tmp...)

	tmp, tk, err = peerPublicKey.Encapsulate(SymSize)
	if err != nil {
		return nil, nil, err
	}
	xof.Write(tk)
	message = append(message, tmp...)

	tk, err = sk.Decapsulate(ct, SymSize)
	if err != nil {
		return nil, nil, err
	}
	xof.Write(tk)

	sharedSecret = make([]byte, SymSize)
	xof.Read(sharedSecret)

	return message, sharedSecret, nil
}
