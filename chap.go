package radius

import (
	"crypto/md5" //nolint:gosec // MD5 is mandated by RFC 2865 §2.2 for CHAP.
	"crypto/subtle"
	"fmt"
	"io"
)

// EncodeCHAP builds a CHAP-Password value (17 bytes: chap-id || MD5(chap-id
// || password || challenge)) and a fresh 16-byte challenge, per RFC 2865
// §2.2. Both the chap-id byte and the challenge are drawn from rng, which
// MUST be a cryptographically secure source in production use
// (crypto/rand.Reader).
func EncodeCHAP(password string, rng io.Reader) (chapPassword [17]byte, challenge [16]byte, err error) {
	var idByte [1]byte
	if _, err = io.ReadFull(rng, idByte[:]); err != nil {
		return
	}
	if _, err = io.ReadFull(rng, challenge[:]); err != nil {
		return
	}
	buf := make([]byte, 0, 1+len(password)+len(challenge))
	buf = append(buf, idByte[0])
	buf = append(buf, password...)
	buf = append(buf, challenge[:]...)
	sum := md5.Sum(buf)
	chapPassword[0] = idByte[0]
	copy(chapPassword[1:], sum[:])
	return
}

// VerifyCHAP reports whether chapPassword (17 bytes: chap-id || digest) was
// produced by EncodeCHAP given password and challenge. Fails with
// ErrBadCHAPLength if either input is not its required fixed length,
// before attempting any comparison.
func VerifyCHAP(chapPassword, challenge []byte, password string) (bool, error) {
	if len(chapPassword) != 17 {
		return false, fmt.Errorf("%w: chap-password is %d bytes, want 17", ErrBadCHAPLength, len(chapPassword))
	}
	if len(challenge) != 16 {
		return false, fmt.Errorf("%w: chap-challenge is %d bytes, want 16", ErrBadCHAPLength, len(challenge))
	}
	id := chapPassword[0]
	buf := make([]byte, 0, 1+len(password)+len(challenge))
	buf = append(buf, id)
	buf = append(buf, password...)
	buf = append(buf, challenge...)
	sum := md5.Sum(buf)
	return subtle.ConstantTimeCompare(sum[:], chapPassword[1:]) == 1, nil
}
