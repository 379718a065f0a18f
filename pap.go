package radius

import "crypto/md5" //nolint:gosec // MD5 is mandated by RFC 2865 §5.2 for PAP obfuscation.

// EncodePAP obfuscates password into a User-Password attribute value per
// RFC 2865 §5.2: password is zero-padded to the next multiple of 16 bytes
// (truncated to 128 bytes if longer), then XORed, 16 bytes at a time,
// against a chained MD5 keystream seeded from secret and ra.
func EncodePAP(password string, secret []byte, ra [16]byte) []byte {
	p := padPassword([]byte(password))
	out := make([]byte, len(p))
	prev := ra[:]
	for i := 0; i < len(p); i += 16 {
		b := md5Block(secret, prev)
		for j := 0; j < 16; j++ {
			out[i+j] = p[i+j] ^ b[j]
		}
		prev = out[i : i+16]
	}
	return out
}

// DecodePAP reverses EncodePAP and strips trailing zero bytes from the
// recovered plaintext (the padding scheme cannot distinguish a password
// that genuinely ends in zero bytes from padding; this is the documented
// characteristic of the scheme, not a defect here).
func DecodePAP(encoded []byte, secret []byte, ra [16]byte) string {
	out := make([]byte, len(encoded)-len(encoded)%16)
	prev := ra[:]
	for i := 0; i+16 <= len(encoded); i += 16 {
		b := md5Block(secret, prev)
		for j := 0; j < 16; j++ {
			out[i+j] = encoded[i+j] ^ b[j]
		}
		prev = encoded[i : i+16]
	}
	end := len(out)
	for end > 0 && out[end-1] == 0 {
		end--
	}
	return string(out[:end])
}

func padPassword(p []byte) []byte {
	if len(p) > 128 {
		p = p[:128]
	}
	if len(p) == 0 {
		return make([]byte, 16)
	}
	if rem := len(p) % 16; rem != 0 {
		padded := make([]byte, len(p)+(16-rem))
		copy(padded, p)
		return padded
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

func md5Block(secret, prev []byte) [16]byte {
	buf := make([]byte, 0, len(secret)+len(prev))
	buf = append(buf, secret...)
	buf = append(buf, prev...)
	return md5.Sum(buf)
}
