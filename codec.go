package radius

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andrewz1/radius/dictionary"
	"github.com/andrewz1/radius/internal/wire"
)

// EncodeAccessRequest serializes p as an Access-Request, generating the
// request authenticator MD5(secret||random) on first call and reusing it
// verbatim on subsequent calls (retransmits) so responders can deduplicate
// by identifier+authenticator.
func (p *Packet) EncodeAccessRequest(secret []byte) ([]byte, error) {
	return p.encodeAccessRequest(secret, rand.Reader)
}

func (p *Packet) encodeAccessRequest(secret []byte, rng io.Reader) ([]byte, error) {
	if !p.authSet {
		auth, err := GenerateRequestAuthenticator(secret, rng)
		if err != nil {
			return nil, err
		}
		p.Authenticator = auth
		p.authSet = true
	}
	attrBytes, err := p.serializeAttributes()
	if err != nil {
		return nil, err
	}
	return p.assemble(attrBytes, p.Authenticator), nil
}

// EncodeDeterministicRequest serializes p using the Accounting/CoA/
// Disconnect deterministic authenticator construction (spec.md §4.D). The
// authenticator is recomputed from p's current contents on every call and
// stored on p, so re-encoding an unchanged packet reproduces the same bytes.
func (p *Packet) EncodeDeterministicRequest(secret []byte) ([]byte, error) {
	attrBytes, err := p.serializeAttributes()
	if err != nil {
		return nil, err
	}
	length := uint16(HeaderLen + len(attrBytes))
	auth := DeterministicRequestAuthenticator(p.Code, p.Identifier, length, attrBytes, secret)
	p.Authenticator = auth
	p.authSet = true
	return p.assemble(attrBytes, auth), nil
}

// EncodeResponse serializes p as a response to requestAuth, computing the
// Response Authenticator. This is used to build synthetic/test responses
// and by callers implementing the server side of an exchange for
// interoperability testing; a pure client never needs it in production.
func (p *Packet) EncodeResponse(secret []byte, requestAuth [16]byte) ([]byte, error) {
	attrBytes, err := p.serializeAttributes()
	if err != nil {
		return nil, err
	}
	length := uint16(HeaderLen + len(attrBytes))
	auth := ResponseAuthenticator(p.Code, p.Identifier, length, requestAuth, attrBytes, secret)
	p.Authenticator = auth
	return p.assemble(attrBytes, auth), nil
}

func (p *Packet) assemble(attrBytes []byte, auth [16]byte) []byte {
	length := uint16(HeaderLen + len(attrBytes))
	buf := make([]byte, length)
	writeHeader(buf, p.Code, p.Identifier, length, auth)
	copy(buf[HeaderLen:], attrBytes)
	p.raw = buf
	return buf
}

// rawTLV is the pass-1 output: a validated [type][value] pair whose framing
// has already been checked, before any dictionary-driven typed
// construction happens in pass 2.
type rawTLV struct {
	typ   byte
	value []byte
}

// validateAttributeFraming is pass 1 of spec.md §4.C's decode walk: it
// confirms that successive [type][length] pairs exactly cover the declared
// attribute-section length, with every length >= 2, without consulting the
// dictionary at all. Any inconsistency is ErrMalformedPacket.
func validateAttributeFraming(section []byte) ([]rawTLV, error) {
	r := wire.NewReader(section)
	var out []rawTLV
	for r.Left() > 0 {
		typ, val, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPacket, err)
		}
		out = append(out, rawTLV{typ: typ, value: val})
	}
	return out, nil
}

// buildAttributes is pass 2: it walks the framing-validated TLVs and
// constructs typed *Attribute / *VSA entries via dict, failing with
// ErrBadAttributeLength or ErrMalformedVSA for an individual entry's typed
// construction (as opposed to pass 1's purely structural failures).
func buildAttributes(tlvs []rawTLV, dict attributeResolver) ([]tlv, error) {
	entries := make([]tlv, 0, len(tlvs))
	for _, t := range tlvs {
		if t.typ == vsaTypeCode {
			v, err := parseVSA(dict, t.value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, v)
			continue
		}
		desc, _ := dict.AttributeByCode(dictionary.NoVendor, t.typ)
		attr, err := newLeaf(dictionary.NoVendor, t.typ, t.value, desc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, attr)
	}
	return entries, nil
}

// DecodePacket parses buf as a RADIUS datagram, validating the header and
// the attribute framing, then constructing typed attributes via dict. If
// forceType is non-nil, the returned packet's Code is overridden (used when
// a reply does not carry meaningful code context of its own, e.g. certain
// transport fixtures); the code byte on the wire is otherwise always
// trusted as received.
func DecodePacket(buf []byte, dict attributeResolver, forceType *Code) (*Packet, error) {
	if len(buf) < HeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedPacket, len(buf), HeaderLen)
	}
	length := binary.BigEndian.Uint16(buf[2:4])
	if int(length) < HeaderLen || int(length) > MaxPacketLen || int(length) > len(buf) {
		return nil, fmt.Errorf("%w: declared length %d inconsistent with %d-byte buffer", ErrMalformedPacket, length, len(buf))
	}
	raw := buf[:length]

	tlvs, err := validateAttributeFraming(raw[HeaderLen:])
	if err != nil {
		return nil, err
	}
	if dict == nil {
		dict = dictionary.Default()
	}
	entries, err := buildAttributes(tlvs, dict)
	if err != nil {
		return nil, err
	}

	p := &Packet{
		Code:       Code(raw[0]),
		Identifier: raw[1],
		Attributes: entries,
		authSet:    true,
		raw:        raw,
	}
	copy(p.Authenticator[:], raw[4:20])
	if forceType != nil {
		p.Code = *forceType
	}
	return p, nil
}

// DecodeResponse decodes buf as a response to req: it verifies the
// identifier matches req.Identifier (ErrIdentifierMismatch) and that the
// Response Authenticator verifies against secret and req's authenticator
// (ErrBadResponseAuthenticator), in that order.
func DecodeResponse(buf []byte, dict attributeResolver, req *Packet, secret []byte) (*Packet, error) {
	resp, err := DecodePacket(buf, dict, nil)
	if err != nil {
		return nil, err
	}
	if resp.Identifier != req.Identifier {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrIdentifierMismatch, resp.Identifier, req.Identifier)
	}
	if err := resp.VerifyResponseAuthenticator(secret, req.Authenticator); err != nil {
		return nil, err
	}
	return resp, nil
}
