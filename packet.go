package radius

import (
	"encoding/binary"
	"fmt"

	"github.com/andrewz1/radius/dictionary"
	"github.com/andrewz1/radius/internal/wire"
)

// Code is the one-byte RADIUS packet code (RFC 2865/2866/3576).
type Code byte

// Packet codes used by this engine (spec.md §6).
const (
	CodeAccessRequest      Code = 1
	CodeAccessAccept       Code = 2
	CodeAccessReject       Code = 3
	CodeAccountingRequest  Code = 4
	CodeAccountingResponse Code = 5
	CodeAccessChallenge    Code = 11
	CodeDisconnectRequest  Code = 40
	CodeDisconnectACK      Code = 41
	CodeDisconnectNAK      Code = 42
	CodeCoARequest         Code = 43
	CodeCoAACK             Code = 44
	CodeCoANAK             Code = 45
)

func (c Code) String() string {
	switch c {
	case CodeAccessRequest:
		return "Access-Request"
	case CodeAccessAccept:
		return "Access-Accept"
	case CodeAccessReject:
		return "Access-Reject"
	case CodeAccountingRequest:
		return "Accounting-Request"
	case CodeAccountingResponse:
		return "Accounting-Response"
	case CodeAccessChallenge:
		return "Access-Challenge"
	case CodeDisconnectRequest:
		return "Disconnect-Request"
	case CodeDisconnectACK:
		return "Disconnect-ACK"
	case CodeDisconnectNAK:
		return "Disconnect-NAK"
	case CodeCoARequest:
		return "CoA-Request"
	case CodeCoAACK:
		return "CoA-ACK"
	case CodeCoANAK:
		return "CoA-NAK"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(c))
	}
}

// HeaderLen is the fixed RADIUS header size: code(1) + identifier(1) +
// length(2) + authenticator(16).
const HeaderLen = 20

// MaxPacketLen is the maximum total encoded datagram size (RFC 2865 §3).
const MaxPacketLen = 4096

// tlv is satisfied by *Attribute and *VSA: the two wire-level variants a
// Packet's attribute list can hold (spec.md §9: a sum/variant type, not a
// class hierarchy).
type tlv interface {
	Code() byte
	encode(w *wire.Writer) error
}

// attributeResolver is the read-side subset of *dictionary.Dictionary that
// the codec needs; it exists so tests can supply a fake without
// constructing a full Dictionary.
type attributeResolver interface {
	AttributeByCode(vendorID int32, typeCode byte) (*dictionary.Descriptor, bool)
}

// Packet is a decoded or to-be-encoded RADIUS datagram: header fields plus
// an attribute list. Attributes is unordered; Encode canonicalizes to
// ascending type-code order (spec.md §4.C) — sub-attributes inside a VSA
// keep insertion order regardless.
type Packet struct {
	Code          Code
	Identifier    byte
	Authenticator [16]byte

	Attributes []tlv

	// authSet records whether Authenticator already holds a generated
	// value. Access-Request authenticators are generated once and reused
	// verbatim across retransmits of the same identifier (spec.md §3); this
	// flag, not a zero-value check, is what distinguishes "never encoded"
	// from "encoded, retry in flight".
	authSet bool

	// raw holds the exact bytes this Packet was last encoded to or decoded
	// from. It is required to recompute/verify authenticators, which are
	// defined over the transmitted byte sequence, not a structural
	// re-serialization that might legitimately differ (e.g. VSA
	// sub-attribute order is caller-controlled, not canonicalized).
	raw []byte
}

// NewPacket returns an empty packet with the given code and identifier.
// The authenticator is left zero; an Encode* call fills it in.
func NewPacket(code Code, identifier byte) *Packet {
	return &Packet{Code: code, Identifier: identifier}
}

// Add appends attr (an *Attribute or *VSA) to the packet's attribute list.
func (p *Packet) Add(attr tlv) {
	p.Attributes = append(p.Attributes, attr)
}

// Find returns the first top-level, non-VSA attribute with the given type
// code, or nil.
func (p *Packet) Find(typeCode byte) *Attribute {
	for _, t := range p.Attributes {
		if a, ok := t.(*Attribute); ok && a.TypeCode == typeCode {
			return a
		}
	}
	return nil
}

// FindAll returns every top-level, non-VSA attribute with the given type
// code, in packet order.
func (p *Packet) FindAll(typeCode byte) []*Attribute {
	var out []*Attribute
	for _, t := range p.Attributes {
		if a, ok := t.(*Attribute); ok && a.TypeCode == typeCode {
			out = append(out, a)
		}
	}
	return out
}

// VSAs returns every Vendor-Specific Attribute container in the packet.
func (p *Packet) VSAs() []*VSA {
	var out []*VSA
	for _, t := range p.Attributes {
		if v, ok := t.(*VSA); ok {
			out = append(out, v)
		}
	}
	return out
}

// Raw returns the exact bytes this packet was encoded to or decoded from,
// or nil if it has never been encoded/decoded.
func (p *Packet) Raw() []byte {
	return p.raw
}

// serializeAttributes writes the packet's attribute list in ascending
// type-code order (spec.md §4.C) and enforces the 4096-byte datagram
// budget, returning ErrPacketTooLong if exceeded.
func (p *Packet) serializeAttributes() ([]byte, error) {
	ordered := make([]tlv, len(p.Attributes))
	copy(ordered, p.Attributes)
	// Stable sort by ascending type code; attributes sharing a code keep
	// their relative insertion order.
	stableSortByCode(ordered)

	w := wire.NewWriter(HeaderLen)
	for _, t := range ordered {
		if err := t.encode(w); err != nil {
			return nil, err
		}
		if HeaderLen+w.Len() > MaxPacketLen {
			return nil, ErrPacketTooLong
		}
	}
	return w.Bytes(), nil
}

func stableSortByCode(entries []tlv) {
	// Insertion sort: attribute lists are short (well under a few hundred
	// entries in any real packet), and insertion sort is stable by
	// construction with no extra allocation.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Code() > entries[j].Code(); j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}

func writeHeader(buf []byte, code Code, id byte, length uint16, auth [16]byte) {
	buf[0] = byte(code)
	buf[1] = id
	binary.BigEndian.PutUint16(buf[2:4], length)
	copy(buf[4:20], auth[:])
}
