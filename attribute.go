package radius

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strconv"

	"github.com/andrewz1/radius/dictionary"
	"github.com/andrewz1/radius/internal/wire"
)

// Attribute is a single RADIUS attribute: either a top-level attribute of a
// Packet, or a sub-attribute inside a VSA container. Its wire framing is
// always [type:1][length:1][value:length-2]; Data holds the value bytes
// only. Desc is the dictionary descriptor that selected Data's typed view,
// or nil if the dictionary had no matching entry (in which case only the
// raw octet view is available).
//
// An Attribute is owned by exactly one Packet or one VSA container at a
// time; moving it across containers by mutating TypeCode/VendorID after
// construction is not supported.
type Attribute struct {
	TypeCode byte
	VendorID int32 // dictionary.NoVendor unless this is a VSA sub-attribute
	Data     []byte
	Desc     *dictionary.Descriptor
}

// Code reports the attribute's type code, used to canonicalize ordering on
// encode (spec.md §4.C: ascending type-code).
func (a *Attribute) Code() byte { return a.TypeCode }

func (a *Attribute) encode(w *wire.Writer) error {
	return w.Put(a.TypeCode, a.Data)
}

// newLeaf constructs a resolved Attribute from a dictionary lookup and
// validates its length against the descriptor's value-kind width, per
// spec.md §4.B.
func newLeaf(vendorID int32, typeCode byte, data []byte, desc *dictionary.Descriptor) (*Attribute, error) {
	if desc != nil {
		if err := validateWidth(desc.Kind, data); err != nil {
			return nil, err
		}
	}
	return &Attribute{TypeCode: typeCode, VendorID: vendorID, Data: data, Desc: desc}, nil
}

// validateWidth enforces the fixed/ranged widths of spec.md §4.B: 4 bytes
// for integer/date/ipv4 (wire length 6), 16 for ipv6 (wire length 18),
// 2..18 bytes for ipv6prefix, 6+ for vsa payload, unconstrained for
// string/octets beyond the generic TLV minimum already enforced by the wire
// reader.
func validateWidth(kind dictionary.Kind, data []byte) error {
	switch kind {
	case dictionary.KindInteger, dictionary.KindDate, dictionary.KindIPv4:
		if len(data) != 4 {
			return fmt.Errorf("%w: %s requires 4 bytes, got %d", ErrBadAttributeLength, kind, len(data))
		}
	case dictionary.KindIPv6:
		if len(data) != 16 {
			return fmt.Errorf("%w: %s requires 16 bytes, got %d", ErrBadAttributeLength, kind, len(data))
		}
	case dictionary.KindIPv6Prefix:
		if len(data) < 2 || len(data) > 18 {
			return fmt.Errorf("%w: %s requires 2..18 bytes, got %d", ErrBadAttributeLength, kind, len(data))
		}
	case dictionary.KindVSA:
		if len(data) < 6 {
			return fmt.Errorf("%w: vsa requires at least 6 bytes, got %d", ErrBadAttributeLength, len(data))
		}
	}
	return nil
}

// --- typed constructors -----------------------------------------------

// NewString builds a string-kind attribute. value is encoded as its raw
// UTF-8 byte sequence (Go strings are already byte sequences, so this is
// lossless regardless of validity). Fails if value is longer than 253
// bytes.
func NewString(typeCode byte, desc *dictionary.Descriptor, value string) (*Attribute, error) {
	if len(value) > 253 {
		return nil, fmt.Errorf("%w: string value too long (%d bytes)", ErrBadAttributeLength, len(value))
	}
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: []byte(value), Desc: desc}, nil
}

// NewOctets builds a raw-octets attribute from value (copied defensively).
func NewOctets(typeCode byte, desc *dictionary.Descriptor, value []byte) (*Attribute, error) {
	if len(value) > 253 {
		return nil, fmt.Errorf("%w: octets value too long (%d bytes)", ErrBadAttributeLength, len(value))
	}
	data := make([]byte, len(value))
	copy(data, value)
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: data, Desc: desc}, nil
}

// NewInteger builds a 4-byte big-endian unsigned integer attribute.
func NewInteger(typeCode byte, desc *dictionary.Descriptor, value uint32) *Attribute {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, value)
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: data, Desc: desc}
}

// NewIPv4 builds a 4-byte IPv4 address attribute.
func NewIPv4(typeCode byte, desc *dictionary.Descriptor, addr netip.Addr) (*Attribute, error) {
	if !addr.Is4() {
		return nil, fmt.Errorf("%w: %s is not an IPv4 address", ErrBadAttributeLength, addr)
	}
	b := addr.As4()
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: b[:], Desc: desc}, nil
}

// NewIPv6 builds a 16-byte IPv6 address attribute.
func NewIPv6(typeCode byte, desc *dictionary.Descriptor, addr netip.Addr) (*Attribute, error) {
	if !addr.Is6() {
		return nil, fmt.Errorf("%w: %s is not an IPv6 address", ErrBadAttributeLength, addr)
	}
	b := addr.As16()
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: b[:], Desc: desc}, nil
}

// NewIPv6Prefix builds an ipv6-prefix attribute: [reserved=0][prefixLen][prefix bytes].
// Trailing bytes beyond prefixLen bits are omitted (the reader treats
// missing trailing bytes as zero per spec.md §4.B).
func NewIPv6Prefix(typeCode byte, desc *dictionary.Descriptor, prefix netip.Prefix) (*Attribute, error) {
	if !prefix.Addr().Is6() {
		return nil, fmt.Errorf("%w: %s is not an IPv6 prefix", ErrBadAttributeLength, prefix)
	}
	bits := prefix.Bits()
	if bits < 0 || bits > 128 {
		return nil, fmt.Errorf("%w: prefix length %d out of range", ErrBadAttributeLength, bits)
	}
	full := prefix.Addr().As16()
	nbytes := (bits + 7) / 8
	data := make([]byte, 2+nbytes)
	data[0] = 0
	data[1] = byte(bits)
	copy(data[2:], full[:nbytes])
	return &Attribute{TypeCode: typeCode, VendorID: dictionary.NoVendor, Data: data, Desc: desc}, nil
}

// --- typed readers -------------------------------------------------------

// AsString renders the attribute's value as text, choosing the rendering
// per the dictionary's kind (or, with no descriptor, the raw "0x..." hex
// form).
func (a *Attribute) AsString() string {
	kind := dictionary.KindOctets
	if a.Desc != nil {
		kind = a.Desc.Kind
	}
	switch kind {
	case dictionary.KindString:
		return string(a.Data)
	case dictionary.KindInteger, dictionary.KindDate:
		if len(a.Data) == 4 {
			v := binary.BigEndian.Uint32(a.Data)
			if a.Desc != nil {
				if name, ok := a.Desc.EnumName(v); ok {
					return name
				}
			}
			return strconv.FormatUint(uint64(v), 10)
		}
	case dictionary.KindIPv4:
		if len(a.Data) == 4 {
			addr := netip.AddrFrom4([4]byte(a.Data))
			return addr.String()
		}
	case dictionary.KindIPv6:
		if len(a.Data) == 16 {
			addr := netip.AddrFrom16([16]byte(a.Data))
			return addr.String()
		}
	case dictionary.KindIPv6Prefix:
		if p, ok := a.asIPv6Prefix(); ok {
			return p.String()
		}
	}
	return hexString(a.Data)
}

func hexString(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 2+2*len(b))
	out[0], out[1] = '0', 'x'
	for i, c := range b {
		out[2+2*i] = hexdigits[c>>4]
		out[2+2*i+1] = hexdigits[c&0xf]
	}
	return string(out)
}

// AsUint32 returns the attribute's value as a big-endian uint32; it is only
// meaningful for integer/date-kind attributes whose Data is exactly 4
// bytes.
func (a *Attribute) AsUint32() (uint32, bool) {
	if len(a.Data) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(a.Data), true
}

// AsIPv4 returns the attribute's value as an IPv4 netip.Addr.
func (a *Attribute) AsIPv4() (netip.Addr, bool) {
	if len(a.Data) != 4 {
		return netip.Addr{}, false
	}
	return netip.AddrFrom4([4]byte(a.Data)), true
}

// AsIPv6 returns the attribute's value as an IPv6 netip.Addr.
func (a *Attribute) AsIPv6() (netip.Addr, bool) {
	if len(a.Data) != 16 {
		return netip.Addr{}, false
	}
	return netip.AddrFrom16([16]byte(a.Data)), true
}

func (a *Attribute) asIPv6Prefix() (netip.Prefix, bool) {
	p, ok := decodeIPv6Prefix(a.Data)
	return p, ok
}

// AsIPv6Prefix decodes the attribute's [reserved][prefix-length][prefix]
// framing into a netip.Prefix. Missing trailing prefix bytes are treated
// as zero.
func (a *Attribute) AsIPv6Prefix() (netip.Prefix, bool) {
	return decodeIPv6Prefix(a.Data)
}

func decodeIPv6Prefix(data []byte) (netip.Prefix, bool) {
	if len(data) < 2 || len(data) > 18 {
		return netip.Prefix{}, false
	}
	bits := int(data[1])
	if bits > 128 {
		return netip.Prefix{}, false
	}
	var full [16]byte
	copy(full[:], data[2:])
	addr := netip.AddrFrom16(full)
	return netip.PrefixFrom(addr, bits), true
}
