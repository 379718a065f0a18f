package radius

import (
	"encoding/binary"
	"fmt"

	"github.com/andrewz1/radius/internal/wire"
)

// vsaTypeCode is the RADIUS attribute type code reserved for
// Vendor-Specific Attribute containers (RFC 2865 §5.26).
const vsaTypeCode byte = 26

// VSA is a Vendor-Specific Attribute container: type-code 26, whose value
// payload is [vendor-id:4 big-endian][sub-attributes...]. All sub-attributes
// share ChildVendorID. Sub-attributes retain insertion order on encode (the
// RFC does not mandate sorting within a VSA, and some vendor servers are
// order-sensitive), unlike the packet's top-level attribute list.
type VSA struct {
	ChildVendorID uint32
	Subs          []*Attribute
}

// NewVSA returns an empty VSA container for the given vendor id.
func NewVSA(vendorID uint32) *VSA {
	return &VSA{ChildVendorID: vendorID}
}

// Code reports the VSA container's wire type code (always 26), for
// canonical top-level attribute ordering.
func (v *VSA) Code() byte { return vsaTypeCode }

// AddSub appends attr to the container. Fails with ErrVendorIDMismatch if
// attr.VendorID does not equal the container's ChildVendorID.
func (v *VSA) AddSub(attr *Attribute) error {
	if attr.VendorID != int32(v.ChildVendorID) {
		return fmt.Errorf("%w: sub-attribute vendor %d, container vendor %d",
			ErrVendorIDMismatch, attr.VendorID, v.ChildVendorID)
	}
	v.Subs = append(v.Subs, attr)
	return nil
}

// write serializes the container's payload: [vendor-id:4][sub-attrs...].
func (v *VSA) write() ([]byte, error) {
	vidBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(vidBuf, v.ChildVendorID)
	body := make([]byte, 0, 4+16*len(v.Subs))
	body = append(body, vidBuf...)
	for _, sub := range v.Subs {
		if len(sub.Data) > 253 {
			return nil, fmt.Errorf("%w: sub-attribute value too long", wire.ErrValueTooLong)
		}
		body = append(body, sub.TypeCode, byte(len(sub.Data)+2))
		body = append(body, sub.Data...)
	}
	if len(body)+2 >= 256 {
		return nil, ErrOversizedVSA
	}
	return body, nil
}

// encode emits the full [26][total-length][vendor-id][sub-attrs...] TLV.
func (v *VSA) encode(w *wire.Writer) error {
	body, err := v.write()
	if err != nil {
		return err
	}
	return w.Put(vsaTypeCode, body)
}

// parseVSA decodes a VSA container's value payload (everything after the
// outer [26][length] header). Requires at least 6 bytes (4-byte vendor id
// plus at least one empty-looking sub-attribute header); every inner
// [type][length] pair must exactly consume the declared payload, or
// ErrMalformedVSA is returned.
func parseVSA(dict attributeResolver, payload []byte) (*VSA, error) {
	if len(payload) < 6 {
		return nil, fmt.Errorf("%w: payload shorter than 6 bytes", ErrMalformedVSA)
	}
	vendorID := binary.BigEndian.Uint32(payload[:4])
	v := &VSA{ChildVendorID: vendorID}
	r := wire.NewReader(payload[4:])
	for r.Left() > 0 {
		typ, val, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVSA, err)
		}
		desc, _ := dict.AttributeByCode(int32(vendorID), typ)
		attr, err := newLeaf(int32(vendorID), typ, val, desc)
		if err != nil {
			return nil, err
		}
		v.Subs = append(v.Subs, attr)
	}
	return v, nil
}
