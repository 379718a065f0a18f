package radius_test

import (
	"testing"

	"github.com/andrewz1/radius"
)

func TestVSARoundTrip(t *testing.T) {
	t.Parallel()

	const vendorID = 9 // an arbitrary vendor id not present in the bundled dictionary
	v := radius.NewVSA(vendorID)
	sub, err := radius.NewString(1, nil, "shell:priv-lvl=15")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	sub.VendorID = vendorID
	if err := v.AddSub(sub); err != nil {
		t.Fatalf("AddSub: %v", err)
	}

	p := radius.NewPacket(radius.CodeAccessAccept, 1)
	p.Add(v)

	buf, err := p.EncodeResponse([]byte("secret"), [16]byte{})
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}

	decoded, err := radius.DecodePacket(buf, nil, nil)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	vsas := decoded.VSAs()
	if len(vsas) != 1 {
		t.Fatalf("got %d VSA containers, want 1", len(vsas))
	}
	if vsas[0].ChildVendorID != vendorID {
		t.Fatalf("ChildVendorID = %d, want %d", vsas[0].ChildVendorID, vendorID)
	}
	// Vendor 9 has no descriptor in the bundled dictionary, so the sub-attribute
	// decodes with a nil Desc and only its raw bytes carry the original text.
	if len(vsas[0].Subs) != 1 || string(vsas[0].Subs[0].Data) != "shell:priv-lvl=15" {
		t.Fatalf("sub-attributes = %+v, want one string sub matching the original", vsas[0].Subs)
	}
}

func TestVSAAddSubRejectsVendorMismatch(t *testing.T) {
	t.Parallel()

	v := radius.NewVSA(9)
	sub, err := radius.NewString(1, nil, "x")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	sub.VendorID = 311 // Microsoft, deliberately wrong for this container
	if err := v.AddSub(sub); err == nil {
		t.Fatal("expected ErrVendorIDMismatch")
	}
}

func TestVSAOversizedContainerFails(t *testing.T) {
	t.Parallel()

	v := radius.NewVSA(9)
	big := make([]byte, 250)
	for i := 0; i < 10; i++ {
		sub, err := radius.NewOctets(byte(i+1), nil, big)
		if err != nil {
			t.Fatalf("NewOctets: %v", err)
		}
		sub.VendorID = 9
		if err := v.AddSub(sub); err != nil {
			t.Fatalf("AddSub: %v", err)
		}
	}

	p := radius.NewPacket(radius.CodeAccessAccept, 1)
	p.Add(v)
	if _, err := p.EncodeResponse([]byte("secret"), [16]byte{}); err == nil {
		t.Fatal("expected ErrOversizedVSA (or ErrPacketTooLong) for an oversized VSA payload")
	}
}
