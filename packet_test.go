package radius_test

import (
	"bytes"
	"testing"

	"github.com/andrewz1/radius"
	"github.com/andrewz1/radius/dictionary"
)

func TestPacketAddFindFindAll(t *testing.T) {
	t.Parallel()

	p := radius.NewPacket(radius.CodeAccessRequest, 7)
	a1, err := radius.NewString(1, nil, "bob")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	a2, err := radius.NewString(1, nil, "alice")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	p.Add(a1)
	p.Add(a2)
	p.Add(radius.NewInteger(5, nil, 42))

	if got := p.Find(1); got != a1 {
		t.Fatalf("Find(1) returned %v, want the first match", got)
	}
	all := p.FindAll(1)
	if len(all) != 2 || all[0] != a1 || all[1] != a2 {
		t.Fatalf("FindAll(1) = %v, want [a1 a2] in insertion order", all)
	}
	if got := p.Find(99); got != nil {
		t.Fatalf("Find(99) = %v, want nil", got)
	}
}

func TestPacketEncodeOrdersAttributesByAscendingCode(t *testing.T) {
	t.Parallel()

	p := radius.NewPacket(radius.CodeAccountingRequest, 3)
	p.Add(radius.NewInteger(40, nil, 1)) // Acct-Status-Type
	p.Add(radius.NewInteger(1, nil, 1))  // User-Name placeholder code
	p.Add(radius.NewInteger(5, nil, 1))

	buf, err := p.EncodeDeterministicRequest([]byte("secret"))
	if err != nil {
		t.Fatalf("EncodeDeterministicRequest: %v", err)
	}

	// Walk the attribute section and confirm ascending type-code order,
	// per spec.md §4.C's canonicalization rule.
	body := buf[radius.HeaderLen:]
	var codes []byte
	for i := 0; i < len(body); {
		codes = append(codes, body[i])
		l := int(body[i+1])
		i += l
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("attribute codes not ascending: %v", codes)
		}
	}
}

func TestDecodePacketRoundTripAccessAccept(t *testing.T) {
	t.Parallel()

	secret := []byte("sharedsecret")
	reqAuth := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	resp := radius.NewPacket(radius.CodeAccessAccept, 9)
	dict := dictionary.Default()
	desc, _ := dict.AttributeByName("Reply-Message")
	attr, err := radius.NewString(18, desc, "welcome")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	resp.Add(attr)

	buf, err := resp.EncodeResponse(secret, reqAuth)
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}

	decoded, err := radius.DecodePacket(buf, dict, nil)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if decoded.Code != radius.CodeAccessAccept {
		t.Fatalf("Code = %v, want Access-Accept", decoded.Code)
	}
	if decoded.Identifier != 9 {
		t.Fatalf("Identifier = %d, want 9", decoded.Identifier)
	}
	if got := decoded.Find(18); got == nil || got.AsString() != "welcome" {
		t.Fatalf("Reply-Message = %v, want %q", got, "welcome")
	}
	if !bytes.Equal(decoded.Raw(), buf) {
		t.Fatalf("Raw() does not match the encoded bytes")
	}
}

func TestDecodePacketRejectsShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := radius.DecodePacket(make([]byte, 4), nil, nil)
	if err == nil {
		t.Fatal("expected an error for a buffer shorter than the header")
	}
}

func TestDecodePacketRejectsLengthMismatch(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 20)
	buf[0] = byte(radius.CodeAccessAccept)
	buf[2], buf[3] = 0, 30 // declares 30 bytes but only 20 are present
	_, err := radius.DecodePacket(buf, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a declared length exceeding the buffer")
	}
}

func TestPacketEncodeTooLongFails(t *testing.T) {
	t.Parallel()

	p := radius.NewPacket(radius.CodeAccountingRequest, 1)
	// RFC 2865 §3 bounds a datagram to 4096 bytes; force past it with many
	// maximum-sized octets attributes.
	big := make([]byte, 253)
	for i := range big {
		big[i] = 'x'
	}
	for i := 0; i < 20; i++ {
		attr, err := radius.NewOctets(byte(10+i), nil, big)
		if err != nil {
			t.Fatalf("NewOctets: %v", err)
		}
		p.Add(attr)
	}
	if _, err := p.EncodeDeterministicRequest([]byte("secret")); err == nil {
		t.Fatal("expected ErrPacketTooLong")
	}
}
