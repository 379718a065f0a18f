package radius_test

import (
	"testing"

	"github.com/andrewz1/radius"
)

func TestCoARequestEncodeDecode(t *testing.T) {
	t.Parallel()

	secret := []byte("sharedsecret")
	req := radius.NewCoARequest()
	attr, err := radius.NewString(1, nil, "bob")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	req.Add(attr)

	buf, err := req.Encode(secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := radius.DecodeCoARequest(buf, nil, secret)
	if err != nil {
		t.Fatalf("DecodeCoARequest: %v", err)
	}
	if decoded.Code != radius.CodeCoARequest {
		t.Fatalf("Code = %v, want CoA-Request", decoded.Code)
	}
	if got := decoded.Find(1); got == nil || got.AsString() != "bob" {
		t.Fatalf("User-Name = %v, want bob", got)
	}
}

func TestDisconnectRequestEncodeDecode(t *testing.T) {
	t.Parallel()

	secret := []byte("sharedsecret")
	req := radius.NewDisconnectRequest()

	buf, err := req.Encode(secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := radius.DecodeDisconnectRequest(buf, nil, secret)
	if err != nil {
		t.Fatalf("DecodeDisconnectRequest: %v", err)
	}
	if decoded.Code != radius.CodeDisconnectRequest {
		t.Fatalf("Code = %v, want Disconnect-Request", decoded.Code)
	}
}

func TestCoARequestRejectsTamperedAuthenticator(t *testing.T) {
	t.Parallel()

	req := radius.NewCoARequest()
	buf, err := req.Encode([]byte("secret-a"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := radius.DecodeCoARequest(buf, nil, []byte("secret-b")); err == nil {
		t.Fatal("expected ErrBadRequestAuthenticator for a mismatched secret")
	}
}
