package radius_test

import (
	"bytes"
	"testing"

	"github.com/andrewz1/radius"
)

func TestCHAPEncodeVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	rng := &fixedReader{data: []byte("fixed-chap-seed")}
	chapPW, challenge, err := radius.EncodeCHAP("hunter2", rng)
	if err != nil {
		t.Fatalf("EncodeCHAP: %v", err)
	}
	ok, err := radius.VerifyCHAP(chapPW[:], challenge[:], "hunter2")
	if err != nil {
		t.Fatalf("VerifyCHAP: %v", err)
	}
	if !ok {
		t.Fatal("VerifyCHAP reported false for a password that matches the digest")
	}
}

func TestCHAPVerifyRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	rng := bytes.NewReader([]byte("0123456789abcdef0123456789abcdef"))
	chapPW, challenge, err := radius.EncodeCHAP("correct-password", rng)
	if err != nil {
		t.Fatalf("EncodeCHAP: %v", err)
	}
	ok, err := radius.VerifyCHAP(chapPW[:], challenge[:], "wrong-password")
	if err != nil {
		t.Fatalf("VerifyCHAP: %v", err)
	}
	if ok {
		t.Fatal("VerifyCHAP accepted a mismatched password")
	}
}

func TestCHAPVerifyRejectsBadLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		chapPassword  []byte
		chapChallenge []byte
	}{
		{name: "short chap-password", chapPassword: make([]byte, 16), chapChallenge: make([]byte, 16)},
		{name: "long chap-password", chapPassword: make([]byte, 18), chapChallenge: make([]byte, 16)},
		{name: "short challenge", chapPassword: make([]byte, 17), chapChallenge: make([]byte, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := radius.VerifyCHAP(tt.chapPassword, tt.chapChallenge, "whatever"); err == nil {
				t.Fatal("expected ErrBadCHAPLength")
			}
		})
	}
}
