package transport_test

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/andrewz1/radius"
	"github.com/andrewz1/radius/transport"
)

// fakeServer is a minimal UDP responder used to exercise Exchange's
// send/receive path without a real RADIUS server.
type fakeServer struct {
	conn *net.UDPConn
	addr netip.AddrPort
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	ap := conn.LocalAddr().(*net.UDPAddr).AddrPort()
	s := &fakeServer{conn: conn, addr: ap}
	t.Cleanup(func() { conn.Close() })
	return s
}

// respondOnce reads one request and replies with a packet of the given code
// signed with secret, reusing the request's identifier and authenticator.
func (s *fakeServer) respondOnce(t *testing.T, secret []byte, code radius.Code) {
	t.Helper()
	buf := make([]byte, radius.MaxPacketLen)
	n, raddr, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		t.Errorf("fake server ReadFromUDP: %v", err)
		return
	}
	req, err := radius.DecodePacket(buf[:n], nil, nil)
	if err != nil {
		t.Errorf("fake server DecodePacket: %v", err)
		return
	}
	resp := radius.NewPacket(code, req.Identifier)
	respBuf, err := resp.EncodeResponse(secret, req.Authenticator)
	if err != nil {
		t.Errorf("fake server EncodeResponse: %v", err)
		return
	}
	if _, err := s.conn.WriteToUDP(respBuf, raddr); err != nil {
		t.Errorf("fake server WriteToUDP: %v", err)
	}
}

func TestAuthenticateSucceedsAgainstAFakeServer(t *testing.T) {
	t.Parallel()

	secret := []byte("sharedsecret")
	server := newFakeServer(t)
	go server.respondOnce(t, secret, radius.CodeAccessAccept)

	req := radius.NewAccessRequest("bob", "hunter2", radius.AuthPAP)
	opts := transport.Options{Timeout: 2 * time.Second, RetryCount: 1}

	resp, err := transport.Authenticate(context.Background(), server.addr, req, secret, opts, nil, nil)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resp.Code != radius.CodeAccessAccept {
		t.Fatalf("Code = %v, want Access-Accept", resp.Code)
	}
	if req.State() != radius.StateRespondedVerified {
		t.Fatalf("request state = %v, want Responded(verified)", req.State())
	}
}

func TestAuthenticateRejectsUnexpectedResponseCode(t *testing.T) {
	t.Parallel()

	secret := []byte("sharedsecret")
	server := newFakeServer(t)
	go server.respondOnce(t, secret, radius.CodeAccountingResponse)

	req := radius.NewAccessRequest("bob", "hunter2", radius.AuthPAP)
	opts := transport.Options{Timeout: 2 * time.Second, RetryCount: 1}

	if _, err := transport.Authenticate(context.Background(), server.addr, req, secret, opts, nil, nil); err == nil {
		t.Fatal("expected ErrUnexpectedResponseCode for a non Accept/Reject response")
	}
}

func TestExchangeTimesOutAndRetries(t *testing.T) {
	t.Parallel()

	// Bind a UDP listener that never replies, so every request into it times
	// out. (A closed port would answer with ICMP port-unreachable, which
	// surfaces as a non-timeout "connection refused" read error.)
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	addr := conn.LocalAddr().(*net.UDPAddr).AddrPort()
	t.Cleanup(func() { conn.Close() })

	req := radius.NewCoARequest()
	opts := transport.Options{Timeout: 50 * time.Millisecond, RetryCount: 2}

	_, err = transport.Exchange(context.Background(), addr, req, []byte("secret"), opts, nil, nil)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if req.State() != radius.StateTimedOut {
		t.Fatalf("request state = %v, want TimedOut", req.State())
	}
}

func TestExchangeRejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	req := radius.NewCoARequest()
	addr := netip.MustParseAddrPort("127.0.0.1:1812")

	bad := []transport.Options{
		{Timeout: 0, RetryCount: 1},
		{Timeout: time.Second, RetryCount: -1},
	}
	for _, opts := range bad {
		if _, err := transport.Exchange(context.Background(), addr, req, []byte("secret"), opts, nil, nil); err == nil {
			t.Fatalf("expected ErrInvalidOptions for %+v", opts)
		}
	}
}

func TestExchangeDiscardsBadAuthenticatorWithoutRetrying(t *testing.T) {
	t.Parallel()

	server := newFakeServer(t)
	// The fake server signs with a different secret than the client
	// expects, so the response authenticator must fail verification.
	go server.respondOnce(t, []byte("wrong-secret"), radius.CodeCoAACK)

	req := radius.NewCoARequest()
	opts := transport.Options{Timeout: 2 * time.Second, RetryCount: 3}

	_, err := transport.Exchange(context.Background(), server.addr, req, []byte("right-secret"), opts, nil, nil)
	if err == nil {
		t.Fatal("expected a bad-authenticator error")
	}
	if req.State() != radius.StateRespondedBadAuth {
		t.Fatalf("request state = %v, want Responded(bad-auth)", req.State())
	}
}
