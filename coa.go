package radius

// CoARequest is the CoA-Request facade of spec.md §4.E: it uses the same
// deterministic request-authenticator construction as Accounting-Request,
// and imposes no mandatory attribute beyond whatever the application adds.
type CoARequest struct {
	*Packet
	requestState
}

// NewCoARequest builds an unencoded CoA-Request, drawing a fresh identifier
// from the process-wide counter.
func NewCoARequest() *CoARequest {
	return &CoARequest{Packet: NewPacket(CodeCoARequest, NextIdentifier())}
}

// RawPacket returns the underlying *Packet, for callers (e.g. the transport
// package) that only need the wire-level view.
func (r *CoARequest) RawPacket() *Packet { return r.Packet }

// Encode serializes the request, recomputing the deterministic authenticator
// on every call; a retransmit of an unchanged request therefore reproduces
// the same bytes.
func (r *CoARequest) Encode(secret []byte) ([]byte, error) {
	buf, err := r.Packet.EncodeDeterministicRequest(secret)
	if err != nil {
		return nil, err
	}
	r.markEncoded()
	return buf, nil
}

// DecodeCoARequest decodes buf as a CoA-Request and verifies its
// deterministic request authenticator against secret.
func DecodeCoARequest(buf []byte, dict attributeResolver, secret []byte) (*CoARequest, error) {
	code := CodeCoARequest
	p, err := DecodePacket(buf, dict, &code)
	if err != nil {
		return nil, err
	}
	if err := p.VerifyRequestAuthenticator(secret); err != nil {
		return nil, err
	}
	r := &CoARequest{Packet: p}
	r.state = StateEncoded
	return r, nil
}

// DisconnectRequest is the Disconnect-Request facade of spec.md §4.E: same
// deterministic authenticator construction as CoA-Request and
// Accounting-Request, no mandatory attribute beyond what the application
// supplies.
type DisconnectRequest struct {
	*Packet
	requestState
}

// NewDisconnectRequest builds an unencoded Disconnect-Request, drawing a
// fresh identifier from the process-wide counter.
func NewDisconnectRequest() *DisconnectRequest {
	return &DisconnectRequest{Packet: NewPacket(CodeDisconnectRequest, NextIdentifier())}
}

// RawPacket returns the underlying *Packet, for callers (e.g. the transport
// package) that only need the wire-level view.
func (r *DisconnectRequest) RawPacket() *Packet { return r.Packet }

// Encode serializes the request, recomputing the deterministic authenticator
// on every call; a retransmit of an unchanged request therefore reproduces
// the same bytes.
func (r *DisconnectRequest) Encode(secret []byte) ([]byte, error) {
	buf, err := r.Packet.EncodeDeterministicRequest(secret)
	if err != nil {
		return nil, err
	}
	r.markEncoded()
	return buf, nil
}

// DecodeDisconnectRequest decodes buf as a Disconnect-Request and verifies
// its deterministic request authenticator against secret.
func DecodeDisconnectRequest(buf []byte, dict attributeResolver, secret []byte) (*DisconnectRequest, error) {
	code := CodeDisconnectRequest
	p, err := DecodePacket(buf, dict, &code)
	if err != nil {
		return nil, err
	}
	if err := p.VerifyRequestAuthenticator(secret); err != nil {
		return nil, err
	}
	r := &DisconnectRequest{Packet: p}
	r.state = StateEncoded
	return r, nil
}
