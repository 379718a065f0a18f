package radius

import (
	"fmt"

	"github.com/andrewz1/radius/dictionary"
)

// typeAcctStatusType is the standard Acct-Status-Type attribute code.
const typeAcctStatusType byte = 40

// AccountingRequest is the Accounting-Request facade of spec.md §4.E: it
// requires User-Name and an Acct-Status-Type in 1..15, and signs with the
// deterministic (Accounting/CoA/Disconnect) authenticator construction.
type AccountingRequest struct {
	*Packet
	requestState

	UserName   string
	StatusType uint32
}

// NewAccountingRequest builds an unencoded Accounting-Request for userName
// with the given Acct-Status-Type, drawing a fresh identifier from the
// process-wide counter.
func NewAccountingRequest(userName string, statusType uint32) *AccountingRequest {
	return &AccountingRequest{
		Packet:     NewPacket(CodeAccountingRequest, NextIdentifier()),
		UserName:   userName,
		StatusType: statusType,
	}
}

// RawPacket returns the underlying *Packet, for callers (e.g. the transport
// package) that only need the wire-level view.
func (r *AccountingRequest) RawPacket() *Packet { return r.Packet }

// Encode serializes the request, materializing its mandatory attributes on
// first call only; the deterministic authenticator is recomputed on every
// call, so a retransmit of an unchanged request reproduces the same bytes.
func (r *AccountingRequest) Encode(secret []byte) ([]byte, error) {
	if r.state == StateBuilt {
		if err := r.materialize(); err != nil {
			return nil, err
		}
	}
	buf, err := r.Packet.EncodeDeterministicRequest(secret)
	if err != nil {
		return nil, err
	}
	r.markEncoded()
	return buf, nil
}

func (r *AccountingRequest) materialize() error {
	if r.UserName == "" {
		return ErrMissingUserName
	}
	if r.StatusType < 1 || r.StatusType > 15 {
		return fmt.Errorf("%w: got %d", ErrMissingAcctStatusType, r.StatusType)
	}
	dict := dictionary.Default()

	unDesc, _ := dict.AttributeByName("User-Name")
	userNameAttr, err := NewString(typeUserName, unDesc, r.UserName)
	if err != nil {
		return err
	}
	r.Packet.Add(userNameAttr)

	statusDesc, _ := dict.AttributeByName("Acct-Status-Type")
	r.Packet.Add(NewInteger(typeAcctStatusType, statusDesc, r.StatusType))
	return nil
}

// DecodeAccountingRequest decodes buf as an Accounting-Request, enforcing
// the same mandatory attributes Encode materializes, and verifies the
// deterministic request authenticator against secret. Used by tests and by
// callers implementing the server side of an exchange for interoperability
// testing.
func DecodeAccountingRequest(buf []byte, dict attributeResolver, secret []byte) (*AccountingRequest, error) {
	code := CodeAccountingRequest
	p, err := DecodePacket(buf, dict, &code)
	if err != nil {
		return nil, err
	}
	if err := p.VerifyRequestAuthenticator(secret); err != nil {
		return nil, err
	}
	ar := &AccountingRequest{Packet: p}
	ar.state = StateEncoded

	un := p.Find(typeUserName)
	if un == nil {
		return nil, ErrMissingUserName
	}
	ar.UserName = un.AsString()

	st := p.Find(typeAcctStatusType)
	if st == nil {
		return nil, ErrMissingAcctStatusType
	}
	v, ok := st.AsUint32()
	if !ok || v < 1 || v > 15 {
		return nil, fmt.Errorf("%w: got %v", ErrMissingAcctStatusType, v)
	}
	ar.StatusType = v
	return ar, nil
}
