package radius

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/andrewz1/radius/dictionary"
)

// AuthProtocol identifies which credential construction an Access-Request
// carries, or was decoded as carrying (spec.md §4.D/§4.E).
type AuthProtocol int

const (
	AuthUnknown AuthProtocol = iota
	AuthPAP
	AuthCHAP
	AuthMSCHAPv2
	AuthEAP
)

func (p AuthProtocol) String() string {
	switch p {
	case AuthPAP:
		return "PAP"
	case AuthCHAP:
		return "CHAP"
	case AuthMSCHAPv2:
		return "MS-CHAPv2"
	case AuthEAP:
		return "EAP"
	default:
		return "Unknown"
	}
}

// Well-known standard and Microsoft-vendor attribute codes this facade
// recognizes without requiring a caller-supplied dictionary.
const (
	typeUserName      byte = 1
	typeUserPassword  byte = 2
	typeCHAPPassword  byte = 3
	typeCHAPChallenge byte = 60
	typeEAPMessage    byte = 79

	vendorMicrosoft   uint32 = 311
	msCHAP2ResponseID byte   = 25
)

// AccessRequest is the Access-Request facade of spec.md §4.E: it owns a
// *Packet plus the cleartext credential and protocol tag needed to
// (re)materialize the User-Password or CHAP-Password/CHAP-Challenge
// attributes from plaintext at encode time.
type AccessRequest struct {
	*Packet
	requestState

	UserName string
	Password string
	Protocol AuthProtocol
}

// NewAccessRequest builds an unencoded Access-Request for userName,
// drawing a fresh identifier from the process-wide counter.
func NewAccessRequest(userName, password string, protocol AuthProtocol) *AccessRequest {
	return &AccessRequest{
		Packet:   NewPacket(CodeAccessRequest, NextIdentifier()),
		UserName: userName,
		Password: password,
		Protocol: protocol,
	}
}

// RawPacket returns the underlying *Packet, for callers (e.g. the transport
// package) that only need the wire-level view.
func (r *AccessRequest) RawPacket() *Packet { return r.Packet }

// Encode serializes the request, generating the request authenticator and
// materializing its credential attributes on first call, and reusing both
// verbatim on every subsequent call (a retransmit of the same exchange).
func (r *AccessRequest) Encode(secret []byte) ([]byte, error) {
	return r.encode(secret, rand.Reader)
}

func (r *AccessRequest) encode(secret []byte, rng io.Reader) ([]byte, error) {
	if r.state == StateBuilt {
		if !r.Packet.authSet {
			auth, err := GenerateRequestAuthenticator(secret, rng)
			if err != nil {
				return nil, err
			}
			r.Packet.Authenticator = auth
			r.Packet.authSet = true
		}
		if err := r.materialize(secret, rng); err != nil {
			return nil, err
		}
	}
	buf, err := r.Packet.encodeAccessRequest(secret, rng)
	if err != nil {
		return nil, err
	}
	r.markEncoded()
	return buf, nil
}

// materialize appends the User-Name attribute and, depending on Protocol,
// the PAP or CHAP credential attributes derived from the cleartext
// Password. It must run only once per request: the request authenticator
// (for PAP) and CHAP challenge are both fixed at this point and must not
// change across retransmits.
func (r *AccessRequest) materialize(secret []byte, rng io.Reader) error {
	if r.UserName == "" {
		return ErrMissingUserName
	}
	dict := dictionary.Default()

	unDesc, _ := dict.AttributeByName("User-Name")
	userNameAttr, err := NewString(typeUserName, unDesc, r.UserName)
	if err != nil {
		return err
	}
	r.Packet.Add(userNameAttr)

	switch r.Protocol {
	case AuthPAP:
		pwDesc, _ := dict.AttributeByName("User-Password")
		obfuscated := EncodePAP(r.Password, secret, r.Packet.Authenticator)
		attr, err := NewOctets(typeUserPassword, pwDesc, obfuscated)
		if err != nil {
			return err
		}
		r.Packet.Add(attr)
	case AuthCHAP:
		chapPW, challenge, err := EncodeCHAP(r.Password, rng)
		if err != nil {
			return err
		}
		cpDesc, _ := dict.AttributeByName("CHAP-Password")
		ccDesc, _ := dict.AttributeByName("CHAP-Challenge")
		pwAttr, err := NewOctets(typeCHAPPassword, cpDesc, chapPW[:])
		if err != nil {
			return err
		}
		chAttr, err := NewOctets(typeCHAPChallenge, ccDesc, challenge[:])
		if err != nil {
			return err
		}
		r.Packet.Add(pwAttr)
		r.Packet.Add(chAttr)
	case AuthMSCHAPv2, AuthEAP:
		return fmt.Errorf("%w: cannot materialize credentials for %s", ErrUnsupportedAuthProtocol, r.Protocol)
	default:
		return ErrMissingCredentials
	}
	return nil
}

// VerifyPassword checks resp as the Access-Accept/Access-Reject response to
// this request: it verifies the response authenticator and, for PAP/CHAP,
// returns nil once it verifies. The response code is not inspected, so an
// authentic Access-Reject also yields nil; callers read resp.Code to tell
// accept from reject. MS-CHAPv2 and EAP are classified but never
// cryptographically verified (spec.md §4.D); calling this with either
// protocol fails with ErrUnsupportedAuthProtocol.
func (r *AccessRequest) VerifyPassword(resp *Packet, secret []byte) error {
	if err := resp.VerifyResponseAuthenticator(secret, r.Packet.Authenticator); err != nil {
		r.MarkResponded(false)
		return err
	}
	r.MarkResponded(true)
	switch r.Protocol {
	case AuthPAP, AuthCHAP:
		return nil
	default:
		return ErrUnsupportedAuthProtocol
	}
}

// DecodeAccessRequest decodes buf as an Access-Request and classifies its
// auth protocol from the credential attributes present, per spec.md §4.E's
// server-side inspection path. Used by tests and by callers implementing
// the server side of an exchange for interoperability testing.
func DecodeAccessRequest(buf []byte, dict attributeResolver) (*AccessRequest, error) {
	code := CodeAccessRequest
	p, err := DecodePacket(buf, dict, &code)
	if err != nil {
		return nil, err
	}
	ar := &AccessRequest{Packet: p}
	ar.state = StateEncoded

	un := p.Find(typeUserName)
	if un == nil {
		return nil, ErrMissingUserName
	}
	ar.UserName = un.AsString()

	switch {
	case p.Find(typeCHAPPassword) != nil:
		ar.Protocol = AuthCHAP
	case p.Find(typeUserPassword) != nil:
		ar.Protocol = AuthPAP
	case hasMSCHAPv2(p):
		ar.Protocol = AuthMSCHAPv2
	case p.Find(typeEAPMessage) != nil:
		ar.Protocol = AuthEAP
	default:
		return nil, ErrMissingCredentials
	}
	return ar, nil
}

func hasMSCHAPv2(p *Packet) bool {
	for _, v := range p.VSAs() {
		if v.ChildVendorID != vendorMicrosoft {
			continue
		}
		for _, sub := range v.Subs {
			if sub.TypeCode == msCHAP2ResponseID {
				return true
			}
		}
	}
	return false
}
