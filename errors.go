package radius

import "errors"

// Sentinel errors for every error kind named by the protocol engine. Each
// carries an informative message; none are ever constructed empty (a past
// source of bugs in prior implementations of this exchange discarded the
// message on construction).
var (
	// ErrMalformedPacket is returned when the header/attribute framing of a
	// decoded datagram is inconsistent (declared length does not match the
	// attribute TLV walk).
	ErrMalformedPacket = errors.New("radius: malformed packet")

	// ErrBadAttributeLength is returned when a typed attribute's value
	// length does not match the width its value-kind requires.
	ErrBadAttributeLength = errors.New("radius: attribute length mismatch for its type")

	// ErrMalformedVSA is returned when a Vendor-Specific Attribute's inner
	// sub-attribute walk does not exactly consume the declared payload.
	ErrMalformedVSA = errors.New("radius: malformed vendor-specific attribute")

	// ErrVendorIDMismatch is returned by VSA.AddSub when the sub-attribute's
	// vendor id does not match the container's.
	ErrVendorIDMismatch = errors.New("radius: sub-attribute vendor id does not match VSA container")

	// ErrOversizedVSA is returned when a VSA's total encoded payload would
	// reach or exceed 256 bytes.
	ErrOversizedVSA = errors.New("radius: vendor-specific attribute payload too large")

	// ErrIdentifierMismatch is returned when a decoded response's identifier
	// does not match the request it is being correlated against.
	ErrIdentifierMismatch = errors.New("radius: response identifier does not match request")

	// ErrBadResponseAuthenticator is returned when a response's transmitted
	// Response Authenticator does not match the recomputed MD5 digest.
	ErrBadResponseAuthenticator = errors.New("radius: response authenticator verification failed")

	// ErrBadRequestAuthenticator is returned when a deterministically-signed
	// request (Accounting/CoA/Disconnect) fails request-authenticator
	// verification.
	ErrBadRequestAuthenticator = errors.New("radius: request authenticator verification failed")

	// ErrPacketTooLong is returned at encode time when the serialized
	// packet would exceed the 4096-byte RADIUS datagram limit.
	ErrPacketTooLong = errors.New("radius: encoded packet exceeds 4096 bytes")

	// ErrMissingCredentials is returned when an Access-Request carries no
	// attributes recognized as a credential (PAP/CHAP/MS-CHAPv2/EAP).
	ErrMissingCredentials = errors.New("radius: access-request has no recognized credential attributes")

	// ErrUnsupportedAuthProtocol is returned by VerifyPassword when the
	// request's auth protocol is MS-CHAPv2 or EAP: this engine classifies
	// those attributes but does not implement their cryptographic
	// verification.
	ErrUnsupportedAuthProtocol = errors.New("radius: verification not implemented for this auth protocol")

	// ErrUnknownAttributeName names the unknown-attribute-name error kind. No
	// function in this package returns it: dictionary name lookups report a
	// missing descriptor through their bool result.
	ErrUnknownAttributeName = errors.New("radius: unknown attribute name")

	// ErrMissingUserName is returned when a facade finds no User-Name: an
	// empty UserName at encode time, or no User-Name attribute on decode. A
	// decoded request carrying several User-Name attributes is not rejected;
	// the first one is used.
	ErrMissingUserName = errors.New("radius: exactly one User-Name attribute is required")

	// ErrMissingAcctStatusType is returned when an Accounting-Request lacks
	// a valid Acct-Status-Type attribute.
	ErrMissingAcctStatusType = errors.New("radius: accounting-request requires Acct-Status-Type in 1..15")

	// ErrBadCHAPLength is returned by VerifyCHAP when the CHAP-Password or
	// CHAP-Challenge attribute is not the required fixed length.
	ErrBadCHAPLength = errors.New("radius: chap-password or chap-challenge has wrong length")
)
