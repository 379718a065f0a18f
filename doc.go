// Package radius implements a client-side RADIUS protocol engine: RFC 2865
// authentication, RFC 2866 accounting, and RFC 3576 Change-of-Authorization
// / Disconnect. It builds, serializes, parses, and cryptographically
// verifies RADIUS datagrams against a dictionary of attribute types; it does
// not open sockets itself (see the transport subpackage) and does not run a
// server-side listener.
package radius
