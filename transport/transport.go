// Package transport implements the client-side UDP exchange contract of
// spec.md §4.F: send an encoded RADIUS request, wait for a reply bounded by
// a timeout, retry on timeout only, and hand the raw reply bytes to the
// codec for deframing and authenticator verification. Framing and
// cryptographic failures are never retried (spec.md §7): a malformed or
// forged reply will not become well-formed on a retry.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/andrewz1/radius"
	"github.com/google/uuid"
)

// OutboundRequest is satisfied by every packet-type facade
// (*radius.AccessRequest, *radius.AccountingRequest, *radius.CoARequest,
// *radius.DisconnectRequest): just enough surface for Exchange to encode
// the request, track its lifecycle state, and hand back the underlying
// wire packet for response correlation.
type OutboundRequest interface {
	Encode(secret []byte) ([]byte, error)
	RawPacket() *radius.Packet
	MarkInFlight()
	MarkResponded(verified bool)
	MarkTimedOut()
}

// Exchange sends req to addr and returns the verified response, retrying on
// timeout up to opts.RetryCount additional times. Framing errors, identifier
// mismatches, and authenticator failures returned by the codec propagate
// immediately without being retried. logger and col may be nil.
func Exchange(ctx context.Context, addr netip.AddrPort, req OutboundRequest, secret []byte, opts Options, col *Collector, logger *slog.Logger) (*radius.Packet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if addr.Port() == 0 {
		return nil, fmt.Errorf("%w: port must be 1..65535", ErrInvalidOptions)
	}
	if logger == nil {
		logger = slog.Default()
	}

	buf, err := req.Encode(secret)
	if err != nil {
		return nil, err
	}

	traceID := uuid.New()
	peer := addr.String()
	logger = logger.With(slog.String("trace_id", traceID.String()), slog.String("peer", peer))

	udpAddr := net.UDPAddrFromAddrPort(addr)
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("radius/transport: dial %s: %w", peer, err)
	}
	defer conn.Close()

	respBuf := make([]byte, radius.MaxPacketLen)
	var lastTimeoutErr error

	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		select {
		case <-ctx.Done():
			req.MarkTimedOut()
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			col.incRetries(peer)
			logger.Warn("retrying RADIUS exchange", slog.Int("attempt", attempt))
		}

		req.MarkInFlight()
		if _, err := conn.Write(buf); err != nil {
			return nil, fmt.Errorf("radius/transport: write to %s: %w", peer, err)
		}
		col.incSent(peer)

		if err := conn.SetReadDeadline(time.Now().Add(opts.Timeout)); err != nil {
			return nil, fmt.Errorf("radius/transport: set read deadline: %w", err)
		}

		n, err := conn.Read(respBuf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				lastTimeoutErr = err
				continue
			}
			return nil, fmt.Errorf("radius/transport: read from %s: %w", peer, err)
		}

		var resp *radius.Packet
		if opts.Dict != nil {
			resp, err = radius.DecodeResponse(respBuf[:n], opts.Dict, req.RawPacket(), secret)
		} else {
			resp, err = radius.DecodeResponse(respBuf[:n], nil, req.RawPacket(), secret)
		}
		if err != nil {
			req.MarkResponded(false)
			col.incRejected(peer)
			logger.Warn("discarding invalid RADIUS response", slog.String("error", err.Error()))
			return nil, err
		}
		req.MarkResponded(true)
		col.incReceived(peer)
		logger.Debug("RADIUS exchange completed", slog.Int("attempt", attempt))
		return resp, nil
	}

	req.MarkTimedOut()
	col.incTimeouts(peer)
	return nil, fmt.Errorf("%w: %s: %v", ErrTimeout, peer, lastTimeoutErr)
}

// Authenticate runs an Access-Request exchange and applies spec.md §7's
// user-visible success rule: the call succeeds only when a response parses,
// its authenticator verifies, and the code is Access-Accept or
// Access-Reject. Any other response code is an error; the caller
// distinguishes accept from reject via resp.Code.
func Authenticate(ctx context.Context, addr netip.AddrPort, req *radius.AccessRequest, secret []byte, opts Options, col *Collector, logger *slog.Logger) (*radius.Packet, error) {
	resp, err := Exchange(ctx, addr, req, secret, opts, col, logger)
	if err != nil {
		return nil, err
	}
	switch resp.Code {
	case radius.CodeAccessAccept, radius.CodeAccessReject:
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnexpectedResponseCode, resp.Code)
	}
}
