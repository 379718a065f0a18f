package transport

import (
	"time"

	"github.com/andrewz1/radius/dictionary"
)

// Default UDP ports per RFC 2865/2866 and common CoA/Disconnect practice
// (spec.md §6). CoA/Disconnect has no IANA-assigned default; 3799 is the
// conventional port and the caller is expected to supply it explicitly.
const (
	DefaultAuthPort = 1812
	DefaultAcctPort = 1813
	DefaultCoAPort  = 3799
)

// Options configures one Exchange call: how long to wait for a reply and
// how many times to retry on timeout (spec.md §4.F).
type Options struct {
	// Timeout bounds how long a single send/receive attempt waits for a
	// reply before it is considered a timeout. Must be positive.
	Timeout time.Duration

	// RetryCount is how many additional attempts follow the first timeout,
	// i.e. the exchange makes at most RetryCount+1 total attempts. Zero means
	// a single attempt with no retries; must be non-negative.
	RetryCount int

	// Dict resolves attribute descriptors when decoding the response. Nil
	// falls back to dictionary.Default().
	Dict *dictionary.Dictionary
}

func (o Options) validate() error {
	if o.Timeout <= 0 {
		return ErrInvalidOptions
	}
	if o.RetryCount < 0 {
		return ErrInvalidOptions
	}
	return nil
}
