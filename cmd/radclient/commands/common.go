package commands

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"time"

	"github.com/andrewz1/radius/dictionary"
	"github.com/andrewz1/radius/internal/config"
	"github.com/andrewz1/radius/transport"
)

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// resolveAddr resolves addr (host:port, numeric or not) to a netip.AddrPort,
// since the library's transport layer works in terms of netip rather than
// net.Addr.
func resolveAddr(addr string) (netip.AddrPort, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("resolve %q: %w", addr, err)
	}
	ap, ok := netip.AddrFromSlice(udpAddr.IP)
	if !ok {
		return netip.AddrPort{}, fmt.Errorf("resolve %q: unrepresentable IP %v", addr, udpAddr.IP)
	}
	return netip.AddrPortFrom(ap.Unmap(), uint16(udpAddr.Port)), nil
}

// loadDictionary loads the dictionary named by cfg.Dictionary, falling back
// to the bundled default when cfg.Dictionary is empty.
func loadDictionary(c *config.Config) (*dictionary.Dictionary, error) {
	if c.Dictionary == "" {
		return dictionary.Default(), nil
	}
	f, err := os.Open(c.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", c.Dictionary, err)
	}
	defer f.Close()

	d := dictionary.New()
	dir := filepath.Dir(c.Dictionary)
	if err := dictionary.Parse(d, f, dir, dictionary.OSFileSystem{}); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", c.Dictionary, err)
	}
	return d, nil
}

func exchangeOptions(c *config.Config, dict *dictionary.Dictionary) transport.Options {
	return transport.Options{
		Timeout:    c.Server.Timeout,
		RetryCount: c.Server.RetryCount,
		Dict:       dict,
	}
}
