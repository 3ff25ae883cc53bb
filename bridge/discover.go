package bridge

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/enbility/zeroconf/v3"
)

const (
	// ServiceType is the mDNS service the bridge daemon advertises.
	ServiceType = "_joyterm._tcp"
	mdnsDomain  = "local."
)

// Discover browses mDNS for a bridge daemon and returns its address as
// host:port. The first instance found wins; the context bounds the search.
func Discover(ctx context.Context) (string, error) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- zeroconf.Browse(browseCtx, ServiceType, mdnsDomain, entries, removed)
	}()

	for {
		select {
		case entry := <-entries:
			if entry == nil {
				continue
			}
			if addr := entryAddr(entry); addr != "" {
				return addr, nil
			}
		case <-removed:
		case err := <-errCh:
			if err != nil {
				return "", fmt.Errorf("mdns browse: %w", err)
			}
			return "", fmt.Errorf("no bridge found via mDNS (%s)", ServiceType)
		case <-ctx.Done():
			return "", fmt.Errorf("no bridge found via mDNS (%s): %w", ServiceType, ctx.Err())
		}
	}
}

func entryAddr(e *zeroconf.ServiceEntry) string {
	port := strconv.Itoa(e.Port)
	for _, ip := range e.AddrIPv4 {
		return net.JoinHostPort(ip.String(), port)
	}
	for _, ip := range e.AddrIPv6 {
		return net.JoinHostPort(ip.String(), port)
	}
	if e.HostName != "" {
		return net.JoinHostPort(e.HostName, port)
	}
	return ""
}
