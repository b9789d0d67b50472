// Package multicast owns the UDP sockets for one multicast group
// membership: a listener bound to the group address and a separate
// sender socket pinned to the selected outbound interface.
package multicast

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	// MaxDatagramSize bounds a single datagram on the group.
	MaxDatagramSize = 1024

	defaultReadTimeout = 1 * time.Second
)

// Config describes one group membership.
type Config struct {
	Address string // multicast group literal, v4 or v6
	Port    int
	// Interface selects the outbound interface by name. Empty means the
	// platform default.
	Interface   string
	ReadTimeout time.Duration
}

// Network returns the address family for a group literal. A literal
// containing a colon is treated as IPv6.
func Network(address string) string {
	if strings.Contains(address, ":") {
		return "udp6"
	}
	return "udp4"
}

// Validate checks the config without touching the network stack.
// Interface resolution happens in Open.
func (c Config) Validate() error {
	ip := net.ParseIP(c.Address)
	if ip == nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, c.Address)
	}
	if !ip.IsMulticast() {
		return fmt.Errorf("%w: %q", ErrNotMulticast, c.Address)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	return nil
}

// GroupConn is an open group membership. It is owned by a single
// session for its running lifetime.
type GroupConn struct {
	group       *net.UDPAddr
	listener    *net.UDPConn
	sender      *net.UDPConn
	readTimeout time.Duration
	closeOnce   sync.Once
	closeErr    error
}

// Open joins the group described by cfg. The listener is bound to the
// group address and joined before the sender socket is prepared; any
// failure tears down what was opened and nothing is retried.
func Open(cfg Config) (*GroupConn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var iface *net.Interface
	if cfg.Interface != "" {
		ifi, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInterfaceNotFound, cfg.Interface)
		}
		iface = ifi
	}

	network := Network(cfg.Address)
	group := &net.UDPAddr{IP: net.ParseIP(cfg.Address), Port: cfg.Port}

	listener, err := net.ListenMulticastUDP(network, iface, group)
	if err != nil {
		return nil, fmt.Errorf("join multicast group %s: %w", group, err)
	}
	_ = listener.SetReadBuffer(MaxDatagramSize)

	sender, err := openSender(network, iface)
	if err != nil {
		listener.Close()
		return nil, err
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	return &GroupConn{
		group:       group,
		listener:    listener,
		sender:      sender,
		readTimeout: readTimeout,
	}, nil
}

// openSender binds a wildcard socket for outbound datagrams and pins
// the multicast interface on it. Loopback stays enabled so the local
// receiver observes its own envelopes and exercises the self-discard
// path.
func openSender(network string, iface *net.Interface) (*net.UDPConn, error) {
	conn, err := net.ListenUDP(network, &net.UDPAddr{Port: 0})
	if err != nil {
		return nil, fmt.Errorf("open sender socket: %w", err)
	}

	if network == "udp4" {
		p := ipv4.NewPacketConn(conn)
		if iface != nil {
			if err := p.SetMulticastInterface(iface); err != nil {
				conn.Close()
				return nil, fmt.Errorf("set multicast interface %q: %w", iface.Name, err)
			}
		}
		_ = p.SetMulticastLoopback(true)
	} else {
		p := ipv6.NewPacketConn(conn)
		if iface != nil {
			if err := p.SetMulticastInterface(iface); err != nil {
				conn.Close()
				return nil, fmt.Errorf("set multicast interface %q: %w", iface.Name, err)
			}
		}
		_ = p.SetMulticastLoopback(true)
	}

	return conn, nil
}

// Send fires one datagram at the group. Best effort: a failure is
// returned to the caller but leaves the sockets open.
func (c *GroupConn) Send(p []byte) error {
	if _, err := c.sender.WriteToUDP(p, c.group); err != nil {
		return fmt.Errorf("send to %s: %w", c.group, err)
	}
	return nil
}

// Receive blocks for at most the configured read timeout and reports
// ErrReadTimeout when nothing arrived, so the caller can re-check its
// cancellation signal.
func (c *GroupConn) Receive(buf []byte) (int, net.Addr, error) {
	if err := c.listener.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return 0, nil, fmt.Errorf("set read deadline: %w", err)
	}

	n, src, err := c.listener.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return 0, nil, ErrReadTimeout
		}
		return 0, nil, err
	}
	return n, src, nil
}

// Group returns the group address this connection is joined to.
func (c *GroupConn) Group() *net.UDPAddr {
	return c.group
}

// Close releases both sockets. Safe to call more than once.
func (c *GroupConn) Close() error {
	c.closeOnce.Do(func() {
		lerr := c.listener.Close()
		serr := c.sender.Close()
		if lerr != nil {
			c.closeErr = lerr
		} else {
			c.closeErr = serr
		}
	})
	return c.closeErr
}
