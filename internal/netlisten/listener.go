package netlisten

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// Listener wraps a bound net.Listener together with the port it actually
// bound to, so a caller that asked for port 0 (ephemeral) never has to
// poll for the answer.
type Listener struct {
	net.Listener
	Port int
}

// Option configures Listen. Grounded on the functional-options pattern the
// teacher uses for its own server constructor.
type Option func(*config) error

type config struct {
	host string
}

// WithHost overrides the bind address; Listen defaults to all interfaces.
func WithHost(host string) Option {
	return func(c *config) error {
		c.host = host
		return nil
	}
}

// Listen opens a TCP listener on requestedPort (0 for an ephemeral port),
// setting SO_REUSEADDR before bind, matching the source's explicit
// setsockopt call, and returns the listener's actual bound port directly.
func Listen(requestedPort int, opts ...Option) (*Listener, error) {
	cfg := &config{host: "0.0.0.0"}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			if err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			}); err != nil {
				return err
			}
			return sockErr
		},
	}

	addr := fmt.Sprintf("%s:%d", cfg.host, requestedPort)
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, err
	}

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		ln.Close()
		return nil, fmt.Errorf("netlisten: unexpected listener address type %T", ln.Addr())
	}
	return &Listener{Listener: ln, Port: tcpAddr.Port}, nil
}

// MaskSIGPIPE ignores SIGPIPE process-wide. Writes to a peer that has
// dropped the connection then surface as an ordinary write error instead
// of killing the process; the read side's EOF shortly after is what a
// handler actually reacts to.
func MaskSIGPIPE() {
	signal.Ignore(syscall.SIGPIPE)
}
