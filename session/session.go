package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/jpillora/backoff"
)

// Config holds the session configuration.
type Config struct {
	// Timeout bounds every individual read and write on the session
	Timeout time.Duration

	// DialAttempts is the number of connection attempts before Dial
	// gives up
	DialAttempts int

	// DialBackoffMin and DialBackoffMax bound the delay between
	// connection attempts
	DialBackoffMin time.Duration
	DialBackoffMax time.Duration
}

func defaultConfig() Config {
	return Config{
		Timeout:        5 * time.Second,
		DialAttempts:   3,
		DialBackoffMin: 250 * time.Millisecond,
		DialBackoffMax: 2 * time.Second,
	}
}

// Option is a functional option for configuring the session.
type Option func(*Config)

// WithTimeout sets the per-operation read/write timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithDialAttempts sets the number of connection attempts.
func WithDialAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.DialAttempts = attempts
		}
	}
}

// Session owns a single stream connection to the controller's
// management port. All reads and writes go through the per-operation
// deadline; the zero-synchronization echo/prompt protocol on top of it
// requires that a session is never shared between concurrent exchanges.
type Session struct {
	conn    net.Conn
	timeout time.Duration
}

// Dial opens a session to the controller, retrying failed connection
// attempts with exponential backoff. Management networks to crate-
// mounted controllers drop connections routinely, so a single failed
// attempt is not treated as fatal.
func Dial(host string, port int, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	b := &backoff.Backoff{
		Min:    cfg.DialBackoffMin,
		Max:    cfg.DialBackoffMax,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt < cfg.DialAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(b.Duration())
		}
		conn, err := net.DialTimeout("tcp", addr, cfg.Timeout)
		if err == nil {
			return &Session{conn: conn, timeout: cfg.Timeout}, nil
		}
		lastErr = err
	}

	return nil, &ConnectError{Addr: addr, Attempts: cfg.DialAttempts, Err: lastErr}
}

// NewSession wraps an existing connection. Intended for tests and for
// callers that establish the connection themselves.
func NewSession(conn net.Conn, timeout time.Duration) *Session {
	return &Session{conn: conn, timeout: timeout}
}

// ReadByte reads exactly one byte, failing if none arrives within the
// session timeout.
func (s *Session) ReadByte() (byte, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		return 0, fmt.Errorf("arm read deadline: %w", err)
	}
	var buf [1]byte
	if _, err := s.conn.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteByte writes exactly one byte, failing if it cannot be sent
// within the session timeout.
func (s *Session) WriteByte(b byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("arm write deadline: %w", err)
	}
	var buf = [1]byte{b}
	if _, err := s.conn.Write(buf[:]); err != nil {
		return err
	}
	return nil
}

// RemoteAddr returns the address of the controller end.
func (s *Session) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

// Close releases the underlying connection. Safe to call on every exit
// path; double close reports the net package's usual error, which
// callers deferring Close may ignore.
func (s *Session) Close() error {
	return s.conn.Close()
}
