package session

import (
	"errors"
	"net"
	"testing"
	"time"
)

func TestReadByteTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	s := NewSession(client, 50*time.Millisecond)

	// Peer never writes: the read must fail with a timeout, not hang.
	start := time.Now()
	_, err := s.ReadByte()
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("read blocked for %v, deadline did not fire", elapsed)
	}
}

func TestReadByteEOFIsNotTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	s := NewSession(client, time.Second)
	server.Close()

	_, err := s.ReadByte()
	if err == nil {
		t.Fatal("expected error on closed peer, got nil")
	}
	if IsTimeout(err) {
		t.Errorf("closed peer misclassified as timeout: %v", err)
	}
}

func TestReadWriteByte(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	s := NewSession(client, time.Second)

	go func() {
		buf := make([]byte, 1)
		if _, err := server.Read(buf); err != nil {
			return
		}
		server.Write(buf) // echo
	}()

	if err := s.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	b, err := s.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b != 'x' {
		t.Errorf("echoed byte = %q, want %q", b, byte('x'))
	}
}

func TestDialSuccess(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	s, err := Dial("127.0.0.1", port, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	if s.RemoteAddr() == nil {
		t.Error("RemoteAddr() = nil on an open session")
	}
}

func TestDialFailure(t *testing.T) {
	// Grab a port and close the listener so nothing is there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial("127.0.0.1", port, WithTimeout(100*time.Millisecond), WithDialAttempts(2))
	if err == nil {
		t.Fatal("expected connect error, got nil")
	}

	var cerr *ConnectError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %T, want *ConnectError", err)
	}
	if cerr.Attempts != 2 {
		t.Errorf("ConnectError.Attempts = %d, want 2", cerr.Attempts)
	}
}

func TestCloseIdempotent(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	s := NewSession(client, time.Second)
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	// Second close must not panic; its error is irrelevant.
	_ = s.Close()
}
