// Package ipmc provides a high-level API for provisioning the
// persistent identity fields of a service module's IPMC over its
// telnet console.
//
// # Overview
//
// This package orchestrates the complete provisioning sequence:
//   - Deriving the write-command sequence from a configuration mapping
//   - Exchanging each command over the echo-synchronized console
//   - Reading back the EEPROM status dump
//   - Verifying the dump against the expected post-write state
//
// # Basic Usage
//
//	s, err := session.Dial("192.168.22.32", protocol.DefaultPort)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	cfg := ipmc.New(s)
//	report, err := cfg.Configure(context.Background(), values)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !report.OK() {
//	    // inspect report.Verification.Failures()
//	}
//
// # The Exchange Discipline
//
// The console is half-duplex and echo-synchronized: every transmitted
// byte is echoed before the next may be sent, and a single '>' byte
// followed by a fixed two-byte suffix delimits each response. There is
// no other framing. The package implements the cycle as an explicit
// three-phase automaton (transmit-echo, receive-until-prompt,
// discard-suffix) and runs exchanges strictly sequentially on a
// session; concurrent use would desynchronize the stream with no
// corresponding benefit, as the controller processes commands
// serially anyway.
//
// # Failure Model
//
// A command that times out is skipped and the run continues; real
// hardware stalls on individual writes without the session being lost.
// Connection failures and protocol violations (non-ASCII response
// bytes) abort the run. Verification mismatches never interrupt the
// sequence; they are collected in the Report.
//
// # Progress and Logging
//
// Track the run with a callback, and plug in any logging framework via
// the small Logger interface:
//
//	cfg := ipmc.New(s,
//	    ipmc.WithProgressCallback(func(p ipmc.Progress) {
//	        fmt.Printf("[%s] %d/%d %s\n", p.Phase, p.Index, p.Total, p.Command)
//	    }),
//	    ipmc.WithLogger(myLogger),
//	)
package ipmc
