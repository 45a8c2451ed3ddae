// Package session provides the stream transport to the IPMC
// management port: a single TCP connection with a per-operation
// deadline on every byte read and written, dial retry with backoff,
// and classification of timeouts versus connection failures.
package session
