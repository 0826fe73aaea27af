// Package http sends resolved requests over the wire.
//
// The client wraps net/http with connection pooling, a configurable
// redirect policy, optional proxy support and per-request timeouts,
// and translates raw responses into the shape the rest of reqvault
// works with.
package http
