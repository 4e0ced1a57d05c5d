// Package common contains constants and small helpers shared by the
// authshell client packages.
package common

// TokenStorageKey is the durable storage key holding the token issued on
// registration.
const TokenStorageKey = "token"

const (
	// RequestIDHeaderName carries the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// AuthorizationScheme prefixes the stored token in the Authorization
	// header, e.g. "Token 9944b09199c62bcf".
	AuthorizationScheme = "Token"
)
