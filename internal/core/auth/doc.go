// Package auth holds the credential-checking core of the API: bcrypt
// password hashing, HS256 bearer tokens, the per-request authenticator
// that turns a token back into an active user, and the team access guard.
//
// Everything here is stateless. The signing secret is handed to
// NewTokenService once at startup and never changes afterwards.
package auth
