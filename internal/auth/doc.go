// Package auth provides password hashing, session management and the
// route-level authorization guards (active user, admin user).
//
// Sessions are stored server-side in SQLite via scs; the cookie only
// carries a random token. Guards re-read the user on every request so
// deactivation and privilege changes apply immediately.
package auth
