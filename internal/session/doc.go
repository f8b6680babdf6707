// Package session caches the derived vault key for the lifetime of a single
// session so it does not have to be re-derived on every start.
//
// Only session-scoped stores belong here: a dump of durable storage must
// never contain usable key material.
package session
