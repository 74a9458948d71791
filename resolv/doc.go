// Package resolv provides the client for resolving model identifiers against a models
// repository.  The client is responsible for invoking the correct driver (local directory
// or remote HTTP endpoint) for the configured repository location, and for driving the
// resolution of requested identifiers and their dependencies.
//
// A Client is constructed once and reused.  Its configuration is read only, so a single
// Client may serve concurrent resolutions.
package resolv
