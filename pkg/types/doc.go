// Package types defines the entity records, metadata payloads, the host
// environment interface, and the standard errors shared by the certbook
// registry core and its storage backends.
package types
