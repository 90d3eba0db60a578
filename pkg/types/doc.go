// Package types holds the small set of types shared by every layer of
// propkit: the typed error kinds callers branch on, the aggregated Record
// returned by dumps and lookups, and the Catalog collaborator interface.
package types
