// Package molcache implements a local cache of compound property records
// keyed by the query that resolved them. It is plain storage: lookups that
// miss report the miss and nothing else, fetching from the remote provider
// is the caller's job. A cache can be persisted to a versioned, human
// readable JSON file and loaded back without loss.
//
// The package performs no locking. A cache shared between goroutines must
// be synchronized by its owner.
package molcache
