// Package resolver implements get-or-fetch for preprint metadata.
//
// Resolve turns an arXiv id into a cached paper. The local store is always
// consulted first; only on a miss is the upstream metadata service called,
// and the fetched record is validated, mapped and stored before it is
// returned. Cached records are never refreshed.
//
// Concurrent misses for the same identifier within one process share a
// single upstream fetch. Across processes the store's unique identifier
// constraint makes the losing writer re-read the winner's row, so a
// paper is stored exactly once either way.
package resolver
