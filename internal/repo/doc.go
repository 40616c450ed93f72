// Package repo defines the repository contract shared by all store
// implementations: the operation surface, the two recoverable failure
// kinds (NoRepository, NotFound), the fatal identity-conflict condition,
// the predicate type used by filtering operations, and the Guard helper
// that converts a chosen subset of failures into a per-item outcome.
//
// The contract is deliberately storage-agnostic. Package memrepo provides
// the in-memory, hierarchy-aware implementation.
package repo
