// Package memrepo implements the in-memory, hierarchy-aware object store.
//
// ARCHITECTURE:
//
// Shared registry state:
// All storage lives in a Registry — a process-wide table of per-kind
// buckets plus a memoized superclass index. Store instances are
// lightweight handles; any number of stores constructed for the same kind
// operate on the same buckets, so instance identity is irrelevant and only
// kind identity matters.
//
// Insert fan-out:
// The store respects declared kind ancestry. Constructing a store for a
// kind freezes its lineage: the ancestors that already have a registry
// bucket at that moment. Insert writes to the kind's own bucket and to
// every lineage bucket, so objects inserted through a subclass store are
// observable through stores of registered ancestor kinds.
//
// ORDERING PRECONDITION:
// The lineage is memoized on first construction for a kind and never
// recomputed. Register ancestor kinds before constructing stores for
// their descendants; registering an ancestor afterwards does not
// retroactively extend already-frozen lineages.
//
// ASYMMETRY:
// Insert fans out to ancestor buckets; Update, Remove and Pop touch only
// the kind's own bucket.
//
// Synchronization:
// A single RWMutex guards the registry table. The source design is
// single-threaded; the lock is a deliberate extension so the store is
// safe under concurrent use.
package memrepo
