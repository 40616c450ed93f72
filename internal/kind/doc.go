// Package kind models class identity for the object store.
//
// A Kind names a class of stored objects and declares its ancestry
// statically. The store never reflects over Go type embedding at runtime;
// instead, callers declare "is-ancestor-of" relationships explicitly when
// constructing kinds, and the store walks that declared chain.
//
// Identifiers are NFC-normalized so that two spellings of the same
// qualified name always compare equal. Two kinds yield the same identifier
// iff they name the same class.
package kind
