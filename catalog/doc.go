// Package catalog loads the source document catalog and computes the
// canonical hash that binds an embedding index to the exact catalog
// contents it was built from.
//
// Canonicalization parses the catalog as JSON and re-serializes it with
// object keys sorted and insignificant whitespace removed, so the hash is
// stable under formatting changes and key reordering but sensitive to any
// value change.
package catalog
