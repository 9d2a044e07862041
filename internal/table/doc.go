// Package table provides a schema-flexible record store over a single
// SQLite table. Records are field-name-to-scalar mappings; the table's
// column set grows automatically as records introduce new fields, with each
// column's storage kind inferred from the first non-null value observed.
//
// # Invariants
//
//   - The schema snapshot (lower-cased column names cached on the handle)
//     is refreshed from engine metadata after every structural change,
//     never computed incrementally, so it also picks up drift from other
//     writers. It is always a superset of every column referenced by a
//     completed insert or update.
//   - Every identifier interpolated into a statement - table, column, and
//     index names - goes through EscapeIdentifier. Values always go
//     through bound parameters.
//   - Result iteration is ordered by rowid, the engine-assigned monotonic
//     row identity.
//   - Upsert runs its existence check and conditional write inside a
//     single BEGIN EXCLUSIVE transaction, so concurrent upserts cannot
//     race into duplicate inserts.
//
// # Known quirks
//
//   - Predicates render a Null match as a literal `name = NULL`, not
//     IS NULL. Under SQLite's three-valued logic that comparison matches
//     nothing; existing callers depend on the literal form, so it stays.
//   - Upsert's insert branch writes the record alone, not a merge with the
//     matching map.
package table
