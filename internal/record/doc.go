// Package record defines the closed scalar variant exchanged with callers
// of the table store.
//
// A record is an ephemeral field-name-to-scalar mapping. The scalar set is
// sealed to {Null, Int, Real, Text, Blob}; conversions from native Go types
// and from database driver types happen only at the package boundary, so
// the SQL-building code never inspects arbitrary runtime types.
package record
