// Package store persists labeled circuit datasets in SQLite.
//
// Each circuit row carries a UUID identity, a content-addressed hash, a
// clean/buggy label, and the circuit body as JSON; buggy rows additionally
// carry their injection records. Writes are idempotent (ON CONFLICT DO
// NOTHING on the row ID) and reads are deterministically ordered by
// sequence then ID, so a dataset exported twice from the same store is
// byte-identical.
package store
