// Package table provides flat CSV-backed tabular storage with a
// schema-on-read contract.
//
// The stores persist to three comma-separated tables:
//   - Users: account rows (username, password digest, email)
//   - Tasks: pending task rows (one per task, full row rewrite on mutation)
//   - Completed: append-only completion history
//
// # Leniency Policy
//
// Reads never fail on absent, empty, or schema-mismatched files. The
// expected schema is materialized instead: missing files and headers
// yield zero rows, and missing columns are filled with each column's
// declared default. Only genuine I/O failures surface as errors.
//
// # Write Discipline
//
// Writes are atomic full rewrites: the table is staged to a temp file
// in the destination directory and renamed into place, so readers
// never observe a half-written table. Row-level mutations are built on
// top of this by the stores (read, mutate in memory, rewrite), which
// serialize through a per-store mutex.
package table
