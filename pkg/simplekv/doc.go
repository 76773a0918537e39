// Package simplekv provides a project-scoped binary key-value store with
// pluggable repository backends.
//
// It exposes a single Service interface covering project creation and the
// entry operations: point lookup, full and prefix listing, atomic upsert,
// and deletion. Entries are addressed by (project, key) and carry an opaque
// byte payload with an associated MIME type. Repository implementations
// (memory, Postgres) are provided under subpackages.
//
// Projects are created explicitly via CreateProject or implicitly the first
// time an entry is stored under an unseen project identifier; the write path
// establishes project existence before the entry write so concurrent first
// writes to a new project never conflict.
package simplekv
