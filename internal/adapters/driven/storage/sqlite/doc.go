// Package sqlite keeps launch-kit history in a single SQLite file using the
// pure Go modernc.org/sqlite driver, so the binary builds without cgo.
//
// The database lives at ~/.marketforge/data/marketforge.db unless another
// directory is given. It is opened in WAL mode with a busy timeout so the
// CLI can read history while an MCP server is saving kits.
//
// Schema changes are numbered SQL scripts under migrations/, applied in
// order on open and recorded in schema_migrations.
package sqlite
