// Package migrations embeds the SQL schema for each supported dialect.
package migrations

import "embed"

// FS holds postgres/*.sql and sqlite3/*.sql in golang-migrate naming
//
//go:embed postgres/*.sql sqlite3/*.sql
var FS embed.FS
