// Package migrations embeds the versioned goose migrations, one directory
// per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
