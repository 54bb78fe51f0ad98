// Package migrations embeds the SQL schema migrations for both storage
// backends.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
