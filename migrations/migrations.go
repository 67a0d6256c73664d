// Package migrations embeds the schema migration files so the binary
// does not depend on a migrations directory at runtime.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
