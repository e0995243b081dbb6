// Package migrations embeds the goose migrations that create the dictionary
// tables. Production stores ship pre-built; the migrations build fixtures
// for tests and for new PostgreSQL deployments.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
