// Package migrations embeds the schema of the local preferences file.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
