// Package migrations embeds the goose migrations for the client-side
// key-value store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
