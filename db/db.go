// Package db embeds the SQL migrations and the JSON Schemas that ship
// with the binary.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed schemas/*.json
var Schemas embed.FS
