// Package migrations embeds the SQL schema migrations for the review
// insights service. Files are applied in lexical order by
// database.RunMigrations at startup.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
