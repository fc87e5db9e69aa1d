// Package migrations embeds the goose migration sets for the two local
// databases: the user-credential store and the access log. Each database
// file carries its own set, mirroring the split on the device.
package migrations

import "embed"

//go:embed userdb/*.sql
var UserDB embed.FS

//go:embed logdb/*.sql
var LogDB embed.FS
