// Package migrations embebe los SQL forward-only en el binario.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
