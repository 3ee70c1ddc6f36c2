// Package appfs exposes the assets that ship embedded in the binaries.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
