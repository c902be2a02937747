// Package web serves an embedded airfoil preview page, a JSON API and PNG
// plots over HTTP. Binds to localhost only, so there is no auth.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/index.html
var staticFS embed.FS

// staticRoot exposes static/ as the site root.
func staticRoot() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
