// Package assets embeds the admin template and the static files it uses.
package assets

import (
	"embed"
	"io/fs"
)

// AdminTemplate is the name of the built-in admin page template
const AdminTemplate = "admin.html"

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates returns the built-in templates, rooted at their file names
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the files served under the static prefix
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Lookup returns the bytes of a static file
func Lookup(name string) ([]byte, bool) {
	data, err := fs.ReadFile(Static(), name)
	if err != nil {
		return nil, false
	}
	return data, true
}
