// Package templates holds the recipes copied into an empty store on first run.
package templates

import (
	"embed"

	"github.com/bassista/go_recipes/internal/repository"
)

//go:embed *.txt
var files embed.FS

// Bundled returns the embedded template set.
func Bundled() repository.Templates {
	return repository.FSTemplates{FS: files}
}
