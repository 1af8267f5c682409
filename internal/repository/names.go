package repository

import (
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
)

// FileExt is appended to a recipe name to build its file name.
const FileExt = ".txt"

// KeyFor returns the file name backing a recipe.
func KeyFor(name string) string {
	return name + FileExt
}

// NameFor strips FileExt from a file name. ok is false for other files.
func NameFor(filename string) (name string, ok bool) {
	if !strings.HasSuffix(filename, FileExt) || filename == FileExt {
		return "", false
	}
	return strings.TrimSuffix(filename, FileExt), true
}

// ValidateName rejects names that cannot map to a single flat file.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: recipe name is empty", errdefs.ErrInvalidArgument)
	case name == "." || name == "..":
		return fmt.Errorf("%w: recipe name %q is reserved", errdefs.ErrInvalidArgument, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: recipe name %q contains a path separator", errdefs.ErrInvalidArgument, name)
	case strings.HasSuffix(name, FileExt):
		return fmt.Errorf("%w: recipe name %q must not end in %s", errdefs.ErrInvalidArgument, name, FileExt)
	}
	return nil
}
