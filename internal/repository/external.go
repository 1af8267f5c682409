package repository

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSource imports a document from a path on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) DisplayName() (string, bool) {
	base := filepath.Base(s.Path)
	if base == "." || base == string(filepath.Separator) {
		return "", false
	}
	return base, true
}

// ReaderSource imports an in-memory document, e.g. an HTTP upload.
// An empty Name means the document has no display name.
type ReaderSource struct {
	Name string
	Data []byte
}

func (s ReaderSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

func (s ReaderSource) DisplayName() (string, bool) {
	return s.Name, s.Name != ""
}

// DirDestination writes exports into a directory, replacing existing files.
type DirDestination struct {
	Dir string
}

func (d DirDestination) Write(filename string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, filepath.Base(filename)), data, 0o644)
}

// FSTemplates serves templates from the top level of an fs.FS.
type FSTemplates struct {
	FS fs.FS
}

func (t FSTemplates) List() ([]string, error) {
	entries, err := fs.ReadDir(t.FS, ".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := NameFor(e.Name()); ok {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func (t FSTemplates) Open(filename string) (io.ReadCloser, error) {
	return t.FS.Open(filename)
}
