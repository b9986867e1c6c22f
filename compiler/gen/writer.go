package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"regexp"
)

// generated matches the header of generated Go files.
var generated = regexp.MustCompile(`(?m)^// Code generated .* DO NOT EDIT\.$`)

// File is a rendered output file.
type File struct {
	Path    string
	Content []byte
	// Remove is set for packages without declarations, whose output file
	// must not exist.
	Remove bool
}

// Write writes the file, or removes it if it is marked for removal.
// Files already up to date are left untouched, so that file watchers
// and build caches do not see spurious changes.
func (f *File) Write() (changed bool, err error) {
	ok, err := f.UpToDate()
	if err != nil || ok {
		return false, err
	}
	if f.Remove {
		if err := remove(f.Path); err != nil {
			return false, NewGenerationError("write", f.Path, "remove stale file", err)
		}
		return true, nil
	}
	if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
		return false, NewGenerationError("write", f.Path, "", err)
	}
	return true, nil
}

// UpToDate reports whether the file on disk matches the rendered content.
func (f *File) UpToDate() (bool, error) {
	cur, err := os.ReadFile(f.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f.Remove, nil
	case err != nil:
		return false, NewGenerationError("check", f.Path, "", err)
	case f.Remove:
		// Leave hand-written files of the same name alone.
		return !generated.Match(cur), nil
	default:
		return bytes.Equal(cur, f.Content), nil
	}
}

// remove deletes the file at path. A missing file is not an error.
func remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
