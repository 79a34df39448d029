package store

import (
	"io/fs"
	"os"
)

// FileSystem abstracts the file operations the JSON file adapter needs,
// so tests can inject failures without touching the real disk.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the entire file.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data with the given permissions.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Rename moves a file from oldpath to newpath.
	Rename(oldpath, newpath string) error

	// Remove removes the named file.
	Remove(name string) error
}

// OSFileSystem is the default implementation using the os package.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}
