package store

// JSONFileOption modifies the JSON file adapter's configuration.
type JSONFileOption func(*jsonFileAdapter)

// WithFileSystem sets a custom FileSystem implementation.
func WithFileSystem(fs FileSystem) JSONFileOption {
	return func(a *jsonFileAdapter) {
		a.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation.
func WithFileLockFactory(factory FileLockFactory) JSONFileOption {
	return func(a *jsonFileAdapter) {
		a.lockFactory = factory
	}
}
