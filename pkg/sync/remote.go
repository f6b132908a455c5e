package sync

// Remote is the subset of the remote service used to bootstrap and update a
// project. Implementations deal with the markup of the remote pages; the
// values they return are plain file listings and contents.
type Remote interface {
	ListFiles(project string) ([]string, error)

	// FetchFile returns the contents of a file as embedded in the editor
	// page, which means HTML entities are still encoded.
	FetchFile(project, basename string) (string, error)

	PushFile(project, basename, contents string) error
	Restart(project string) error
}

// Mirror is the local copy of the project's files.
type Mirror interface {
	Reset() error
	Write(name, contents string) error
	Read(name string) (string, error)
	Touch(name string) error
}
